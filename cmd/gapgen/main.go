package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/kerbinside/gapgen/internal/config"
	"github.com/kerbinside/gapgen/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

// verbosity counts repeated -v flags
type verbosity int

func (v *verbosity) String() string { return strconv.Itoa(int(*v)) }

func (v *verbosity) Set(s string) error {
	on, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if on {
		*v++
	}
	return nil
}

func (v *verbosity) IsBoolFlag() bool { return true }

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	dir := flag.String("dir", "", "Generate files in directory DIR")
	catalogPath := flag.String("catalog", "", "Catalog TOML file (default: built-in catalog)")
	var verbose verbosity
	flag.Var(&verbose, "v", "Be more verbose. Repeat to increase.")

	var opts options
	flag.BoolVar(&opts.dist, "dist", false, "Make only distances table for locations")
	flag.BoolVar(&opts.reward, "reward", false, "Make only reward table for contracts")
	flag.BoolVar(&opts.routeMap, "map", false, "Make only routes map")
	flag.BoolVar(&opts.plans, "plans", false, "Make only flight plans")
	flag.BoolVar(&opts.headings, "headings", false, "Print runway headings")
	flag.Parse()

	// Load configuration with fallback logic
	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *dir != "" {
		cfg.Output.Dir = *dir
	}
	if *catalogPath != "" {
		cfg.Output.Catalog = *catalogPath
	}
	if verbose > 0 {
		cfg.Logging.Level = "debug"
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.New(cfg.LoggerConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Debug("Starting gapgen",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
		logger.String("mode", opts.mode()),
	)

	if err := run(cfg, opts, os.Stdout, log); err != nil {
		log.Error("Generation failed", logger.Error(err))
		log.Sync()
		os.Exit(1)
	}
}
