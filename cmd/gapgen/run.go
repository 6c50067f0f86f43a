package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/config"
	"github.com/kerbinside/gapgen/internal/contracts"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/internal/kramax"
	"github.com/kerbinside/gapgen/internal/mapview"
	"github.com/kerbinside/gapgen/internal/storage/sqlite"
	"github.com/kerbinside/gapgen/internal/tables"
	"github.com/kerbinside/gapgen/internal/templating"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// options selects what a run produces. At most one mode is honoured, in
// field order; none means the full contract pack.
type options struct {
	dist     bool
	reward   bool
	routeMap bool
	plans    bool
	headings bool
}

func (o options) mode() string {
	switch {
	case o.dist:
		return "dist"
	case o.reward:
		return "reward"
	case o.routeMap:
		return "map"
	case o.plans:
		return "plans"
	case o.headings:
		return "headings"
	default:
		return "contracts"
	}
}

// app holds the components shared by every mode
type app struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	body    geometry.Body
	out     io.Writer
	logger  *logger.Logger
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Embedded()
	}
	return catalog.LoadFile(path)
}

func run(cfg *config.Config, opts options, out io.Writer, log *logger.Logger) error {
	cat, err := loadCatalog(cfg.Output.Catalog)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return fmt.Errorf("invalid catalog: %w", err)
	}

	log.Info(fmt.Sprintf("Found %d locations, %d routes", len(cat.Locations()), len(cat.Routes())))

	a := &app{
		cfg:     cfg,
		catalog: cat,
		body:    cfg.BodyParams(),
		out:     out,
		logger:  log,
	}

	if opts.headings {
		return a.headings()
	}

	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	switch opts.mode() {
	case "dist":
		return a.distances()
	case "reward":
		return a.rewards()
	case "map":
		return a.routeMap()
	case "plans":
		_, err := a.flightPlans()
		return err
	default:
		return a.contractPack()
	}
}

func (a *app) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.cfg.Output.Dir, name)
}

func (a *app) generator() (*contracts.Generator, error) {
	var engine *templating.Engine
	if dir := a.cfg.Templating.Dir; dir != "" {
		if _, err := os.Stat(dir); err != nil {
			return nil, fmt.Errorf("templates directory: %w", err)
		}
		engine = templating.NewEngine(os.DirFS(dir), a.logger)
	} else {
		var err error
		if engine, err = templating.NewDefaultEngine(a.logger); err != nil {
			return nil, err
		}
	}
	texts := templating.NewService(engine, a.logger)
	return contracts.NewGenerator(a.catalog, a.body, texts, a.cfg.ContractSettings(), a.logger), nil
}

func (a *app) distances() error {
	return tables.NewBuilder(a.catalog, a.body, a.logger).WriteDistances(a.path(tables.DistancesFile))
}

func (a *app) rewards() error {
	gen, err := a.generator()
	if err != nil {
		return err
	}
	return tables.NewBuilder(a.catalog, a.body, a.logger).WriteRewards(a.path(tables.RewardsFile), gen)
}

func (a *app) routeMap() error {
	renderer := mapview.NewRenderer(a.body, a.cfg.MapSettings())
	return mapview.NewRouteMap(renderer, a.catalog, a.logger).WriteFile(a.path(a.cfg.Map.File))
}

func (a *app) profiles() (map[string]*flightplan.Profile, error) {
	synth := flightplan.NewSynthesizer(a.body, a.cfg.FlightParams(), a.logger)
	return synth.Profiles(a.catalog, a.cfg.FlightPlan.DefaultFlightLevel)
}

func (a *app) flightPlans() (map[string]*flightplan.Profile, error) {
	profiles, err := a.profiles()
	if err != nil {
		return nil, err
	}
	writer := kramax.NewWriter(a.body.Name, a.logger)
	if _, err := writer.WriteAll(a.cfg.Output.Dir, a.catalog.Routes(), profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (a *app) contractPack() error {
	profiles, err := a.flightPlans()
	if err != nil {
		return err
	}

	gen, err := a.generator()
	if err != nil {
		return err
	}
	if _, err := gen.Generate(a.cfg.Output.Dir, profiles); err != nil {
		return err
	}

	if !a.cfg.Storage.AtlasEnabled {
		return nil
	}
	atlas, err := sqlite.NewAtlas(a.path(a.cfg.Storage.AtlasPath), a.logger)
	if err != nil {
		return err
	}
	defer atlas.Close()
	return atlas.Export(a.catalog, a.body, profiles)
}

// headings prints the true heading of every runway end, flown from the
// threshold toward the opposite end
func (a *app) headings() error {
	for _, loc := range a.catalog.Locations() {
		for i, rw := range loc.Runways {
			_, err := fmt.Fprintf(a.out, "%s runway %d: %.2f / %.2f\n", loc.Name, i+1,
				geometry.Heading(rw.First.Point, rw.Second.Point),
				geometry.Heading(rw.Second.Point, rw.First.Point))
			if err != nil {
				return err
			}
		}
	}
	return nil
}
