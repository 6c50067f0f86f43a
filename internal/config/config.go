package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/kerbinside/gapgen/internal/contracts"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/internal/mapview"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// Environment variables overriding file values
const (
	EnvOutputDir = "GAPGEN_OUTPUT_DIR"
	EnvLogLevel  = "GAPGEN_LOG_LEVEL"
	EnvCatalog   = "GAPGEN_CATALOG"
)

// ErrNotFound is returned when no configuration file exists where one was requested
var ErrNotFound = errors.New("config file not found")

// Config represents the main application configuration structure
// containing all configuration sections
type Config struct {
	Logging    LoggingConfig    `toml:"logging"`     // Application logging settings
	Output     OutputConfig     `toml:"output"`      // Where generated files go and what they are made from
	Body       BodyConfig       `toml:"body"`        // Celestial body the catalog lies on
	FlightPlan FlightPlanConfig `toml:"flight_plan"` // Flight profile synthesis constants
	Map        MapConfig        `toml:"map"`         // Route map layout
	Contracts  ContractsConfig  `toml:"contracts"`   // Contract pack settings
	Storage    StorageConfig    `toml:"storage"`     // Atlas export settings
	Templating TemplatingConfig `toml:"templating"`  // Contract text templates
}

// LoggingConfig contains application logging configuration
type LoggingConfig struct {
	Level      string `toml:"level"`       // Log level: "debug", "info", "warn", or "error"
	Format     string `toml:"format"`      // Log format: "json" (structured) or "console" (human-readable)
	File       string `toml:"file"`        // Optional rotating log file
	MaxSizeMB  int    `toml:"max_size_mb"` // Log file rotation size
	MaxBackups int    `toml:"max_backups"` // Rotated log files kept
}

// OutputConfig contains generation input and output locations
type OutputConfig struct {
	Dir     string `toml:"dir"`     // Directory receiving every generated file
	Catalog string `toml:"catalog"` // Catalog TOML file, empty for the built-in catalog
}

// BodyConfig describes the sphere distances are measured on
type BodyConfig struct {
	Name           string  `toml:"name"`
	RadiusKm       float64 `toml:"radius_km"`
	MaxRouteStepKm float64 `toml:"max_route_step_km"` // Longest straight segment when discretizing routes
}

// FlightPlanConfig contains flight profile synthesis constants.
// Distances are in kilometres, altitudes in metres, angles in degrees.
type FlightPlanConfig struct {
	ClimbAngle              float64 `toml:"climb_angle"`
	DescentAngle            float64 `toml:"descent_angle"`
	TakeoffDistanceKm       float64 `toml:"takeoff_distance_km"`
	StraightClimbAltitude   float64 `toml:"straight_climb_altitude"`
	MinGlideslopeAngle      float64 `toml:"min_glideslope_angle"`
	GlideslopeCorrectionRun float64 `toml:"glideslope_correction_run"` // Metres flown at the glideslope floor
	IAFDistanceKm           float64 `toml:"iaf_distance_km"`
	FAFDistanceKm           float64 `toml:"faf_distance_km"`
	FlareDistanceKm         float64 `toml:"flare_distance_km"`
	MinIAFLevelDistanceKm   float64 `toml:"min_iaf_level_distance_km"`
	DirectIAFFactor         float64 `toml:"direct_iaf_factor"`
	HelipadStopDistanceKm   float64 `toml:"helipad_stop_distance_km"`
	DefaultFlightLevel      float64 `toml:"default_flight_level"` // Cruise ceiling of routes without their own
}

// MapConfig contains the route map layout, in pixels
type MapConfig struct {
	File              string  `toml:"file"`
	Width             float64 `toml:"width"`
	Height            float64 `toml:"height"`
	BaseLongitude     float64 `toml:"base_longitude"`
	LineWidth         float64 `toml:"line_width"`
	ArrowOffset       float64 `toml:"arrow_offset"`
	ArrowheadTan      float64 `toml:"arrowhead_tan"`
	ArrowheadLength   float64 `toml:"arrowhead_length"`
	PointRadiusFactor float64 `toml:"point_radius_factor"`
}

// ContractsConfig contains contract pack settings
type ContractsConfig struct {
	RefundCoefficient float64 `toml:"refund_coefficient"` // Share of the launch cost paid back with the reward
	GroupPrefix       string  `toml:"group_prefix"`
	MinVersion        string  `toml:"min_version"`      // Minimal contract configurator version
	MaxSimultaneous   int     `toml:"max_simultaneous"` // Contracts of the pack offered at once
	Deadline          int     `toml:"deadline"`         // Days
	IconsPath         string  `toml:"icons_path"`
	Seed              uint64  `toml:"seed"` // Staff count seed, 0 for a random one
}

// StorageConfig contains atlas export configuration
type StorageConfig struct {
	AtlasEnabled bool   `toml:"atlas_enabled"`
	AtlasPath    string `toml:"atlas_path"` // Relative paths are inside the output directory
}

// TemplatingConfig contains contract text template settings
type TemplatingConfig struct {
	Dir string `toml:"dir"` // Directory overriding the built-in templates, empty to use them
}

// Default returns the configuration of the published contract pack
func Default() *Config {
	params := flightplan.DefaultParams()
	layout := mapview.DefaultSettings()
	pack := contracts.DefaultSettings()

	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Output: OutputConfig{
			Dir: ".",
		},
		Body: BodyConfig{
			Name:           geometry.Kerbin.Name,
			RadiusKm:       geometry.Kerbin.Radius,
			MaxRouteStepKm: geometry.Kerbin.MaxRouteStep,
		},
		FlightPlan: FlightPlanConfig{
			ClimbAngle:              params.ClimbAngle,
			DescentAngle:            params.DescentAngle,
			TakeoffDistanceKm:       params.TakeoffDistance,
			StraightClimbAltitude:   params.StraightClimbAltitude,
			MinGlideslopeAngle:      params.MinGlideslopeAngle,
			GlideslopeCorrectionRun: params.GlideslopeCorrection,
			IAFDistanceKm:           params.IAFDistance,
			FAFDistanceKm:           params.FAFDistance,
			FlareDistanceKm:         params.FlareDistance,
			MinIAFLevelDistanceKm:   params.MinIAFLevelDistance,
			DirectIAFFactor:         params.DirectIAFFactor,
			HelipadStopDistanceKm:   params.HelipadStopDistance,
			DefaultFlightLevel:      4000,
		},
		Map: MapConfig{
			File:              "Routes.svg",
			Width:             layout.Width,
			Height:            layout.Height,
			BaseLongitude:     layout.BaseLongitude,
			LineWidth:         layout.LineWidth,
			ArrowOffset:       layout.ArrowOffset,
			ArrowheadTan:      layout.ArrowheadTan,
			ArrowheadLength:   layout.ArrowheadLength,
			PointRadiusFactor: layout.PointRadiusFactor,
		},
		Contracts: ContractsConfig{
			RefundCoefficient: pack.RefundCoefficient,
			GroupPrefix:       pack.GroupPrefix,
			MinVersion:        pack.MinVersion,
			MaxSimultaneous:   pack.MaxSimultaneous,
			Deadline:          pack.Deadline,
			IconsPath:         pack.IconsPath,
		},
		Storage: StorageConfig{
			AtlasEnabled: true,
			AtlasPath:    "Atlas.db",
		},
	}
}

// Load loads the configuration from the specified file path. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	config := Default()

	// Check if the file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	md, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}

	return config, nil
}

// LoadWithFallback loads the configuration by checking multiple locations in
// order of preference. Defaults are used when no file exists and no path was
// requested explicitly. Environment overrides, from the process or a .env
// file, are applied last.
func LoadWithFallback(preferredPath string) (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	// List of paths to check in order of preference
	searchPaths := []string{
		preferredPath,         // User-specified path (if provided)
		"configs/config.toml", // configs/ folder
		"config.toml",         // Root directory
	}

	// Remove duplicates while preserving order
	uniquePaths := make([]string, 0, len(searchPaths))
	seen := make(map[string]bool)
	for _, path := range searchPaths {
		if path != "" && !seen[path] {
			uniquePaths = append(uniquePaths, path)
			seen[path] = true
		}
	}

	var config *Config
	for _, path := range uniquePaths {
		if _, err := os.Stat(path); err != nil {
			if path == preferredPath {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
			}
			continue
		}
		loaded, err := Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
		config = loaded
		break
	}
	if config == nil {
		config = Default()
	}

	config.ApplyEnv()
	return config, nil
}

// ApplyEnv overrides file values with the environment
func (c *Config) ApplyEnv() {
	if dir := os.Getenv(EnvOutputDir); dir != "" {
		c.Output.Dir = dir
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if path := os.Getenv(EnvCatalog); path != "" {
		c.Output.Catalog = path
	}
}

// Validate fills defaults for empty values and rejects inconsistent ones
func (c *Config) Validate() error {
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Body.Name == "" {
		c.Body.Name = geometry.Kerbin.Name
	}
	if c.Map.File == "" {
		c.Map.File = "Routes.svg"
	}
	if c.Storage.AtlasEnabled && c.Storage.AtlasPath == "" {
		c.Storage.AtlasPath = "Atlas.db"
	}

	if err := c.LoggerConfig().Validate(); err != nil {
		return fmt.Errorf("invalid logging config: %w", err)
	}
	if c.Logging.File != "" && c.Logging.MaxSizeMB <= 0 {
		return fmt.Errorf("invalid max_size_mb value: %d (must be > 0)", c.Logging.MaxSizeMB)
	}

	if err := c.BodyParams().Validate(); err != nil {
		return fmt.Errorf("invalid body config: %w", err)
	}
	if err := c.FlightParams().Validate(); err != nil {
		return fmt.Errorf("invalid flight_plan config: %w", err)
	}
	if c.FlightPlan.DefaultFlightLevel <= 0 {
		return fmt.Errorf("invalid default_flight_level value: %g (must be > 0)", c.FlightPlan.DefaultFlightLevel)
	}
	if err := c.MapSettings().Validate(); err != nil {
		return fmt.Errorf("invalid map config: %w", err)
	}

	if c.Contracts.RefundCoefficient < 0 {
		return fmt.Errorf("invalid refund_coefficient value: %g (must be >= 0)", c.Contracts.RefundCoefficient)
	}
	if c.Contracts.GroupPrefix == "" {
		return fmt.Errorf("contracts group_prefix must not be empty")
	}
	if c.Contracts.MaxSimultaneous <= 0 || c.Contracts.Deadline <= 0 {
		return fmt.Errorf("contracts max_simultaneous (%d) and deadline (%d) must be positive",
			c.Contracts.MaxSimultaneous, c.Contracts.Deadline)
	}

	return nil
}

// LoggerConfig returns the logger construction settings
func (c *Config) LoggerConfig() logger.Config {
	return logger.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		File:       c.Logging.File,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
	}
}

// BodyParams returns the configured sphere
func (c *Config) BodyParams() geometry.Body {
	return geometry.Body{
		Name:         c.Body.Name,
		Radius:       c.Body.RadiusKm,
		MaxRouteStep: c.Body.MaxRouteStepKm,
	}
}

// FlightParams returns the flight profile synthesis constants
func (c *Config) FlightParams() flightplan.Params {
	fp := c.FlightPlan
	return flightplan.Params{
		ClimbAngle:            fp.ClimbAngle,
		DescentAngle:          fp.DescentAngle,
		TakeoffDistance:       fp.TakeoffDistanceKm,
		StraightClimbAltitude: fp.StraightClimbAltitude,
		MinGlideslopeAngle:    fp.MinGlideslopeAngle,
		GlideslopeCorrection:  fp.GlideslopeCorrectionRun,
		IAFDistance:           fp.IAFDistanceKm,
		FAFDistance:           fp.FAFDistanceKm,
		FlareDistance:         fp.FlareDistanceKm,
		MinIAFLevelDistance:   fp.MinIAFLevelDistanceKm,
		DirectIAFFactor:       fp.DirectIAFFactor,
		HelipadStopDistance:   fp.HelipadStopDistanceKm,
	}
}

// MapSettings returns the route map layout
func (c *Config) MapSettings() mapview.Settings {
	return mapview.Settings{
		Width:             c.Map.Width,
		Height:            c.Map.Height,
		BaseLongitude:     c.Map.BaseLongitude,
		LineWidth:         c.Map.LineWidth,
		ArrowOffset:       c.Map.ArrowOffset,
		ArrowheadTan:      c.Map.ArrowheadTan,
		ArrowheadLength:   c.Map.ArrowheadLength,
		PointRadiusFactor: c.Map.PointRadiusFactor,
	}
}

// ContractSettings returns the contract pack settings
func (c *Config) ContractSettings() contracts.Settings {
	return contracts.Settings{
		RefundCoefficient: c.Contracts.RefundCoefficient,
		GroupPrefix:       c.Contracts.GroupPrefix,
		MinVersion:        c.Contracts.MinVersion,
		MaxSimultaneous:   c.Contracts.MaxSimultaneous,
		Deadline:          c.Contracts.Deadline,
		IconsPath:         c.Contracts.IconsPath,
		Seed:              c.Contracts.Seed,
	}
}
