package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kerbinside/gapgen/internal/geometry"
)

//go:embed data/catalog.toml
var embeddedCatalog []byte

type rawSite struct {
	Lat      float64 `toml:"lat"`
	Lon      float64 `toml:"lon"`
	Relative float64 `toml:"relative"`
	Ground   float64 `toml:"ground"`
}

type rawRunwayEnd struct {
	Lat        float64  `toml:"lat"`
	Lon        float64  `toml:"lon"`
	Alt        float64  `toml:"alt"`
	Glideslope *float64 `toml:"glideslope"`
}

type rawRunway struct {
	Ends []rawRunwayEnd `toml:"ends"`
}

type rawLocation struct {
	Name            string      `toml:"name"`
	Description     string      `toml:"description"`
	Helipad         *rawSite    `toml:"helipad"`
	AircraftLaunch  *rawSite    `toml:"aircraft_launch"`
	AircraftParking *rawSite    `toml:"aircraft_parking"`
	StaffSpawn      *rawSite    `toml:"staff_spawn"`
	VIPSpawn        *rawSite    `toml:"vip_spawn"`
	LaunchRefund    int         `toml:"launch_refund"`
	RecoveryFactor  int         `toml:"recovery_factor"`
	KKBaseName      string      `toml:"kk_base_name"`
	LabelOffset     *float64    `toml:"label_offset"`
	Runways         []rawRunway `toml:"runways"`
}

type rawBeacon struct {
	Name string  `toml:"name"`
	Lat  float64 `toml:"lat"`
	Lon  float64 `toml:"lon"`
	Alt  float64 `toml:"alt"`
}

type rawRoute struct {
	From         string   `toml:"from"`
	To           string   `toml:"to"`
	Kind         string   `toml:"kind"`
	Objective    string   `toml:"objective"`
	SpecialNotes string   `toml:"special_notes"`
	StaffType    string   `toml:"staff_type"`
	Reward       int      `toml:"reward"`
	Beacons      []string `toml:"beacons"`
	FlightLevel  float64  `toml:"flight_level"`
}

type rawCatalog struct {
	Locations []rawLocation `toml:"locations"`
	Beacons   []rawBeacon   `toml:"beacons"`
	Routes    []rawRoute    `toml:"routes"`
}

// Embedded returns the catalog shipped with the generator
func Embedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedCatalog))
}

// LoadFile reads a catalog from a TOML file
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cat, nil
}

// Load decodes a TOML catalog. Unknown keys are rejected so that typos in
// hand-edited data do not silently drop values.
func Load(r io.Reader) (*Catalog, error) {
	var raw rawCatalog
	md, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("%w: unknown keys %s", ErrInvalidCatalog, strings.Join(keys, ", "))
	}

	locations := make([]Location, 0, len(raw.Locations))
	for _, rl := range raw.Locations {
		loc, err := rl.toLocation()
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}

	beacons := make([]Beacon, 0, len(raw.Beacons))
	for _, rb := range raw.Beacons {
		beacons = append(beacons, Beacon{
			Name:     rb.Name,
			Point:    geometry.Point{Lat: rb.Lat, Lon: geometry.NormalizeLongitude(rb.Lon)},
			Altitude: rb.Alt,
		})
	}

	routes := make([]Route, 0, len(raw.Routes))
	for _, rr := range raw.Routes {
		routes = append(routes, Route{
			From:         rr.From,
			To:           rr.To,
			Kind:         Kind(rr.Kind),
			Objective:    rr.Objective,
			SpecialNotes: rr.SpecialNotes,
			StaffType:    rr.StaffType,
			Reward:       rr.Reward,
			Beacons:      rr.Beacons,
			FlightLevel:  rr.FlightLevel,
		})
	}

	return New(locations, beacons, routes), nil
}

func (rs *rawSite) toSite() *Site {
	if rs == nil {
		return nil
	}
	return &Site{
		Point:    geometry.Point{Lat: rs.Lat, Lon: geometry.NormalizeLongitude(rs.Lon)},
		Altitude: Altitude{Ground: rs.Ground, Relative: rs.Relative},
	}
}

func (re rawRunwayEnd) toRunwayEnd() RunwayEnd {
	return RunwayEnd{
		Point:      geometry.Point{Lat: re.Lat, Lon: geometry.NormalizeLongitude(re.Lon)},
		Altitude:   re.Alt,
		Glideslope: re.Glideslope,
	}
}

func (rl rawLocation) toLocation() (Location, error) {
	loc := Location{
		Name:            rl.Name,
		Description:     rl.Description,
		Helipad:         rl.Helipad.toSite(),
		AircraftLaunch:  rl.AircraftLaunch.toSite(),
		AircraftParking: rl.AircraftParking.toSite(),
		StaffSpawn:      rl.StaffSpawn.toSite(),
		VIPSpawn:        rl.VIPSpawn.toSite(),
		LaunchRefund:    rl.LaunchRefund,
		RecoveryFactor:  rl.RecoveryFactor,
		KKBaseName:      rl.KKBaseName,
		LabelOffset:     DefaultLabelOffset,
	}
	if loc.AircraftParking == nil {
		loc.AircraftParking = loc.AircraftLaunch
	}
	if rl.LabelOffset != nil {
		loc.LabelOffset = *rl.LabelOffset
	}

	for i, rr := range rl.Runways {
		if len(rr.Ends) != 2 {
			return Location{}, fmt.Errorf("%w: %s runway %d has %d ends, want 2", ErrInvalidCatalog, rl.Name, i+1, len(rr.Ends))
		}
		loc.Runways = append(loc.Runways, Runway{
			First:  rr.Ends[0].toRunwayEnd(),
			Second: rr.Ends[1].toRunwayEnd(),
		})
	}
	return loc, nil
}
