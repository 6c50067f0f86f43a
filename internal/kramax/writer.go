// Package kramax writes synthesized flight profiles as flight plans of the
// Kramax autopilot add-on.
package kramax

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/cfgnode"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// PlansDir is the directory holding the plans inside the output directory
const PlansDir = "FlightPlans"

// Writer writes flight plan files
type Writer struct {
	planet string
	logger *logger.Logger
}

// NewWriter creates a flight plan writer for plans flown on planet
func NewWriter(planet string, log *logger.Logger) *Writer {
	return &Writer{
		planet: planet,
		logger: log.Named("kramax"),
	}
}

// FileName returns the plan file name of a route
func FileName(route catalog.Route) string {
	return route.From + "-" + route.To + ".cfg"
}

// WaypointNode converts one profile waypoint. Altitudes are whole metres.
func WaypointNode(wp flightplan.Waypoint) *cfgnode.Node {
	n := cfgnode.New("WAYPOINT").
		Set("name", wp.Name).
		Set("Vertical", true).
		Set("lat", wp.Lat).
		Set("lon", wp.Lon).
		Set("alt", int(math.RoundToEven(wp.Altitude)))
	if wp.Marker != flightplan.MarkerNone {
		n.Set(string(wp.Marker), true)
	}
	return n
}

// PlanNode builds the FLIGHTPLAN node of a route
func (w *Writer) PlanNode(route catalog.Route, profile flightplan.Profile) *cfgnode.Node {
	description := fmt.Sprintf("%s flight, %s km as flown", route.Name(), cfgnode.FormatFloat(math.Round(profile.AsFlown()*100)/100))
	n := cfgnode.New("FLIGHTPLAN").
		Set("name", route.Name()).
		Set("description", description).
		Set("planet", w.planet)
	for _, wp := range profile.Waypoints {
		n.Add(WaypointNode(wp))
	}
	return n
}

// Write writes the plan of one route below dir and returns the file path
func (w *Writer) Write(dir string, route catalog.Route, profile flightplan.Profile) (string, error) {
	plans := filepath.Join(dir, PlansDir)
	if err := os.MkdirAll(plans, 0755); err != nil {
		return "", fmt.Errorf("failed to create plans directory: %w", err)
	}

	path := filepath.Join(plans, FileName(route))
	if err := cfgnode.WriteFile(path, w.PlanNode(route, profile)); err != nil {
		return "", err
	}

	w.logger.Debug("Flight plan written",
		logger.String("route", route.Name()),
		logger.Int("waypoints", len(profile.Waypoints)),
		logger.String("file", path))

	return path, nil
}

// WriteAll writes the plans of every route that has a profile and returns
// the number of files written
func (w *Writer) WriteAll(dir string, routes []catalog.Route, profiles map[string]*flightplan.Profile) (int, error) {
	written := 0
	for _, route := range routes {
		profile, ok := profiles[route.Name()]
		if !ok {
			continue
		}
		if _, err := w.Write(dir, route, *profile); err != nil {
			return written, fmt.Errorf("route %s: %w", route.Name(), err)
		}
		written++
	}

	w.logger.Info("Flight plans written",
		logger.Int("plans", written),
		logger.String("dir", filepath.Join(dir, PlansDir)))

	return written, nil
}
