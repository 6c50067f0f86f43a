package flightplan

import (
	"errors"
	"fmt"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// RouteProfile synthesizes the profile of a catalog route. The route's own
// flight level wins over defaultFlightLevel. Origins without a runway yield
// ErrNoRunway.
func (s *Synthesizer) RouteProfile(cat *catalog.Catalog, route catalog.Route, defaultFlightLevel float64) (Profile, error) {
	from, to, err := cat.Endpoints(route)
	if err != nil {
		return Profile{}, err
	}
	departure, err := DepartureRunway(from)
	if err != nil {
		return Profile{}, err
	}
	beacons, err := cat.Beacons(route.Beacons)
	if err != nil {
		return Profile{}, fmt.Errorf("route %s: %w", route.Name(), err)
	}

	flightLevel := defaultFlightLevel
	if route.FlightLevel > 0 {
		flightLevel = route.FlightLevel
	}

	profile, err := s.Synthesize(departure, to, beacons, flightLevel)
	if err != nil {
		return Profile{}, fmt.Errorf("route %s: %w", route.Name(), err)
	}
	return profile, nil
}

// Profiles synthesizes every catalog route that departs from a runway,
// keyed by route name
func (s *Synthesizer) Profiles(cat *catalog.Catalog, defaultFlightLevel float64) (map[string]*Profile, error) {
	profiles := make(map[string]*Profile)
	for _, route := range cat.Routes() {
		profile, err := s.RouteProfile(cat, route, defaultFlightLevel)
		if errors.Is(err, ErrNoRunway) {
			s.logger.Debug("No flight plan for route without departure runway",
				logger.String("route", route.Name()))
			continue
		}
		if err != nil {
			return nil, err
		}
		profiles[route.Name()] = &profile
	}

	s.logger.Info("Flight plans synthesized",
		logger.Int("plans", len(profiles)),
		logger.Int("routes", len(cat.Routes())))

	return profiles, nil
}
