package flightplan

import (
	"fmt"
	"math"
	"strings"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// climbToCruise names the synthetic beacon of a direct route
const climbToCruise = "FL-ASC"

// minLegDistance is the shortest leg, in kilometres, a synthesized point may
// open. Closer points are dropped.
const minLegDistance = 0.01

// Synthesizer turns a route into a flight profile
type Synthesizer struct {
	body   geometry.Body
	params Params
	logger *logger.Logger
}

// NewSynthesizer creates a new flight profile synthesizer
func NewSynthesizer(body geometry.Body, params Params, log *logger.Logger) *Synthesizer {
	return &Synthesizer{
		body:   body,
		params: params,
		logger: log.Named("synthesizer"),
	}
}

// Body returns the sphere profiles are computed on
func (s *Synthesizer) Body() geometry.Body {
	return s.body
}

// Params returns the synthesis constants
func (s *Synthesizer) Params() Params {
	return s.params
}

// profileBuilder accumulates waypoints of one profile
type profileBuilder struct {
	s           *Synthesizer
	flightLevel float64
	climb       float64
	descent     float64
	waypoints   []Waypoint
}

func (b *profileBuilder) add(wp Waypoint) {
	b.waypoints = append(b.waypoints, wp)
}

// Synthesize builds the flight profile from the departure runway through the
// beacons to the best aligned landing site of dest, cruising no higher than
// flightLevel metres.
func (s *Synthesizer) Synthesize(departure catalog.Runway, dest *catalog.Location, beacons []catalog.Beacon, flightLevel float64) (Profile, error) {
	b := &profileBuilder{
		s:           s,
		flightLevel: flightLevel,
		climb:       s.params.climbTang(),
		descent:     s.params.descentTang(),
	}

	takeoff := departure.Second
	b.add(Waypoint{
		Name:     "TAKEOFF",
		Point:    takeoff.Point,
		Altitude: takeoff.Altitude + s.params.TakeoffDistance*b.climb,
	})

	ascent, err := s.body.StepTo(takeoff.Point, departure.First.Point, -s.params.StraightClimbAltitude/b.climb)
	if err != nil {
		return Profile{}, fmt.Errorf("ascent: %w", err)
	}
	position := Waypoint{Name: "ASCENT", Point: ascent, Altitude: takeoff.Altitude + s.params.StraightClimbAltitude}
	b.add(position)

	approachFrom := position.Point
	if len(beacons) > 0 {
		approachFrom = beacons[len(beacons)-1].Point
	}
	landing, opposite, err := s.landingSite(dest, approachFrom)
	if err != nil {
		return Profile{}, err
	}
	approach, err := s.params.MakeApproach(s.body, landing, opposite)
	if err != nil {
		return Profile{}, fmt.Errorf("approach to %s: %w", dest.Name, err)
	}

	legs := make([]float64, 0, len(beacons)+1)
	from := takeoff.Point
	for _, beacon := range beacons {
		legs = append(legs, s.body.Distance(from, beacon.Point))
		from = beacon.Point
	}
	legs = append(legs, s.body.Distance(from, landing.Point))

	if len(beacons) == 0 {
		fake, ok, err := b.climbToCruiseBeacon(position, approach.IAF)
		if err != nil {
			return Profile{}, err
		}
		if ok {
			beacons = []catalog.Beacon{fake}
		}
	}

	prevName := ""
	for _, beacon := range beacons {
		dist := s.body.Distance(position.Point, beacon.Point)
		ascAlt := position.Altitude + b.climb*dist
		descAlt := position.Altitude - b.descent*dist
		fafAscAlt := approach.FAF.Altitude + b.descent*s.body.Distance(approach.FAF.Point, beacon.Point)
		beaconAlt := math.Max(beacon.Altitude, math.Max(descAlt, math.Min(ascAlt, math.Min(fafAscAlt, flightLevel))))

		if (beaconAlt > position.Altitude && beaconAlt < ascAlt) ||
			(beaconAlt < position.Altitude && beaconAlt > descAlt) {
			if err := b.addLevelOff(position, prevName, beacon.Name, beacon.Point, beaconAlt, 0); err != nil {
				return Profile{}, fmt.Errorf("leg to %s: %w", beacon.Name, err)
			}
		}

		position = Waypoint{Name: beacon.Name, Point: beacon.Point, Altitude: beaconAlt}
		b.add(position)
		prevName = beacon.Name
	}

	if s.body.Distance(position.Point, landing.Point) > s.params.DirectIAFFactor*s.params.IAFDistance {
		descAlt := position.Altitude - b.descent*s.body.Distance(position.Point, approach.IAF.Point)
		iaf := approach.IAF
		iaf.Altitude = math.Max(descAlt, math.Min(iaf.Altitude, flightLevel))
		if iaf.Altitude > descAlt {
			if err := b.addLevelOff(position, prevName, iaf.Name, iaf.Point, iaf.Altitude, s.params.MinIAFLevelDistance); err != nil {
				return Profile{}, fmt.Errorf("leg to IAF: %w", err)
			}
		}
		b.add(iaf)
	} else {
		b.waypoints[len(b.waypoints)-1].Marker = MarkerIAF
	}

	b.add(approach.FAF)
	b.add(approach.Flare)
	b.add(approach.Stop)

	s.logger.Debug("Profile synthesized",
		logger.String("destination", dest.Name),
		logger.Int("beacons", len(beacons)),
		logger.Int("waypoints", len(b.waypoints)),
		logger.Float64("flight_level", flightLevel))

	return Profile{Waypoints: b.waypoints, LegDistances: legs}, nil
}

// climbToCruiseBeacon places the synthetic beacon of a direct route where a
// steepest climb from position toward the IAF reaches the flight level. The
// beacon never lies beyond the IAF and is omitted when position is already
// at cruise altitude.
func (b *profileBuilder) climbToCruiseBeacon(position, iaf Waypoint) (catalog.Beacon, bool, error) {
	dist := (b.flightLevel - position.Altitude - 0.1) / b.climb
	dist = math.Min(dist, b.s.body.Distance(position.Point, iaf.Point))
	if dist < minLegDistance {
		return catalog.Beacon{}, false, nil
	}
	pt, err := b.s.body.StepTo(position.Point, iaf.Point, dist)
	if err != nil {
		return catalog.Beacon{}, false, fmt.Errorf("climb to cruise: %w", err)
	}
	return catalog.Beacon{Name: climbToCruise, Point: pt}, true, nil
}

// addLevelOff inserts the points where the aircraft stops flying level and
// starts its climb or descent toward the target, passing through the flight
// level on the way when the climb or descent crosses it.
func (b *profileBuilder) addLevelOff(position Waypoint, prevName, targetName string, target geometry.Point, targetAlt, minDist float64) error {
	alt := position.Altitude
	slope, tang := "ASC", b.climb
	levelNeeded := alt < b.flightLevel && b.flightLevel <= targetAlt
	if alt >= targetAlt {
		slope, tang = "DESC", -b.descent
		levelNeeded = alt > b.flightLevel && b.flightLevel >= targetAlt
	}

	if levelNeeded {
		pt, err := b.s.body.StepTo(position.Point, target, (b.flightLevel-alt)/tang)
		if err != nil {
			return err
		}
		if b.separated(pt, target) {
			b.add(Waypoint{Name: levelOffPrefix(prevName) + "FL-" + slope, Point: pt, Altitude: b.flightLevel, Hidden: true})
			alt = b.flightLevel
		}
	}

	if targetAlt != alt {
		pt, err := b.s.body.StepTo(target, position.Point, math.Max(minDist, (targetAlt-alt)/tang))
		if err != nil {
			return err
		}
		if b.separated(pt, target) {
			b.add(Waypoint{Name: levelOffPrefix(targetName) + slope, Point: pt, Altitude: alt, Hidden: true})
		}
	}
	return nil
}

// separated reports whether pt is far enough from both the last waypoint and
// the next target to open legs of its own
func (b *profileBuilder) separated(pt, target geometry.Point) bool {
	last := b.waypoints[len(b.waypoints)-1].Point
	return b.s.body.Distance(last, pt) >= minLegDistance && b.s.body.Distance(pt, target) >= minLegDistance
}

// levelOffPrefix turns a beacon name into the prefix of its level-off points:
// "LAKE-NDB" becomes "LAKE-", "IAF" becomes "IAF-"
func levelOffPrefix(name string) string {
	if name == "" {
		return ""
	}
	if strings.HasSuffix(name, "-NDB") {
		return strings.TrimSuffix(name, "NDB")
	}
	return name + "-"
}
