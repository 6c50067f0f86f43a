package flightplan

import (
	"fmt"
	"math"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
)

// DepartureRunway returns the runway a flight from loc takes off from
func DepartureRunway(loc *catalog.Location) (catalog.Runway, error) {
	if len(loc.Runways) == 0 {
		return catalog.Runway{}, fmt.Errorf("%w: %s", ErrNoRunway, loc.Name)
	}
	return loc.Runways[0], nil
}

// SelectRunway picks the landable runway end of loc whose orientation best
// matches the track of an aircraft arriving from approachFrom. The first end
// seen wins a tie.
func SelectRunway(loc *catalog.Location, approachFrom geometry.Point) (landing, opposite catalog.RunwayEnd, err error) {
	best := math.Inf(1)
	for _, rw := range loc.Runways {
		for _, pair := range [][2]catalog.RunwayEnd{{rw.First, rw.Second}, {rw.Second, rw.First}} {
			if !pair[0].Landable() {
				continue
			}
			runwayHeading := geometry.Heading(pair[0].Point, pair[1].Point)
			track := geometry.Heading(pair[0].Point, approachFrom) + 180
			if diff := headingDifference(runwayHeading, track); diff < best {
				best = diff
				landing, opposite = pair[0], pair[1]
			}
		}
	}
	if math.IsInf(best, 1) {
		return catalog.RunwayEnd{}, catalog.RunwayEnd{}, fmt.Errorf("%w: %s", ErrNoRunway, loc.Name)
	}
	return landing, opposite, nil
}

// headingDifference returns the smallest angle between two headings, in [0, 180]
func headingDifference(h1, h2 float64) float64 {
	diff := geometry.NormalizeHeading(h1 - h2)
	if diff > 180 {
		diff = 360 - diff
	}
	return diff
}

// landingSite returns the threshold and rollout end for landing at dest.
// Locations without a runway land on the helipad at the glideslope floor,
// rolling out away from the approach.
func (s *Synthesizer) landingSite(dest *catalog.Location, approachFrom geometry.Point) (catalog.RunwayEnd, catalog.RunwayEnd, error) {
	if len(dest.Runways) > 0 {
		return SelectRunway(dest, approachFrom)
	}
	if dest.Helipad == nil {
		return catalog.RunwayEnd{}, catalog.RunwayEnd{}, fmt.Errorf("%w: %s", ErrNoLandingSite, dest.Name)
	}

	pad := catalog.RunwayEnd{
		Point:      dest.Helipad.Point,
		Altitude:   dest.Helipad.Altitude.Absolute(),
		Glideslope: new(float64),
	}
	stop, err := s.body.StepTo(pad.Point, approachFrom, -s.params.HelipadStopDistance)
	if err != nil {
		return catalog.RunwayEnd{}, catalog.RunwayEnd{}, err
	}
	return pad, catalog.RunwayEnd{Point: stop, Altitude: pad.Altitude}, nil
}
