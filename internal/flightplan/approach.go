package flightplan

import (
	"math"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
)

// Approach is the landing pattern toward a runway threshold
type Approach struct {
	IAF   Waypoint
	FAF   Waypoint
	Flare Waypoint
	Stop  Waypoint
}

// GlideslopeTang returns the altitude gained per kilometre of distance
// before the threshold. Runways rated shallower than the safety floor get
// the floor.
func (p Params) GlideslopeTang(landing catalog.RunwayEnd) float64 {
	angle := math.Max(p.MinGlideslopeAngle, landing.GlideslopeAngle())
	return metersPerKilometer * math.Tan(geometry.DegToRad(angle))
}

// GlideslopeAltitude returns the altitude on the glideslope dist kilometres
// before the threshold
func (p Params) GlideslopeAltitude(landing catalog.RunwayEnd, dist float64) float64 {
	return landing.Altitude + dist*p.GlideslopeTang(landing) + p.correction()
}

// GlideslopePoint returns the point on the extended centreline dist
// kilometres before the threshold with its glideslope altitude
func (p Params) GlideslopePoint(body geometry.Body, landing, opposite catalog.RunwayEnd, dist float64) (geometry.Point, float64, error) {
	pt, err := body.StepTo(landing.Point, opposite.Point, -dist)
	if err != nil {
		return geometry.Point{}, 0, err
	}
	return pt, p.GlideslopeAltitude(landing, dist), nil
}

// MakeApproach builds the IAF, FAF, flare and stop waypoints for landing at
// the landing end toward the opposite end
func (p Params) MakeApproach(body geometry.Body, landing, opposite catalog.RunwayEnd) (Approach, error) {
	fix := func(name string, marker Marker, dist float64) (Waypoint, error) {
		pt, alt, err := p.GlideslopePoint(body, landing, opposite, dist)
		if err != nil {
			return Waypoint{}, err
		}
		return Waypoint{Name: name, Point: pt, Altitude: alt, Marker: marker}, nil
	}

	var a Approach
	var err error
	if a.IAF, err = fix("IAF", MarkerIAF, p.IAFDistance); err != nil {
		return Approach{}, err
	}
	if a.FAF, err = fix("FAF", MarkerFAF, p.FAFDistance); err != nil {
		return Approach{}, err
	}
	if a.Flare, err = fix("FLARE", MarkerRunway, p.FlareDistance); err != nil {
		return Approach{}, err
	}
	a.Stop = Waypoint{Name: "STOP", Point: opposite.Point, Altitude: opposite.Altitude, Marker: MarkerStop}
	return a, nil
}
