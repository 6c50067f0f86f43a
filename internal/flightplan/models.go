package flightplan

import "github.com/kerbinside/gapgen/internal/geometry"

// Marker tags the approach role of a waypoint
type Marker string

const (
	MarkerNone   Marker = ""
	MarkerIAF    Marker = "IAF"
	MarkerFAF    Marker = "FAF"
	MarkerRunway Marker = "RW"
	MarkerStop   Marker = "Stop"
)

// Waypoint is a named point of a flight profile
type Waypoint struct {
	Name string
	geometry.Point
	Altitude float64 // Above sea level, metres
	Marker   Marker
	Hidden   bool // Climb and descent level-off points inserted by the synthesizer
}

// Profile is the synthesized waypoint sequence from takeoff to stop
type Profile struct {
	Waypoints []Waypoint
	// LegDistances are the kilometres from the takeoff point through each
	// beacon to the landing threshold
	LegDistances []float64
}

// AsFlown returns the total distance through the beacons
func (p Profile) AsFlown() float64 {
	var total float64
	for _, d := range p.LegDistances {
		total += d
	}
	return total
}

// Fixes returns the waypoints without the synthesized level-off points
func (p Profile) Fixes() []Waypoint {
	fixes := make([]Waypoint, 0, len(p.Waypoints))
	for _, wp := range p.Waypoints {
		if !wp.Hidden {
			fixes = append(fixes, wp)
		}
	}
	return fixes
}
