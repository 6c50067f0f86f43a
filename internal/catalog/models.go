package catalog

import (
	"regexp"

	"github.com/kerbinside/gapgen/internal/geometry"
)

// DefaultLabelOffset is the vertical offset of a location label on the route
// map, in point radii
const DefaultLabelOffset = 2.25

// Altitude is a height above the terrain together with the terrain elevation
type Altitude struct {
	Ground   float64 // Terrain elevation above sea level, metres
	Relative float64 // Height above the terrain, metres
}

// Absolute returns the altitude above sea level
func (a Altitude) Absolute() float64 {
	return a.Ground + a.Relative
}

// Site is a spawn or parking point of a location
type Site struct {
	geometry.Point
	Altitude Altitude
}

// RunwayEnd is one threshold of a runway. Glideslope is nil when landing
// toward this end is not permitted.
type RunwayEnd struct {
	geometry.Point
	Altitude   float64 // Above sea level, metres
	Glideslope *float64
}

// Landable reports whether aircraft may land at this end
func (e RunwayEnd) Landable() bool {
	return e.Glideslope != nil
}

// GlideslopeAngle returns the rated glideslope angle in degrees, zero when
// the end is not landable
func (e RunwayEnd) GlideslopeAngle() float64 {
	if e.Glideslope == nil {
		return 0
	}
	return *e.Glideslope
}

// Runway is an ordered pair of runway ends
type Runway struct {
	First  RunwayEnd
	Second RunwayEnd
}

// Beacon is a named navigation point
type Beacon struct {
	Name string
	geometry.Point
	Altitude float64 // Above sea level, metres
}

// Location is a base on the planet surface
type Location struct {
	Name            string
	Description     string
	Helipad         *Site
	AircraftLaunch  *Site
	AircraftParking *Site
	StaffSpawn      *Site
	VIPSpawn        *Site
	LaunchRefund    int
	RecoveryFactor  int
	KKBaseName      string
	Runways         []Runway
	LabelOffset     float64
}

// PositionSite returns the helipad, or the aircraft launch point when the
// location has no helipad
func (l *Location) PositionSite() *Site {
	if l.Helipad != nil {
		return l.Helipad
	}
	return l.AircraftLaunch
}

// Position returns the reference point of the location
func (l *Location) Position() geometry.Point {
	if site := l.PositionSite(); site != nil {
		return site.Point
	}
	return geometry.Point{}
}

// PlaneAllowed reports whether a plane can fly from l to dest
func (l *Location) PlaneAllowed(dest *Location) bool {
	return l.AircraftLaunch != nil && dest.AircraftParking != nil
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)

// AlphanumName returns the name with everything but letters and digits removed
func (l *Location) AlphanumName() string {
	return nonAlphanumeric.ReplaceAllString(l.Name, "")
}

// Kind is a contract type
type Kind string

const (
	KindService      Kind = "service"
	KindBusiness     Kind = "business"
	KindTouristGroup Kind = "tourist_group"
	KindCharter      Kind = "charter"
	KindCommercial   Kind = "commercial"
)

// Kinds lists every contract type in output order
var Kinds = []Kind{KindService, KindBusiness, KindTouristGroup, KindCharter, KindCommercial}

// Valid reports whether k is a known contract type
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// FixedReward reports whether routes of this kind carry their own reward
func (k Kind) FixedReward() bool {
	return k == KindBusiness || k == KindTouristGroup
}

// TypedStaff reports whether routes of this kind carry a staff type
func (k Kind) TypedStaff() bool {
	return k == KindService || k == KindBusiness
}

// Route is a contract route between two locations
type Route struct {
	From         string
	To           string
	Kind         Kind
	Objective    string
	SpecialNotes string
	StaffType    string
	Reward       int
	Beacons      []string
	FlightLevel  float64 // Metres, zero means the configured default
}

// Name returns a short human readable route name
func (r Route) Name() string {
	return r.From + " - " + r.To
}
