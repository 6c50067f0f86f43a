package flightplan

import (
	"fmt"
	"math"

	"github.com/kerbinside/gapgen/internal/geometry"
)

const metersPerKilometer = 1000

// Params holds the tunable constants of flight profile synthesis.
// Distances are in kilometres, altitudes in metres, angles in degrees.
type Params struct {
	ClimbAngle            float64 // Steepest cruise climb
	DescentAngle          float64 // Steepest cruise descent
	TakeoffDistance       float64 // Climb run covered by the takeoff waypoint
	StraightClimbAltitude float64 // Height above the runway flown on runway heading
	MinGlideslopeAngle    float64 // Safety floor for every approach
	GlideslopeCorrection  float64 // Run in metres at the safety floor added to every glideslope altitude
	IAFDistance           float64
	FAFDistance           float64
	FlareDistance         float64
	MinIAFLevelDistance   float64 // Shortest leg between the IAF level-off point and the IAF
	DirectIAFFactor       float64 // Beyond this many IAF distances a separate IAF is flown
	HelipadStopDistance   float64 // Length of the synthetic rollout past a helipad
}

// DefaultParams returns the reference deployment constants
func DefaultParams() Params {
	return Params{
		ClimbAngle:            10,
		DescentAngle:          10,
		TakeoffDistance:       0.1,
		StraightClimbAltitude: 1500,
		MinGlideslopeAngle:    3.3,
		GlideslopeCorrection:  75,
		IAFDistance:           25,
		FAFDistance:           10,
		FlareDistance:         0.2,
		MinIAFLevelDistance:   3,
		DirectIAFFactor:       1.25,
		HelipadStopDistance:   0.5,
	}
}

// Validate rejects parameters that cannot produce a sensible profile
func (p Params) Validate() error {
	angles := []struct {
		name  string
		value float64
	}{
		{"climb angle", p.ClimbAngle},
		{"descent angle", p.DescentAngle},
		{"min glideslope angle", p.MinGlideslopeAngle},
	}
	for _, angle := range angles {
		if angle.value <= 0 || angle.value >= 90 {
			return fmt.Errorf("%s %g must be within (0, 90) degrees", angle.name, angle.value)
		}
	}
	if p.FlareDistance <= 0 || p.FAFDistance <= p.FlareDistance || p.IAFDistance <= p.FAFDistance {
		return fmt.Errorf("approach distances must satisfy 0 < flare (%g) < FAF (%g) < IAF (%g)",
			p.FlareDistance, p.FAFDistance, p.IAFDistance)
	}
	if p.DirectIAFFactor < 1 {
		return fmt.Errorf("direct IAF factor %g must be at least 1", p.DirectIAFFactor)
	}
	if p.TakeoffDistance < 0 || p.StraightClimbAltitude < 0 || p.GlideslopeCorrection < 0 ||
		p.MinIAFLevelDistance < 0 || p.HelipadStopDistance <= 0 {
		return fmt.Errorf("takeoff, climb, correction and stop distances must not be negative")
	}
	return nil
}

// climbTang is the altitude gained per kilometre at the steepest climb
func (p Params) climbTang() float64 {
	return math.Tan(geometry.DegToRad(p.ClimbAngle)) * metersPerKilometer
}

// descentTang is the altitude lost per kilometre at the steepest descent
func (p Params) descentTang() float64 {
	return math.Tan(geometry.DegToRad(p.DescentAngle)) * metersPerKilometer
}

// correction is the fixed clearance added to glideslope altitudes
func (p Params) correction() float64 {
	return p.GlideslopeCorrection * math.Tan(geometry.DegToRad(p.MinGlideslopeAngle))
}
