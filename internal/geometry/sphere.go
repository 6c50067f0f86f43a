package geometry

import (
	"fmt"
	"math"
)

// Point is an angle position on the sphere, latitude first.
// Altitude never takes part in sphere calculations and is carried by callers.
type Point struct {
	Lat float64 // Degrees, positive north
	Lon float64 // Degrees, positive east
}

// Body describes the sphere all distances are measured on
type Body struct {
	Name         string
	Radius       float64 // Kilometres
	MaxRouteStep float64 // Longest single step of a discretized route, kilometres
}

// Kerbin is the reference deployment body
var Kerbin = Body{Name: "Kerbin", Radius: 600, MaxRouteStep: 25}

var northPole = ToVector(Point{Lat: 90})

// Validate checks that the body can take route steps without losing accuracy
func (b Body) Validate() error {
	if b.Radius <= 0 {
		return fmt.Errorf("%w: radius %g must be positive", ErrInvalidBody, b.Radius)
	}
	if b.MaxRouteStep <= 0 {
		return fmt.Errorf("%w: max route step %g must be positive", ErrInvalidBody, b.MaxRouteStep)
	}
	if 2*b.MaxRouteStep >= b.quarter() {
		return fmt.Errorf("%w: max route step %g is too large for radius %g", ErrInvalidBody, b.MaxRouteStep, b.Radius)
	}
	return nil
}

func (b Body) quarter() float64 {
	return b.Radius * math.Pi / 2
}

// MaxStepDistance returns the largest |distance| StepTo accepts
func (b Body) MaxStepDistance() float64 {
	return b.quarter() - b.MaxRouteStep
}

func DegToRad(deg float64) float64 { return deg * math.Pi / 180 }

func RadToDeg(rad float64) float64 { return rad * 180 / math.Pi }

// NormalizeLongitude maps any longitude into (-180, 180]
func NormalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}

// NormalizeHeading maps any heading into [0, 360)
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// bounded applies an arc function after clamping its argument to [-1, 1]
func bounded(f func(float64) float64, arg float64) float64 {
	return f(math.Max(-1, math.Min(1, arg)))
}

// ToVector returns the unit-sphere vector of an angle position
func ToVector(p Point) Vector {
	theta, phi := DegToRad(p.Lat), DegToRad(p.Lon)
	return Vector{
		X: math.Cos(phi) * math.Cos(theta),
		Y: math.Sin(phi) * math.Cos(theta),
		Z: math.Sin(theta),
	}
}

// ToAngles returns the angle position of a unit-sphere vector with
// longitude in (-180, 180]. Latitude comes from a clamped asin so that
// rounding overshoot never produces NaN; longitude uses atan2 which keeps
// full precision close to the poles.
func ToAngles(v Vector) Point {
	theta := bounded(math.Asin, v.Z)
	phi := math.Atan2(v.Y, v.X)
	return Point{Lat: RadToDeg(theta), Lon: NormalizeLongitude(RadToDeg(phi))}
}

// ChordToTangent returns the unit vector tangent to the sphere at p1 pointing
// along the great circle toward p2. It is zero when p2 coincides with p1 or
// its antipode.
func ChordToTangent(p1, p2 Vector) Vector {
	chord := p2.Sub(p1)
	coef := chord.Dot(p1)
	return chord.Sub(p1.Scale(coef)).Normalize()
}

// Distance returns the great-circle distance between two points in kilometres
func (b Body) Distance(p1, p2 Point) float64 {
	if p1 == p2 {
		return 0
	}
	v1, v2 := ToVector(p1), ToVector(p2)
	return b.Radius * angleBetween(v1, v2)
}

// angleBetween returns the angle between two vectors in radians. atan2 keeps
// full precision for nearly parallel and nearly opposite vectors.
func angleBetween(v1, v2 Vector) float64 {
	return math.Atan2(v1.Cross(v2).Norm(), v1.Dot(v2))
}

// Heading returns the initial true heading at p1 toward p2 in [0, 360).
// Coincident points and the poles have heading 0.
func Heading(p1, p2 Point) float64 {
	v1 := ToVector(p1)
	dirTang := ChordToTangent(v1, ToVector(p2))
	poleTang := ChordToTangent(v1, northPole)
	if dirTang.IsZero() || poleTang.IsZero() {
		return 0
	}

	heading := RadToDeg(angleBetween(dirTang, poleTang))
	if v1.Dot(dirTang.Cross(poleTang)) < 0 {
		heading = 360 - heading
	}
	return NormalizeHeading(heading)
}

// StepTo moves from p1 along the great circle toward p2 by dist kilometres.
// A negative distance moves away from p2. Steps close to a quarter of the
// circumference are refused since the tangent-plane step loses accuracy.
func (b Body) StepTo(p1, p2 Point, dist float64) (Point, error) {
	if math.Abs(dist)+b.MaxRouteStep > b.quarter() {
		return Point{}, fmt.Errorf("%w: %.3f km (split the step into several parts)", ErrDistanceTooLarge, dist)
	}
	return b.step(ToVector(p1), ToVector(p2), dist), nil
}

func (b Body) step(v1, v2 Vector, dist float64) Point {
	tang := ChordToTangent(v1, v2).Scale(math.Tan(dist / b.Radius))
	return ToAngles(v1.Add(tang).Normalize())
}
