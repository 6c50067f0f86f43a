package mapview

import (
	"fmt"
	"math"

	"github.com/kerbinside/gapgen/internal/geometry"
)

// Settings describes the route map canvas and its strokes, all in pixels
type Settings struct {
	Width             float64
	Height            float64
	BaseLongitude     float64 // Longitude drawn at the left edge, where the map wraps
	LineWidth         float64
	ArrowOffset       float64 // Gap between a location mark and the route line
	ArrowheadTan      float64 // Half-width to length ratio of the arrowhead
	ArrowheadLength   float64
	PointRadiusFactor float64 // Location mark radius relative to the larger map side
}

// DefaultSettings returns the reference map layout
func DefaultSettings() Settings {
	return Settings{
		Width:             4096,
		Height:            2048,
		BaseLongitude:     60,
		LineWidth:         3,
		ArrowOffset:       15,
		ArrowheadTan:      0.25,
		ArrowheadLength:   25,
		PointRadiusFactor: 0.001,
	}
}

// Validate rejects layouts that cannot be drawn
func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("map size %gx%g must be positive", s.Width, s.Height)
	}
	if s.LineWidth <= 0 || s.ArrowOffset <= 0 || s.ArrowheadLength <= 0 || s.ArrowheadTan <= 0 {
		return fmt.Errorf("line width, arrow offset and arrowhead size must be positive")
	}
	if s.PointRadiusFactor <= 0 {
		return fmt.Errorf("point radius factor %g must be positive", s.PointRadiusFactor)
	}
	return nil
}

// PointRadius returns the radius of a location mark
func (s Settings) PointRadius() float64 {
	return s.PointRadiusFactor * math.Max(s.Width, s.Height)
}

// Pixel is a map position, x to the right and y down
type Pixel struct {
	X, Y float64
}

func (p Pixel) Add(q Pixel) Pixel             { return Pixel{p.X + q.X, p.Y + q.Y} }
func (p Pixel) Sub(q Pixel) Pixel             { return Pixel{p.X - q.X, p.Y - q.Y} }
func (p Pixel) Scale(k float64) Pixel         { return Pixel{p.X * k, p.Y * k} }
func (p Pixel) Len() float64                  { return math.Hypot(p.X, p.Y) }
func (p Pixel) Shift(dx float64) Pixel        { return Pixel{p.X + dx, p.Y} }
func (p Pixel) lerp(q Pixel, t float64) Pixel { return p.Add(q.Sub(p).Scale(t)) }

// Project maps an angle position onto the equirectangular map
func (s Settings) Project(p geometry.Point) Pixel {
	x := math.Mod(p.Lon-s.BaseLongitude, 360)
	if x < 0 {
		x += 360
	}
	return Pixel{
		X: s.Width * x / 360,
		Y: s.Height * (0.5 - p.Lat/180),
	}
}
