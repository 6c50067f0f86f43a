package mapview

import (
	"fmt"
	"math"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
)

// Renderer draws great-circle routes as arrows on a wrapping map
type Renderer struct {
	body     geometry.Body
	settings Settings
}

// NewRenderer creates a new route renderer
func NewRenderer(body geometry.Body, settings Settings) *Renderer {
	return &Renderer{body: body, settings: settings}
}

// Settings returns the map layout
func (r *Renderer) Settings() Settings {
	return r.settings
}

// RenderRoute draws an arrow from one location through the beacons to another
func (r *Renderer) RenderRoute(d Drawing, from, to *catalog.Location, beacons []catalog.Beacon, style Style) error {
	points := make([]geometry.Point, 0, len(beacons)+2)
	points = append(points, from.Position())
	for _, b := range beacons {
		points = append(points, b.Point)
	}
	points = append(points, to.Position())

	if err := r.RenderPath(d, points, style); err != nil {
		return fmt.Errorf("%s to %s: %w", from.Name, to.Name, err)
	}
	return nil
}

// RenderPath draws an arrow along the great circles joining the points. The
// line stops short of both ends by the arrow offset and ends in an
// arrowhead. Segments crossing the map edge are continued on the other side.
func (r *Renderer) RenderPath(d Drawing, points []geometry.Point, style Style) error {
	if len(points) < 2 {
		return fmt.Errorf("%w: need at least two points, got %d", ErrRouteTooShort, len(points))
	}

	path := r.unwrap(r.discretize(points))
	start, end := path[0], path[len(path)-1]
	if gap := end.Sub(start).Len(); gap < 3*r.settings.ArrowOffset {
		return fmt.Errorf("%w: ends are %.1f px apart", ErrRouteTooShort, gap)
	}

	back := tailDirection(path)
	path = trimEnd(trimStart(path, r.settings.ArrowOffset), r.settings.ArrowOffset)

	width := r.settings.Width
	for _, fragment := range splitAtSeams(path, width) {
		d.Path(fragment, style)
	}

	tip := path[len(path)-1]
	length := r.settings.ArrowheadLength
	side := Pixel{X: back.Y, Y: -back.X}.Scale(r.settings.ArrowheadTan * length)
	wings := [2]Pixel{
		tip.Add(back.Scale(length)).Add(side),
		tip.Add(back.Scale(length)).Sub(side),
	}

	shift := -math.Floor(tip.X/width) * width
	shifts := []float64{shift}
	for _, wing := range wings {
		if x := wing.X + shift; x < 0 {
			shifts = append(shifts, shift+width)
			break
		} else if x > width {
			shifts = append(shifts, shift-width)
			break
		}
	}
	for _, dx := range shifts {
		for _, wing := range wings {
			d.Line(wing.Shift(dx), tip.Shift(dx), style)
		}
	}
	return nil
}

// discretize returns the great-circle points of every leg, each junction once
func (r *Renderer) discretize(points []geometry.Point) []geometry.Point {
	var out []geometry.Point
	for i := 1; i < len(points); i++ {
		for p := range r.body.RoutePoints(points[i-1], points[i], i == 1, true) {
			out = append(out, p)
		}
	}
	return out
}

// unwrap projects the points so that consecutive pixels never jump by more
// than half the map width; x may leave [0, width) as a result
func (r *Renderer) unwrap(points []geometry.Point) []Pixel {
	width := r.settings.Width
	out := make([]Pixel, len(points))
	for i, p := range points {
		px := r.settings.Project(p)
		if i > 0 {
			prev := out[i-1].X
			for px.X-prev > width/2 {
				px.X -= width
			}
			for prev-px.X > width/2 {
				px.X += width
			}
		}
		out[i] = px
	}
	return out
}

// tailDirection returns the unit vector from the last point back along the path
func tailDirection(path []Pixel) Pixel {
	tip := path[len(path)-1]
	for i := len(path) - 2; i >= 0; i-- {
		if v := path[i].Sub(tip); v.Len() > 0 {
			return v.Scale(1 / v.Len())
		}
	}
	return Pixel{X: -1}
}

// trimStart removes the first dist pixels of the path
func trimStart(path []Pixel, dist float64) []Pixel {
	for i := 1; i < len(path); i++ {
		seg := path[i].Sub(path[i-1]).Len()
		if seg > dist {
			out := []Pixel{path[i-1].lerp(path[i], dist/seg)}
			return append(out, path[i:]...)
		}
		dist -= seg
	}
	return path[len(path)-1:]
}

// trimEnd removes the last dist pixels of the path
func trimEnd(path []Pixel, dist float64) []Pixel {
	for i := len(path) - 1; i > 0; i-- {
		seg := path[i].Sub(path[i-1]).Len()
		if seg > dist {
			out := append([]Pixel(nil), path[:i]...)
			return append(out, path[i].lerp(path[i-1], dist/seg))
		}
		dist -= seg
	}
	return path[:1]
}

// splitAtSeams cuts an unwrapped path where it crosses a multiple of width
// and shifts every piece back onto the map
func splitAtSeams(path []Pixel, width float64) [][]Pixel {
	copyOf := func(p Pixel) int {
		return int(math.Floor(p.X / width))
	}

	var fragments [][]Pixel
	k := copyOf(path[0])
	current := []Pixel{path[0].Shift(-float64(k) * width)}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		for next := copyOf(b); next != k; {
			step, edge := 1, float64(k+1)*width
			if next < k {
				step, edge = -1, float64(k)*width
			}
			cross := a.lerp(b, (edge-a.X)/(b.X-a.X))
			current = append(current, cross.Shift(-float64(k)*width))
			fragments = append(fragments, current)

			k += step
			current = []Pixel{cross.Shift(-float64(k) * width)}
		}
		current = append(current, b.Shift(-float64(k)*width))
	}
	return append(fragments, current)
}
