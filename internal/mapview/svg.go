package mapview

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// svgScale is the number of user units per pixel; svgo takes integer
// coordinates, so drawing at a finer grid keeps sub-pixel positions
const svgScale = 10

// SVG is a Drawing backed by an svgo canvas
type SVG struct {
	canvas *svg.SVG
}

// NewSVG starts an SVG document of the given pixel size on w
func NewSVG(w io.Writer, width, height float64) *SVG {
	canvas := svg.New(w)
	pw, ph := int(math.Round(width)), int(math.Round(height))
	canvas.Startview(pw, ph, 0, 0, pw*svgScale, ph*svgScale)
	return &SVG{canvas: canvas}
}

// End closes the document
func (s *SVG) End() {
	s.canvas.End()
}

func scaled(v float64) int {
	return int(math.Round(v * svgScale))
}

func (st Style) svg() string {
	if st.Width == 0 {
		return fmt.Sprintf("fill:%s;stroke:none", st.Color)
	}
	return fmt.Sprintf("fill:none;stroke:%s;stroke-width:%d;stroke-linecap:round;stroke-linejoin:round", st.Color, scaled(st.Width))
}

func (s *SVG) Path(points []Pixel, style Style) {
	xs, ys := make([]int, len(points)), make([]int, len(points))
	for i, p := range points {
		xs[i], ys[i] = scaled(p.X), scaled(p.Y)
	}
	s.canvas.Polyline(xs, ys, style.svg())
}

func (s *SVG) Line(from, to Pixel, style Style) {
	s.canvas.Line(scaled(from.X), scaled(from.Y), scaled(to.X), scaled(to.Y), style.svg())
}

func (s *SVG) Circle(center Pixel, radius float64, style Style) {
	s.canvas.Circle(scaled(center.X), scaled(center.Y), scaled(radius), style.svg())
}

func (s *SVG) Text(at Pixel, text string, style TextStyle) {
	s.canvas.Text(scaled(at.X), scaled(at.Y), text,
		fmt.Sprintf("font-family:sans-serif;font-size:%dpx;text-anchor:%s", scaled(style.FontSize), style.Anchor))
}
