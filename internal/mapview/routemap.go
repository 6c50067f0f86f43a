package mapview

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/contracts"
	"github.com/kerbinside/gapgen/pkg/logger"
)

// labelFontSize is the location label size in pixels
const labelFontSize = 32

// RouteMap draws every catalog route and location onto one map
type RouteMap struct {
	renderer *Renderer
	catalog  *catalog.Catalog
	logger   *logger.Logger
}

// NewRouteMap creates a new route map generator
func NewRouteMap(renderer *Renderer, cat *catalog.Catalog, log *logger.Logger) *RouteMap {
	return &RouteMap{
		renderer: renderer,
		catalog:  cat,
		logger:   log.Named("route-map"),
	}
}

// Draw renders all routes, then all locations on top of them. Routes too
// short to draw are skipped with a warning. It returns the number of routes
// drawn.
func (m *RouteMap) Draw(d Drawing) (int, error) {
	settings := m.renderer.Settings()
	drawn := 0

	for _, route := range m.catalog.Routes() {
		from, to, err := m.catalog.Endpoints(route)
		if err != nil {
			return drawn, err
		}
		beacons, err := m.catalog.Beacons(route.Beacons)
		if err != nil {
			return drawn, fmt.Errorf("route %s: %w", route.Name(), err)
		}

		style := Style{Color: contracts.ClassOf(route.Kind).RouteColor, Width: settings.LineWidth}
		err = m.renderer.RenderRoute(d, from, to, beacons, style)
		if errors.Is(err, ErrRouteTooShort) {
			m.logger.Warn("Skipping route",
				logger.String("route", route.Name()),
				logger.Error(err))
			continue
		}
		if err != nil {
			return drawn, err
		}
		drawn++
	}

	radius := settings.PointRadius()
	for _, loc := range m.catalog.Locations() {
		pt := settings.Project(loc.Position())
		d.Circle(pt, radius, Style{Color: "black"})

		label := TextStyle{Anchor: "start", FontSize: labelFontSize}
		dx := 4 * radius
		if pt.X >= 0.9*settings.Width {
			label.Anchor, dx = "end", -dx
		}
		d.Text(Pixel{X: pt.X + dx, Y: pt.Y + loc.LabelOffset*radius}, loc.Name, label)
	}

	return drawn, nil
}

// WriteFile renders the map into an SVG file. Nothing is written when a
// route cannot be drawn.
func (m *RouteMap) WriteFile(path string) error {
	var buf bytes.Buffer
	settings := m.renderer.Settings()
	canvas := NewSVG(&buf, settings.Width, settings.Height)
	drawn, err := m.Draw(canvas)
	if err != nil {
		return err
	}
	canvas.End()

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write map file: %w", err)
	}

	m.logger.Info("Route map written",
		logger.String("path", path),
		logger.Int("routes", drawn),
		logger.Int("locations", len(m.catalog.Locations())))
	return nil
}
