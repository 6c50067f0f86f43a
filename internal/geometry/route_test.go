package geometry

import (
	"math"
	"slices"
	"testing"
)

func TestRoutePoints(t *testing.T) {
	p1, p2 := Point{Lat: -0.05, Lon: -74.7}, Point{Lat: 20.65, Lon: -146.44}
	dist := Kerbin.Distance(p1, p2)
	wantSteps := int(math.Ceil(dist / Kerbin.MaxRouteStep))

	tests := []struct {
		name                      string
		includeFirst, includeLast bool
		wantLen                   int
	}{
		{name: "both endpoints", includeFirst: true, includeLast: true, wantLen: wantSteps + 1},
		{name: "no first", includeFirst: false, includeLast: true, wantLen: wantSteps},
		{name: "no last", includeFirst: true, includeLast: false, wantLen: wantSteps},
		{name: "interior only", wantLen: wantSteps - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := slices.Collect(Kerbin.RoutePoints(p1, p2, tt.includeFirst, tt.includeLast))
			if len(points) != tt.wantLen {
				t.Fatalf("got %d points, want %d", len(points), tt.wantLen)
			}
			if tt.includeFirst && points[0] != p1 {
				t.Errorf("first point = %v, want %v", points[0], p1)
			}
			if tt.includeLast && points[len(points)-1] != p2 {
				t.Errorf("last point = %v, want %v", points[len(points)-1], p2)
			}
		})
	}
}

func TestRoutePointsSpacing(t *testing.T) {
	p1, p2 := Point{Lat: 63.88, Lon: -172.44}, Point{Lat: 44.27, Lon: -132.0}
	points := slices.Collect(Kerbin.RoutePoints(p1, p2, true, true))

	step := Kerbin.Distance(p1, p2) / float64(len(points)-1)
	if step > Kerbin.MaxRouteStep {
		t.Fatalf("step %v exceeds max route step", step)
	}
	for i := 1; i < len(points); i++ {
		d := Kerbin.Distance(points[i-1], points[i])
		if math.Abs(d-step) > 1e-3 {
			t.Errorf("segment %d is %v km, want %v", i, d, step)
		}
	}
}

func TestRoutePointsShortRoute(t *testing.T) {
	p := Point{Lat: 1, Lon: 1}
	points := slices.Collect(Kerbin.RoutePoints(p, p, true, true))
	if len(points) != 2 {
		t.Fatalf("got %d points for a zero-length route, want 2", len(points))
	}
}

func TestRoutePointsStopsEarly(t *testing.T) {
	count := 0
	for range Kerbin.RoutePoints(Point{0, 0}, Point{0, 60}, true, true) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("iteration count = %d, want 3", count)
	}
}
