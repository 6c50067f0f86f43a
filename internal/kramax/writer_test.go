package kramax

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/flightplan"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/pkg/logger"
)

func testProfile() flightplan.Profile {
	return flightplan.Profile{
		Waypoints: []flightplan.Waypoint{
			{Name: "TAKEOFF", Point: geometry.Point{Lat: -0.0486, Lon: -74.7244}, Altitude: 246.3},
			{Name: "ASC-NDB", Point: geometry.Point{Lat: 1, Lon: -70}, Altitude: 2500.5, Hidden: true},
			{Name: "IAF", Point: geometry.Point{Lat: 2, Lon: -65}, Altitude: 1511.5, Marker: flightplan.MarkerIAF},
			{Name: "STOP", Point: geometry.Point{Lat: 2.1, Lon: -64.9}, Altitude: 70, Marker: flightplan.MarkerStop},
		},
		LegDistances: []float64{100.123, 20},
	}
}

func TestWaypointNode(t *testing.T) {
	tests := []struct {
		name string
		wp   flightplan.Waypoint
		want map[string]string
	}{
		{
			name: "plain",
			wp:   flightplan.Waypoint{Name: "TAKEOFF", Point: geometry.Point{Lat: 1.5, Lon: -2.25}, Altitude: 246.3},
			want: map[string]string{"name": "TAKEOFF", "Vertical": "true", "lat": "1.5", "lon": "-2.25", "alt": "246"},
		},
		{
			name: "half rounds to even",
			wp:   flightplan.Waypoint{Name: "X", Altitude: 2500.5},
			want: map[string]string{"alt": "2500"},
		},
		{
			name: "marker",
			wp:   flightplan.Waypoint{Name: "FLARE", Altitude: 85.9, Marker: flightplan.MarkerRunway},
			want: map[string]string{"alt": "86", "RW": "true"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := WaypointNode(tt.wp)
			for key, want := range tt.want {
				if got, _ := n.Get(key); got != want {
					t.Errorf("%s = %q, want %q", key, got, want)
				}
			}
		})
	}

	if n := WaypointNode(flightplan.Waypoint{Name: "A"}); n.Len() != 5 {
		t.Errorf("unmarked waypoint has %d values, want 5", n.Len())
	}
}

func TestWriteAll(t *testing.T) {
	w := NewWriter("Kerbin", logger.NewNop())
	dir := t.TempDir()

	routes := []catalog.Route{
		{From: "Kerbal Space Centre", To: "Old KSC"},
		{From: "Ben Bay", To: "Old KSC"},
	}
	profile := testProfile()
	profiles := map[string]*flightplan.Profile{routes[0].Name(): &profile}

	written, err := w.WriteAll(dir, routes, profiles)
	if err != nil {
		t.Fatalf("WriteAll() error = %v", err)
	}
	if written != 1 {
		t.Errorf("WriteAll() = %d, want 1", written)
	}

	data, err := os.ReadFile(filepath.Join(dir, PlansDir, "Kerbal Space Centre-Old KSC.cfg"))
	if err != nil {
		t.Fatalf("reading plan: %v", err)
	}
	text := string(data)
	for _, want := range []string{
		"\nFLIGHTPLAN\n{",
		"\tdescription = Kerbal Space Centre - Old KSC flight, 120.12 km as flown",
		"\tplanet = Kerbin",
		"\t\tname = ASC-NDB",
		"\t\tIAF = true",
		"\t\tStop = true",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("plan lacks %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "WAYPOINT"); got != 4 {
		t.Errorf("plan has %d waypoints, want 4", got)
	}

	if _, err := os.Stat(filepath.Join(dir, PlansDir, FileName(routes[1]))); !os.IsNotExist(err) {
		t.Errorf("plan without profile was written, stat error = %v", err)
	}
}
