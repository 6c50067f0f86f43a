package flightplan

import (
	"errors"
	"math"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
	"github.com/kerbinside/gapgen/pkg/logger"
)

func glideslope(angle float64) *float64 {
	return &angle
}

// kmToLon converts an equatorial distance to degrees of longitude
func kmToLon(km float64) float64 {
	return geometry.RadToDeg(km / geometry.Kerbin.Radius)
}

// equatorRoute returns an eastbound departure runway and a destination whose
// western threshold lies km kilometres east of the takeoff point
func equatorRoute(km float64) (catalog.Runway, *catalog.Location) {
	departure := catalog.Runway{
		First:  catalog.RunwayEnd{Point: geometry.Point{Lon: 0}, Altitude: 70, Glideslope: glideslope(0)},
		Second: catalog.RunwayEnd{Point: geometry.Point{Lon: 0.02}, Altitude: 70, Glideslope: glideslope(0)},
	}
	threshold := 0.02 + kmToLon(km)
	dest := &catalog.Location{
		Name: "Destination",
		Runways: []catalog.Runway{{
			First:  catalog.RunwayEnd{Point: geometry.Point{Lon: threshold}, Altitude: 70, Glideslope: glideslope(0)},
			Second: catalog.RunwayEnd{Point: geometry.Point{Lon: threshold + 0.2}, Altitude: 70, Glideslope: glideslope(0)},
		}},
	}
	return departure, dest
}

func newTestSynthesizer() *Synthesizer {
	return NewSynthesizer(geometry.Kerbin, DefaultParams(), logger.NewNop())
}

func names(wps []Waypoint) []string {
	out := make([]string, len(wps))
	for i, wp := range wps {
		out[i] = wp.Name
	}
	return out
}

func markers(wps []Waypoint) []Marker {
	out := make([]Marker, len(wps))
	for i, wp := range wps {
		out[i] = wp.Marker
	}
	return out
}

func TestSynthesizeShortDirectRoute(t *testing.T) {
	s := newTestSynthesizer()
	departure, dest := equatorRoute(50)

	profile, err := s.Synthesize(departure, dest, nil, 4000)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	wps := profile.Waypoints
	wantNames := []string{"TAKEOFF", "ASCENT", "FL-ASC-ASC", "FL-ASC", "FAF", "FLARE", "STOP"}
	if got := names(wps); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("waypoints = %v, want %v", got, wantNames)
	}
	wantMarkers := []Marker{MarkerNone, MarkerNone, MarkerNone, MarkerIAF, MarkerFAF, MarkerRunway, MarkerStop}
	if got := markers(wps); !reflect.DeepEqual(got, wantMarkers) {
		t.Errorf("markers = %v, want %v", got, wantMarkers)
	}
	if !wps[2].Hidden || wps[3].Hidden {
		t.Errorf("only the level-off point must be hidden: %+v", wps)
	}

	p := s.Params()
	climb := p.climbTang()
	if got, want := wps[0].Altitude, 70+0.1*climb; math.Abs(got-want) > 1e-9 {
		t.Errorf("TAKEOFF altitude = %v, want %v", got, want)
	}
	if got := wps[1].Altitude; got != 1570 {
		t.Errorf("ASCENT altitude = %v, want 1570", got)
	}
	if got := wps[2].Altitude; got != 1570 {
		t.Errorf("climb starts at %v, want level at 1570", got)
	}

	// The FAF constraint is the binding one for a 50 km route
	faf := wps[4]
	want := faf.Altitude + p.descentTang()*geometry.Kerbin.Distance(faf.Point, wps[3].Point)
	if got := wps[3].Altitude; math.Abs(got-want) > 1e-9 || got >= 4000 {
		t.Errorf("FL-ASC altitude = %v, want %v below the flight level", got, want)
	}
	if got, want := faf.Altitude, 70+10*p.GlideslopeTang(dest.Runways[0].First)+p.correction(); math.Abs(got-want) > 1e-9 {
		t.Errorf("FAF altitude = %v, want %v", got, want)
	}
	if got := wps[6].Point; got != dest.Runways[0].Second.Point {
		t.Errorf("STOP = %v, want the far runway end", got)
	}

	if len(profile.LegDistances) != 1 || math.Abs(profile.AsFlown()-50) > 1e-3 {
		t.Errorf("LegDistances = %v, want a single 50 km leg", profile.LegDistances)
	}
}

func TestSynthesizeLongDirectRoute(t *testing.T) {
	s := newTestSynthesizer()
	departure, dest := equatorRoute(200)

	profile, err := s.Synthesize(departure, dest, nil, 4000)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	wps := profile.Waypoints
	wantNames := []string{"TAKEOFF", "ASCENT", "FL-ASC", "IAF-DESC", "IAF", "FAF", "FLARE", "STOP"}
	if got := names(wps); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("waypoints = %v, want %v", got, wantNames)
	}
	wantMarkers := []Marker{MarkerNone, MarkerNone, MarkerNone, MarkerNone, MarkerIAF, MarkerFAF, MarkerRunway, MarkerStop}
	if got := markers(wps); !reflect.DeepEqual(got, wantMarkers) {
		t.Errorf("markers = %v, want %v", got, wantMarkers)
	}

	if got := wps[2].Altitude; math.Abs(got-3999.9) > 1e-6 {
		t.Errorf("FL-ASC altitude = %v, want just below the flight level", got)
	}
	if wps[3].Altitude != wps[2].Altitude || !wps[3].Hidden {
		t.Errorf("IAF-DESC = %+v, want a hidden level point at cruise altitude", wps[3])
	}

	p := s.Params()
	if got, want := wps[4].Altitude, p.GlideslopeAltitude(dest.Runways[0].First, p.IAFDistance); math.Abs(got-want) > 1e-9 {
		t.Errorf("IAF altitude = %v, want %v", got, want)
	}
	descent := geometry.Kerbin.Distance(wps[3].Point, wps[4].Point)
	if want := (wps[3].Altitude - wps[4].Altitude) / p.descentTang(); math.Abs(descent-want) > 1e-6 {
		t.Errorf("descent to IAF starts %v km out, want %v", descent, want)
	}
}

// A cruise level just under the flight level must not get a separate
// crossing point a fraction of a metre further on
func TestSynthesizeDropsDegenerateLevelOff(t *testing.T) {
	s := newTestSynthesizer()
	departure, dest := equatorRoute(200)
	dest.Runways[0].First.Glideslope = glideslope(6)
	dest.Runways[0].Second.Glideslope = glideslope(6)

	profile, err := s.Synthesize(departure, dest, nil, 2000)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	wps := profile.Waypoints
	wantNames := []string{"TAKEOFF", "ASCENT", "FL-ASC", "IAF-ASC", "IAF", "FAF", "FLARE", "STOP"}
	if got := names(wps); !reflect.DeepEqual(got, wantNames) {
		t.Fatalf("waypoints = %v, want %v", got, wantNames)
	}
	if got := wps[2].Altitude; math.Abs(got-1999.9) > 1e-6 {
		t.Errorf("FL-ASC altitude = %v, want just below the flight level", got)
	}
	if wps[3].Altitude != wps[2].Altitude {
		t.Errorf("IAF-ASC altitude = %v, want level with FL-ASC", wps[3].Altitude)
	}
	if got := geometry.Kerbin.Distance(wps[3].Point, wps[4].Point); math.Abs(got-s.Params().MinIAFLevelDistance) > 1e-6 {
		t.Errorf("climb to IAF starts %v km out, want %v", got, s.Params().MinIAFLevelDistance)
	}
	if wps[4].Altitude != 2000 {
		t.Errorf("IAF altitude = %v, want clamped to the flight level", wps[4].Altitude)
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	s := newTestSynthesizer()
	departure, dest := equatorRoute(120)

	first, err := s.Synthesize(departure, dest, nil, 5000)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	second, err := s.Synthesize(departure, dest, nil, 5000)
	if err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("profiles differ:\n%+v\n%+v", first, second)
	}
}

func TestSynthesizeCatalogRoutes(t *testing.T) {
	cat, err := catalog.Embedded()
	if err != nil {
		t.Fatalf("Embedded() error = %v", err)
	}
	s := newTestSynthesizer()

	for _, route := range cat.Routes() {
		from, to, err := cat.Endpoints(route)
		if err != nil {
			t.Fatalf("Endpoints() error = %v", err)
		}
		departure, err := DepartureRunway(from)
		if err != nil {
			continue
		}

		t.Run(route.Name(), func(t *testing.T) {
			beacons, err := cat.Beacons(route.Beacons)
			if err != nil {
				t.Fatalf("Beacons() error = %v", err)
			}
			profile, err := s.Synthesize(departure, to, beacons, 6000)
			if err != nil {
				t.Fatalf("Synthesize() error = %v", err)
			}

			wps := profile.Waypoints
			n := len(wps)
			if wps[0].Name != "TAKEOFF" || wps[1].Name != "ASCENT" {
				t.Errorf("profile starts with %v", names(wps[:2]))
			}
			if got := names(wps[n-3:]); !reflect.DeepEqual(got, []string{"FAF", "FLARE", "STOP"}) {
				t.Errorf("profile ends with %v", got)
			}
			if wps[n-4].Marker != MarkerIAF {
				t.Errorf("waypoint before FAF is %+v, want the IAF", wps[n-4])
			}

			var visible []string
			for _, wp := range profile.Fixes() {
				visible = append(visible, wp.Name)
			}
			for _, b := range route.Beacons {
				if !strings.Contains(strings.Join(visible, " "), b) {
					t.Errorf("beacon %s missing from fixes %v", b, visible)
				}
			}
			if len(profile.LegDistances) != len(route.Beacons)+1 {
				t.Errorf("got %d legs, want %d", len(profile.LegDistances), len(route.Beacons)+1)
			}
		})
	}
}

func TestSynthesizeDistanceTooLarge(t *testing.T) {
	params := DefaultParams()
	params.IAFDistance = 950
	s := NewSynthesizer(geometry.Kerbin, params, logger.NewNop())
	departure, dest := equatorRoute(100)

	_, err := s.Synthesize(departure, dest, nil, 4000)
	if !errors.Is(err, geometry.ErrDistanceTooLarge) {
		t.Fatalf("Synthesize() error = %v, want ErrDistanceTooLarge", err)
	}
}

func TestSynthesizeNoLandingSite(t *testing.T) {
	s := newTestSynthesizer()
	departure, _ := equatorRoute(50)
	dest := &catalog.Location{Name: "Field", AircraftLaunch: &catalog.Site{Point: geometry.Point{Lon: 1}}}

	if _, err := s.Synthesize(departure, dest, nil, 4000); !errors.Is(err, ErrNoLandingSite) {
		t.Fatalf("Synthesize() error = %v, want ErrNoLandingSite", err)
	}
}

// Direct routes of a few dozen kilometres exercise the synthetic climb to
// cruise beacon against the approach constraints
func TestSynthesizeShortRoutesProperties(t *testing.T) {
	s := newTestSynthesizer()
	body := s.Body()
	climb := s.Params().climbTang()
	rng := rand.New(rand.NewPCG(11, 12))

	randomPoint := func() geometry.Point {
		return geometry.Point{Lat: rng.Float64()*120 - 60, Lon: rng.Float64()*360 - 180}
	}
	step := func(from geometry.Point, km float64) geometry.Point {
		for {
			to := randomPoint()
			if d := body.Distance(from, to); d > 1 && d < body.Radius*math.Pi-1 {
				pt, err := body.StepTo(from, to, km)
				if err != nil {
					t.Fatalf("StepTo() error = %v", err)
				}
				return pt
			}
		}
	}

	for i := 0; i < 300; i++ {
		first := randomPoint()
		second := step(first, 2)
		threshold := step(second, 15+rng.Float64()*135)
		far := step(threshold, 2.5)
		elevation := rng.Float64() * 500
		departure := catalog.Runway{
			First:  catalog.RunwayEnd{Point: first, Altitude: 100},
			Second: catalog.RunwayEnd{Point: second, Altitude: 100},
		}
		dest := &catalog.Location{Name: "Destination", Runways: []catalog.Runway{{
			First:  catalog.RunwayEnd{Point: threshold, Altitude: elevation, Glideslope: glideslope(rng.Float64() * 8)},
			Second: catalog.RunwayEnd{Point: far, Altitude: elevation, Glideslope: glideslope(rng.Float64() * 8)},
		}}}
		flightLevel := 1000 + rng.Float64()*7000

		profile, err := s.Synthesize(departure, dest, nil, flightLevel)
		if err != nil {
			t.Fatalf("case %d: Synthesize() error = %v", i, err)
		}
		wps := profile.Waypoints
		n := len(wps)

		if wps[0].Name != "TAKEOFF" || wps[1].Name != "ASCENT" {
			t.Fatalf("case %d: profile starts with %v", i, names(wps))
		}
		if got := markers(wps[n-3:]); !reflect.DeepEqual(got, []Marker{MarkerFAF, MarkerRunway, MarkerStop}) {
			t.Fatalf("case %d: profile ends with markers %v", i, got)
		}

		iaf := -1
		for j, wp := range wps {
			if wp.Marker == MarkerIAF {
				if iaf >= 0 {
					t.Fatalf("case %d: second IAF at %d in %v", i, j, names(wps))
				}
				iaf = j
			}
			if wp.Hidden && !strings.HasSuffix(wp.Name, "ASC") && !strings.HasSuffix(wp.Name, "DESC") {
				t.Errorf("case %d: hidden waypoint %q is not a level-off point", i, wp.Name)
			}
			if wp.Altitude < 0 {
				t.Errorf("case %d: %s below sea level at %v", i, wp.Name, wp.Altitude)
			}
		}
		if iaf != n-4 {
			t.Fatalf("case %d: IAF at %d, want %d in %v", i, iaf, n-4, names(wps))
		}

		ceiling := math.Max(math.Max(flightLevel, wps[1].Altitude), wps[n-3].Altitude)
		for _, wp := range wps {
			if wp.Altitude > ceiling+1e-9 {
				t.Errorf("case %d: %s at %v above ceiling %v", i, wp.Name, wp.Altitude, ceiling)
			}
		}

		// Cruise legs never climb or descend steeper than the limit
		for j := 2; j <= iaf; j++ {
			dist := body.Distance(wps[j-1].Point, wps[j].Point)
			if change := math.Abs(wps[j].Altitude - wps[j-1].Altitude); change > climb*dist+1e-3 {
				t.Errorf("case %d: %s -> %s changes %v m over %v km", i, wps[j-1].Name, wps[j].Name, change, dist)
			}
		}

		for j := 1; j < n; j++ {
			if dist := body.Distance(wps[j-1].Point, wps[j].Point); dist < 0.005 {
				t.Errorf("case %d: %s -> %s is only %v km long", i, wps[j-1].Name, wps[j].Name, dist)
			}
		}

		landing := dest.Runways[0].First.Point
		if wps[n-1].Point == landing {
			landing = dest.Runways[0].Second.Point
		}
		if want := body.Distance(second, landing); len(profile.LegDistances) != 1 || math.Abs(profile.LegDistances[0]-want) > 1e-9 {
			t.Errorf("case %d: LegDistances = %v, want [%v]", i, profile.LegDistances, want)
		}
	}
}

func TestLevelOffPrefix(t *testing.T) {
	tests := map[string]string{
		"":                  "",
		"BLACK-KRAGS-NDB":   "BLACK-KRAGS-",
		"IAF":               "IAF-",
		"FL-ASC":            "FL-ASC-",
		"OLD-KSC-NORTH-IAF": "OLD-KSC-NORTH-IAF-",
	}
	for in, want := range tests {
		if got := levelOffPrefix(in); got != want {
			t.Errorf("levelOffPrefix(%q) = %q, want %q", in, got, want)
		}
	}
}
