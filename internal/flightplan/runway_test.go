package flightplan

import (
	"errors"
	"math"
	"testing"

	"github.com/kerbinside/gapgen/internal/catalog"
	"github.com/kerbinside/gapgen/internal/geometry"
)

func eastWestRunway(westGlideslope, eastGlideslope *float64, alt float64) catalog.Runway {
	return catalog.Runway{
		First:  catalog.RunwayEnd{Point: geometry.Point{Lat: 5, Lon: 30}, Altitude: alt, Glideslope: westGlideslope},
		Second: catalog.RunwayEnd{Point: geometry.Point{Lat: 5, Lon: 30.2}, Altitude: alt, Glideslope: eastGlideslope},
	}
}

func TestSelectRunway(t *testing.T) {
	west := geometry.Point{Lat: 5.5, Lon: 28}
	east := geometry.Point{Lat: 4.5, Lon: 32}
	north := geometry.Point{Lat: 7, Lon: 30.25}

	tests := []struct {
		name        string
		runways     []catalog.Runway
		from        geometry.Point
		wantLanding geometry.Point
		wantAlt     float64
	}{
		{
			name:        "arrival from the west lands eastbound",
			runways:     []catalog.Runway{eastWestRunway(glideslope(0), glideslope(0), 10)},
			from:        west,
			wantLanding: geometry.Point{Lat: 5, Lon: 30},
			wantAlt:     10,
		},
		{
			name:        "arrival from the east lands westbound",
			runways:     []catalog.Runway{eastWestRunway(glideslope(0), glideslope(0), 10)},
			from:        east,
			wantLanding: geometry.Point{Lat: 5, Lon: 30.2},
			wantAlt:     10,
		},
		{
			name:        "closed end is skipped",
			runways:     []catalog.Runway{eastWestRunway(glideslope(0), nil, 10)},
			from:        east,
			wantLanding: geometry.Point{Lat: 5, Lon: 30},
			wantAlt:     10,
		},
		{
			name: "crosswind runway prefers the aligned one",
			runways: []catalog.Runway{
				eastWestRunway(glideslope(0), glideslope(0), 10),
				{
					First:  catalog.RunwayEnd{Point: geometry.Point{Lat: 5.1, Lon: 30.1}, Altitude: 20, Glideslope: glideslope(0)},
					Second: catalog.RunwayEnd{Point: geometry.Point{Lat: 4.9, Lon: 30.1}, Altitude: 20, Glideslope: glideslope(0)},
				},
			},
			from:        north,
			wantLanding: geometry.Point{Lat: 5.1, Lon: 30.1},
			wantAlt:     20,
		},
		{
			name: "first seen wins a tie",
			runways: []catalog.Runway{
				eastWestRunway(glideslope(0), glideslope(0), 10),
				eastWestRunway(glideslope(0), glideslope(0), 30),
			},
			from:        west,
			wantLanding: geometry.Point{Lat: 5, Lon: 30},
			wantAlt:     10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := &catalog.Location{Name: "Field", Runways: tt.runways}
			landing, opposite, err := SelectRunway(loc, tt.from)
			if err != nil {
				t.Fatalf("SelectRunway() error = %v", err)
			}
			if landing.Point != tt.wantLanding || landing.Altitude != tt.wantAlt {
				t.Errorf("landing = %+v, want %v at %v m", landing, tt.wantLanding, tt.wantAlt)
			}
			if opposite.Point == landing.Point {
				t.Errorf("opposite end equals landing end")
			}
		})
	}
}

func TestSelectRunwayWithoutLandableEnd(t *testing.T) {
	loc := &catalog.Location{Name: "Closed", Runways: []catalog.Runway{eastWestRunway(nil, nil, 10)}}
	if _, _, err := SelectRunway(loc, geometry.Point{}); !errors.Is(err, ErrNoRunway) {
		t.Fatalf("SelectRunway() error = %v, want ErrNoRunway", err)
	}
	if _, err := DepartureRunway(&catalog.Location{Name: "Pad"}); !errors.Is(err, ErrNoRunway) {
		t.Fatalf("DepartureRunway() error = %v, want ErrNoRunway", err)
	}
}

func TestHeadingDifference(t *testing.T) {
	tests := []struct{ h1, h2, want float64 }{
		{10, 350, 20},
		{350, 10, 20},
		{90, 270, 180},
		{45, 45, 0},
		{0, 540, 180},
	}
	for _, tt := range tests {
		if got := headingDifference(tt.h1, tt.h2); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("headingDifference(%v, %v) = %v, want %v", tt.h1, tt.h2, got, tt.want)
		}
	}
}

func TestHelipadLandingSite(t *testing.T) {
	s := newTestSynthesizer()
	pad := &catalog.Site{Point: geometry.Point{Lat: 8, Lon: 179.6}, Altitude: catalog.Altitude{Ground: 1700, Relative: 60}}
	dest := &catalog.Location{Name: "Pad", Helipad: pad}
	from := geometry.Point{Lat: 9, Lon: -179}

	landing, stop, err := s.landingSite(dest, from)
	if err != nil {
		t.Fatalf("landingSite() error = %v", err)
	}
	if landing.Point != pad.Point || landing.Altitude != 1760 || !landing.Landable() {
		t.Errorf("landing = %+v, want the helipad at its absolute altitude", landing)
	}
	body := s.Body()
	if got := body.Distance(pad.Point, stop.Point); math.Abs(got-s.Params().HelipadStopDistance) > 1e-6 {
		t.Errorf("rollout is %v km, want %v", got, s.Params().HelipadStopDistance)
	}
	if body.Distance(from, stop.Point) <= body.Distance(from, pad.Point) {
		t.Errorf("stop point %v is not beyond the helipad seen from %v", stop.Point, from)
	}
}
