package templating

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/kerbinside/gapgen/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	log := logger.NewNop()
	engine, err := NewDefaultEngine(log)
	if err != nil {
		t.Fatalf("NewDefaultEngine() error = %v", err)
	}
	return NewService(engine, log)
}

func TestFormatDistance(t *testing.T) {
	tests := map[float64]string{
		12:      "12.0",
		12.346:  "12.35",
		12.3:    "12.3",
		0:       "0.0",
		159.999: "160.0",
		1234.5:  "1234.5",
	}
	for in, want := range tests {
		if got := FormatDistance(in); got != want {
			t.Errorf("FormatDistance(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestFlightType(t *testing.T) {
	tests := map[string]string{
		"Service":      "service",
		"TouristGroup": "tourist group",
		"Charter":      "charter",
	}
	for in, want := range tests {
		if got := FlightType(in); got != want {
			t.Errorf("FlightType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderDescription(t *testing.T) {
	s := newTestService(t)

	tests := []struct {
		name string
		data DescriptionData
		want string
	}{
		{
			name: "full",
			data: DescriptionData{Objective: "Deliver mail.", Departure: "Home.", Destination: "Away.", SpecialNotes: "Land softly."},
			want: `Objective: Deliver mail.\n\nDeparture: Home.\n\nDestination: Away.\n\nSpecial notes: Land softly.`,
		},
		{
			name: "no notes",
			data: DescriptionData{Objective: "Deliver mail.", Departure: "Home.", Destination: "Away."},
			want: `Objective: Deliver mail.\n\nDeparture: Home.\n\nDestination: Away.`,
		},
		{
			name: "no objective",
			data: DescriptionData{Departure: "Home.", Destination: "Away."},
			want: `Departure: Home.\n\nDestination: Away.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.RenderDescription(tt.data)
			if err != nil {
				t.Fatalf("RenderDescription() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("RenderDescription() = %q, want %q", got, tt.want)
			}
			if strings.Contains(got, "\n") {
				t.Errorf("RenderDescription() contains a raw newline: %q", got)
			}
		})
	}
}

func TestRenderSynopsis(t *testing.T) {
	s := newTestService(t)

	got, err := s.RenderSynopsis(SynopsisData{
		FlightType:   "charter",
		From:         "Kerbal Space Centre",
		To:           "Island Airfield",
		Passengers:   "@/passengersNum",
		Distance:     41.234,
		PlaneAllowed: true,
		Route:        []string{"KSC-NDB", "ISL-NDB"},
		AsFlown:      42,
	})
	if err != nil {
		t.Fatalf("RenderSynopsis() error = %v", err)
	}
	want := "Perform charter flight from the Kerbal Space Centre to the Island Airfield." +
		" You will have @/passengersNum passengers. Distance is 41.23 km." +
		" Suggested route via KSC-NDB, ISL-NDB is 42.0 km long."
	if got != want {
		t.Errorf("RenderSynopsis() = %q, want %q", got, want)
	}

	heli, err := s.RenderSynopsis(SynopsisData{FlightType: "service", From: "A", To: "B", Distance: 5})
	if err != nil {
		t.Fatalf("RenderSynopsis() error = %v", err)
	}
	want = "Perform service flight from the A to the B. Distance is 5.0 km. You have to use helicopter or VTOL to complete this contract."
	if heli != want {
		t.Errorf("RenderSynopsis() = %q, want %q", heli, want)
	}
}

func TestEngineCachesAndOverrides(t *testing.T) {
	fsys := fstest.MapFS{
		"greeting.tmpl": {Data: []byte("Hello {{.}} at {{km 1.5}}\n")},
	}
	e := NewEngine(fsys, logger.NewNop())

	for i := 0; i < 2; i++ {
		got, err := e.RenderTemplate("greeting.tmpl", "Jeb")
		if err != nil {
			t.Fatalf("RenderTemplate() error = %v", err)
		}
		if got != "Hello Jeb at 1.5" {
			t.Errorf("RenderTemplate() = %q", got)
		}
	}
	if n := e.CachedTemplates(); n != 1 {
		t.Errorf("CachedTemplates() = %d, want 1", n)
	}

	e.ClearCache()
	if n := e.CachedTemplates(); n != 0 {
		t.Errorf("CachedTemplates() after ClearCache = %d, want 0", n)
	}

	if _, err := e.RenderTemplate("missing.tmpl", nil); err == nil {
		t.Error("RenderTemplate(missing) succeeded, want error")
	}
}

func TestEngineRejectsBadTemplate(t *testing.T) {
	e := NewEngine(fstest.MapFS{"bad.tmpl": {Data: []byte("{{if}}")}}, logger.NewNop())
	if _, err := e.RenderTemplate("bad.tmpl", nil); err == nil {
		t.Error("RenderTemplate(bad) succeeded, want parse error")
	}
}

func TestDefaultEngineServesBuiltInTemplates(t *testing.T) {
	e, err := NewDefaultEngine(logger.NewNop())
	if err != nil {
		t.Fatalf("NewDefaultEngine() error = %v", err)
	}
	for _, name := range []string{DescriptionTemplate, SynopsisTemplate} {
		if _, err := e.getTemplate(name); err != nil {
			t.Errorf("built-in template %s: %v", name, err)
		}
	}
	if n := e.CachedTemplates(); n != 2 {
		t.Errorf("CachedTemplates() = %d, want 2", n)
	}
}
