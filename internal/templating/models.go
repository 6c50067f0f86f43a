package templating

// Template names
const (
	DescriptionTemplate = "description.tmpl"
	SynopsisTemplate    = "synopsis.tmpl"
)

// DescriptionData is rendered into a contract description
type DescriptionData struct {
	Objective    string
	Departure    string // Description of the departure location
	Destination  string // Description of the destination location
	SpecialNotes string
}

// SynopsisData is rendered into a contract synopsis
type SynopsisData struct {
	FlightType   string
	From         string
	To           string
	Passengers   string // Count or data expression, empty when not carried
	Distance     float64
	PlaneAllowed bool
	Route        []string // Beacons of the suggested flight plan
	AsFlown      float64  // Distance through the beacons
}
