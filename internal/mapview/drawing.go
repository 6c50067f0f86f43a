package mapview

// Style is the stroke or fill of a drawn shape
type Style struct {
	Color string
	Width float64 // Stroke width; zero means a filled shape
}

// TextStyle describes a label
type TextStyle struct {
	Anchor   string // "start" or "end"
	FontSize float64
}

// Drawing is the output surface routes are rendered onto
type Drawing interface {
	Path(points []Pixel, style Style)
	Line(from, to Pixel, style Style)
	Circle(center Pixel, radius float64, style Style)
	Text(at Pixel, text string, style TextStyle)
}
