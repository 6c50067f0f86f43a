package templating

import (
	"math"
	"strconv"
	"strings"
	"text/template"
)

// ParagraphBreak separates paragraphs inside a single cfg value
const ParagraphBreak = `\n\n`

// Funcs returns the helpers available to every template
func Funcs() template.FuncMap {
	return template.FuncMap{
		"km":    FormatDistance,
		"br":    func() string { return ParagraphBreak },
		"join":  strings.Join,
		"lower": strings.ToLower,
	}
}

// FormatDistance rounds a distance to two decimals, always keeping at least
// one: 12 becomes "12.0", 12.345 becomes "12.35"
func FormatDistance(km float64) string {
	s := strconv.FormatFloat(math.Round(km*100)/100, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// FlightType turns a contract class name such as "TouristGroup" into the
// words used in texts, "tourist group"
func FlightType(class string) string {
	var b strings.Builder
	for i, r := range class {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte(' ')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
