package results

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// eventBoundary is where an event header runs into the first
	// competitor: a bib number immediately followed by a capitalised name.
	eventBoundary = regexp.MustCompile(`\d+[A-Z]`)

	// heatSuffix matches heat qualifiers such as " Heat 2".
	heatSuffix = regexp.MustCompile(`(?i)\s+heat\s+\d+`)
)

// EventName trims header cell text down to the event name by cutting it at
// the first digits-then-uppercase boundary.
//
//	"100m Heat 2 101John Smith11.2" -> "100m Heat 2"
func EventName(header string) string {
	if loc := eventBoundary.FindStringIndex(header); loc != nil {
		header = header[:loc[0]]
	}
	return strings.TrimSpace(header)
}

// NormaliseEvent removes heat qualifiers so every heat of an event shares one
// name. It is idempotent.
//
//	"100m Heat 2" -> "100m"
func NormaliseEvent(name string) string {
	return strings.TrimSpace(heatSuffix.ReplaceAllString(name, ""))
}

// IsOverall reports whether the event is an overall ranking that repeats the
// per-heat results.
func IsOverall(name string) bool {
	return strings.Contains(strings.ToLower(name), "overall")
}

// LeadingName returns the text before the first digit, trimmed. Athlete and
// club cells have times or marks appended directly after the name.
//
//	"Blackburn Harriers3:45.2" -> "Blackburn Harriers"
func LeadingName(cell string) string {
	if i := strings.IndexFunc(cell, unicode.IsDigit); i >= 0 {
		cell = cell[:i]
	}
	return strings.TrimSpace(cell)
}
