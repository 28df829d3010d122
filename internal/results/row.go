package results

import (
	"errors"
	"strings"
)

// EventType classifies an event as run on the track or contested in the field.
type EventType string

const (
	Track EventType = "track"
	Field EventType = "field"
)

// ErrNotEnoughTables is returned when a page has too few tables to be a
// results page.
var ErrNotEnoughTables = errors.New("not enough tables found on page")

// Row is one competitor's placing in one event.
type Row struct {
	EventName       string    `json:"event_name"`
	EventNormalised string    `json:"event_normalised"`
	EventType       EventType `json:"event_type"`
	Position        string    `json:"position"`
	Bib             string    `json:"bib"`
	Athlete         string    `json:"athlete"`
	Club            string    `json:"club"`
	Performance     string    `json:"performance"`
}

// MeetingInfo describes the meeting a results page belongs to.
type MeetingInfo struct {
	Title    string `json:"title"`
	Location string `json:"location"`
}

// String renders the meeting as two lines: title, then location and date.
func (m *MeetingInfo) String() string {
	if m == nil {
		return ""
	}
	return m.Title + "\n" + m.Location
}

// Markers are the CSS classes the timing software puts on meaningful rows
// and cells.
type Markers struct {
	Title  string // cell holding the meeting title
	Header string // row starting an event table
	Result string // competitor row
}

// DefaultMarkers returns the classes used by the league's results pages.
func DefaultMarkers() Markers {
	return Markers{
		Title:  "style18c",
		Header: "style18c",
		Result: "style2",
	}
}

// Classifier decides whether an event is a track or field event by keyword.
type Classifier struct {
	track []string
	field []string
}

// NewClassifier lower-cases the keyword lists once. Blank keywords are
// dropped since they would match every event.
func NewClassifier(trackKeywords, fieldKeywords []string) *Classifier {
	return &Classifier{
		track: lowerAll(trackKeywords),
		field: lowerAll(fieldKeywords),
	}
}

func lowerAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Classify returns the type of the normalised event name. Track keywords win
// when both lists match. ok is false when neither list matches.
func (c *Classifier) Classify(event string) (t EventType, ok bool) {
	lower := strings.ToLower(event)
	if containsAny(lower, c.track) {
		return Track, true
	}
	if containsAny(lower, c.field) {
		return Field, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
