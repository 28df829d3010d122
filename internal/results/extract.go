package results

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/league-results/internal/markup"
)

// minCells is position, bib, athlete and club.
const minCells = 4

// Options controls how a results page is read.
type Options struct {
	Classifier *Classifier
	Markers    Markers
}

// Extraction is everything read from one results page.
type Extraction struct {
	Meeting *MeetingInfo `json:"meeting,omitempty"`
	Rows    []Row        `json:"rows"`

	// Skip counts, for diagnostics only.
	TablesSkipped int `json:"-"`
	RowsSkipped   int `json:"-"`
}

// Extract reads every event table in doc. It fails only when the page has
// fewer than two tables; all smaller mismatches are skipped and counted.
func Extract(doc *goquery.Document, opts Options) (*Extraction, error) {
	if opts.Classifier == nil {
		opts.Classifier = NewClassifier(nil, nil)
	}

	tables := doc.Find("table")
	if tables.Length() < 2 {
		return nil, fmt.Errorf("%w: %d", ErrNotEnoughTables, tables.Length())
	}

	ext := &Extraction{
		Meeting: meetingInfo(tables.Eq(1), opts.Markers),
		Rows:    make([]Row, 0),
	}

	tables.Each(func(i int, table *goquery.Selection) {
		rows, skipped, ok := eventRows(table, opts)
		if !ok {
			ext.TablesSkipped++
			return
		}
		ext.Rows = append(ext.Rows, rows...)
		ext.RowsSkipped += skipped
	})

	return ext, nil
}

// meetingInfo reads the meeting title and location from the info table.
func meetingInfo(table *goquery.Selection, markers Markers) *MeetingInfo {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	first := rows.Eq(0)
	title := markup.StrippedText(first)
	if cell := withClass(first.Find("td"), markers.Title).First(); cell.Length() > 0 {
		title = markup.StrippedText(cell)
	}

	return &MeetingInfo{
		Title:    title,
		Location: markup.StrippedText(rows.Eq(1)),
	}
}

// eventRows returns the competitor rows of an event table and how many
// candidate rows were dropped. ok is false when the table is not an event
// table of interest.
func eventRows(table *goquery.Selection, opts Options) (rows []Row, skipped int, ok bool) {
	header := withClass(table.Find("tr"), opts.Markers.Header).First()
	if header.Length() == 0 {
		return nil, 0, false
	}
	headerCells := header.Find("td")
	if headerCells.Length() == 0 {
		return nil, 0, false
	}

	name := EventName(markup.StrippedText(headerCells.First()))
	if IsOverall(name) {
		return nil, 0, false
	}
	normalised := NormaliseEvent(name)
	eventType, ok := opts.Classifier.Classify(normalised)
	if !ok {
		return nil, 0, false
	}

	rows = make([]Row, 0)
	withClass(table.Find("tr"), opts.Markers.Result).Each(func(i int, tr *goquery.Selection) {
		cells := tr.Find("td").Map(func(i int, td *goquery.Selection) string {
			return markup.StrippedText(td)
		})
		row, valid := parseRow(cells)
		if !valid {
			skipped++
			return
		}
		row.EventName = name
		row.EventNormalised = normalised
		row.EventType = eventType
		rows = append(rows, row)
	})

	return rows, skipped, true
}

// parseRow splits competitor cell texts into a Row. The event fields are left
// for the caller.
func parseRow(cells []string) (Row, bool) {
	if len(cells) < minCells {
		return Row{}, false
	}

	row := Row{
		Position:    cells[0],
		Bib:         cells[1],
		Athlete:     LeadingName(cells[2]),
		Club:        LeadingName(cells[3]),
		Performance: strings.Join(cells[minCells:], " "),
	}
	if row.Athlete == "" || row.Club == "" {
		return Row{}, false
	}
	return row, true
}

func withClass(sel *goquery.Selection, class string) *goquery.Selection {
	return sel.FilterFunction(func(i int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
}
