package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/league-results/internal/results"
	"github.com/pfrederiksen/league-results/internal/scraper"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// Widths are the fixed column widths of the text report.
type Widths struct {
	Club  int
	Count int
}

// countColumns is the number of count columns in the report.
const countColumns = 6

// pageWidth is the width of the separator above each meeting.
func (w Widths) pageWidth() int {
	return w.Club + w.Count*countColumns + countColumns
}

// completeWidth is the width of the separator around the closing message.
func (w Widths) completeWidth() int {
	return w.Club + w.Count*2 + 2
}

// textReporter prints progress and each meeting's report as the run goes.
type textReporter struct {
	w      io.Writer
	widths Widths
}

func (r *textReporter) LinksFound(baseURL string, links []string) {
	if len(links) == 0 {
		fmt.Fprintln(r.w, "No matching links found.")
		return
	}
	fmt.Fprintf(r.w, "\nFound %d matching page(s).\n", len(links))
}

func (r *textReporter) PageStarted(index, total int, url string) {
	fmt.Fprintf(r.w, "\n[%d/%d] Processing: %s\n", index, total, url)
}

func (r *textReporter) PageDone(index int, url string, page *scraper.Page, err error) {
	if errors.Is(err, results.ErrNotEnoughTables) {
		fmt.Fprintln(r.w, "  Not enough tables found on page.")
	}
	if err != nil || page == nil || len(page.Rows) == 0 {
		fmt.Fprintf(r.w, "Could not extract data from %s\n", url)
		return
	}
	writePage(r.w, page, r.widths)
}

// discardReporter is used when output is written once at the end.
type discardReporter struct{}

func (discardReporter) LinksFound(string, []string)                {}
func (discardReporter) PageStarted(int, int, string)               {}
func (discardReporter) PageDone(int, string, *scraper.Page, error) {}

// writePage writes one meeting's club table with its totals row.
func writePage(w io.Writer, page *scraper.Page, widths Widths) {
	rule := strings.Repeat("=", widths.pageWidth())
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Meeting: %s\n", page.URL)
	fmt.Fprintln(w, rule)

	if page.Meeting != nil {
		fmt.Fprintf(w, "\n%s\n", page.Meeting)
	}

	if len(page.Summary) == 0 {
		fmt.Fprintln(w, "No club data found for this meeting.")
		return
	}

	fmt.Fprintf(w, "\n%s\n", formatLine(widths, "Club Name",
		"Trk Evts", "Trk Parts", "Trk Aths", "Fld Evts", "Fld Parts", "Fld Aths"))

	dashes := make([]string, countColumns)
	for i := range dashes {
		dashes[i] = strings.Repeat("-", widths.Count)
	}
	fmt.Fprintln(w, formatLine(widths, strings.Repeat("-", widths.Club), dashes...))

	for _, s := range page.Summary {
		fmt.Fprintln(w, formatCounts(widths, s.Club,
			s.TrackEvents, s.TrackParticipations, s.TrackAthletes,
			s.FieldEvents, s.FieldParticipations, s.FieldAthletes))
	}

	t := page.Totals
	fmt.Fprintf(w, "\n%s\n", formatCounts(widths, "TOTAL",
		t.TrackEvents, t.TrackParticipations, t.TrackAthletes,
		t.FieldEvents, t.FieldParticipations, t.FieldAthletes))
}

// formatLine left-aligns the first column and right-aligns the rest.
func formatLine(widths Widths, first string, rest ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-*s", widths.Club, first)
	for _, col := range rest {
		fmt.Fprintf(&b, " %*s", widths.Count, col)
	}
	return b.String()
}

func formatCounts(widths Widths, first string, counts ...int) string {
	cols := make([]string, len(counts))
	for i, c := range counts {
		cols[i] = fmt.Sprint(c)
	}
	return formatLine(widths, first, cols...)
}

// writeComplete writes the closing block after every page is processed.
func writeComplete(w io.Writer, run *scraper.Run, widths Widths) {
	rule := strings.Repeat("=", widths.completeWidth())
	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintln(w, "Scraping complete!")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Processed %d of %d page(s), %d result(s).\n",
		len(run.Pages), len(run.Links), countResults(run.Pages))
}

func countResults(pages []*scraper.Page) int {
	n := 0
	for _, p := range pages {
		n += len(p.Rows)
	}
	return n
}

// writeJSON outputs the whole run as JSON
func writeJSON(w io.Writer, run *scraper.Run) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}
