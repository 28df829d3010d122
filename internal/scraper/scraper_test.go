package scraper

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/pfrederiksen/league-results/internal/config"
	"github.com/pfrederiksen/league-results/internal/fetch"
	"github.com/pfrederiksen/league-results/internal/logger"
	"github.com/pfrederiksen/league-results/internal/results"
)

type pageEvent struct {
	index int
	url   string
	page  *Page
	err   error
}

type recordingReporter struct {
	links   []string
	started []string
	done    []pageEvent
}

func (r *recordingReporter) LinksFound(baseURL string, links []string) {
	r.links = append([]string(nil), links...)
}

func (r *recordingReporter) PageStarted(index, total int, url string) {
	r.started = append(r.started, url)
}

func (r *recordingReporter) PageDone(index int, url string, page *Page, err error) {
	r.done = append(r.done, pageEvent{index, url, page, err})
}

// stubFetcher serves fixed bodies keyed by URL; unknown URLs fail.
type stubFetcher map[string]string

func (f stubFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	body, ok := f[url]
	if !ok {
		return nil, fetch.ErrNotFound{URL: url}
	}
	return []byte(body), nil
}

func testConfig(baseURL string) *config.Config {
	cfg := config.New()
	cfg.Scraper.URL = baseURL
	cfg.Events.TrackKeywords = []string{"100m"}
	cfg.Events.FieldKeywords = []string{"long jump"}
	return cfg
}

func quietLogger() *logger.Logger {
	return logger.New(logger.LevelError, &bytes.Buffer{})
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestRun_EndToEnd(t *testing.T) {
	portal := readFixture(t, "portal_page.html")
	week3 := readFixture(t, "results_page.html")

	mux := http.NewServeMux()
	mux.HandleFunc("/2025/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2025/" {
			http.NotFound(w, r)
			return
		}
		w.Write(portal)
	})
	mux.HandleFunc("/2025/week3.html", func(w http.ResponseWriter, r *http.Request) {
		w.Write(week3)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	base := server.URL + "/2025/"
	s := New(testConfig(base), fetch.New(5*time.Second, config.DefaultUserAgent), quietLogger())

	reporter := &recordingReporter{}
	run := s.Run(context.Background(), reporter)

	// schools.html shares the portal table with the league rows, so the marker
	// is found through the table; xc1.html sits outside the window.
	wantLinks := []string{base + "week3.html", base + "schools.html", base + "week4.html"}
	if len(run.Links) != len(wantLinks) {
		t.Fatalf("Links = %v, want %v", run.Links, wantLinks)
	}
	for i := range wantLinks {
		if run.Links[i] != wantLinks[i] {
			t.Errorf("Links[%d] = %q, want %q", i, run.Links[i], wantLinks[i])
		}
	}
	if len(reporter.links) != 3 || len(reporter.started) != 3 || len(reporter.done) != 3 {
		t.Errorf("reporter saw links=%d started=%d done=%d, want 3 each",
			len(reporter.links), len(reporter.started), len(reporter.done))
	}

	if len(run.Pages) != 1 {
		t.Fatalf("Pages = %d, want 1", len(run.Pages))
	}
	page := run.ByKey["meeting_1"]
	if page == nil {
		t.Fatal("expected page keyed meeting_1")
	}
	if page.URL != base+"week3.html" {
		t.Errorf("page URL = %q", page.URL)
	}
	if len(page.Rows) != 7 {
		t.Errorf("page rows = %d, want 7", len(page.Rows))
	}
	if len(page.Summary) != 3 || page.Summary[0].Club != "Blackburn Harriers" {
		t.Errorf("page summary = %+v", page.Summary)
	}
	if page.Totals.TotalResults != 7 {
		t.Errorf("totals = %+v, want 7 results", page.Totals)
	}
	if page.Meeting == nil || page.Meeting.Title != "Mid Lancs Track & Field League - Match 3" {
		t.Errorf("meeting = %+v", page.Meeting)
	}

	wantFailed := []string{base + "schools.html", base + "week4.html"}
	if len(run.Failed) != len(wantFailed) || run.Failed[0] != wantFailed[0] || run.Failed[1] != wantFailed[1] {
		t.Errorf("Failed = %v, want %v", run.Failed, wantFailed)
	}
	var notFound fetch.ErrNotFound
	if !errors.As(reporter.done[2].err, &notFound) {
		t.Errorf("week4 error = %v, want ErrNotFound", reporter.done[2].err)
	}
	if run.ID == "" {
		t.Error("run ID is empty")
	}
}

func TestRun_PortalUnavailable(t *testing.T) {
	s := New(testConfig("http://portal.test/"), stubFetcher{}, quietLogger())

	reporter := &recordingReporter{}
	run := s.Run(context.Background(), reporter)

	if len(run.Links) != 0 {
		t.Errorf("Links = %v, want none", run.Links)
	}
	if len(run.Pages) != 0 || len(reporter.started) != 0 {
		t.Error("no pages should be processed when the portal fails")
	}
}

func TestRun_PageWithoutResults(t *testing.T) {
	portal := `<table><tr><td>Mid Lancs Track &amp; Field League Week 1</td>
		<td><a href="one.html">HTML</a></td></tr>
		<tr><td>Mid Lancs Track &amp; Field League Week 2</td>
		<td><a href="two.html">HTML</a></td></tr></table>`
	fetcher := stubFetcher{
		"http://portal.test/":         portal,
		"http://portal.test/one.html": `<table><tr><td>Results to follow</td></tr></table>`,
		"http://portal.test/two.html": string(readFixture(t, "results_page.html")),
	}
	s := New(testConfig("http://portal.test/"), fetcher, quietLogger())

	reporter := &recordingReporter{}
	run := s.Run(context.Background(), reporter)

	if !errors.Is(reporter.done[0].err, results.ErrNotEnoughTables) {
		t.Errorf("page one error = %v, want ErrNotEnoughTables", reporter.done[0].err)
	}
	if len(run.Pages) != 1 {
		t.Fatalf("Pages = %d, want 1", len(run.Pages))
	}
	// Keys follow the link index, not the count of kept pages.
	if _, ok := run.ByKey["meeting_2"]; !ok {
		t.Errorf("ByKey = %v, want meeting_2", run.ByKey)
	}
}

func TestProcessPage_NoMatchingEvents(t *testing.T) {
	cfg := testConfig("http://portal.test/")
	cfg.Events.TrackKeywords = []string{"marathon"}
	cfg.Events.FieldKeywords = []string{"caber"}

	fetcher := stubFetcher{"http://portal.test/r.html": string(readFixture(t, "results_page.html"))}
	page, err := New(cfg, fetcher, quietLogger()).ProcessPage(context.Background(), "http://portal.test/r.html")
	if err != nil {
		t.Fatalf("ProcessPage() error: %v", err)
	}
	if len(page.Rows) != 0 || len(page.Summary) != 0 {
		t.Errorf("ProcessPage() = %d rows, %d clubs; want none", len(page.Rows), len(page.Summary))
	}
	if page.Meeting == nil {
		t.Error("meeting info should still be read")
	}
}

func TestFindLinks(t *testing.T) {
	fetcher := stubFetcher{"http://portal.test/": string(readFixture(t, "portal_page.html"))}
	got := New(testConfig("http://portal.test/"), fetcher, quietLogger()).FindLinks(context.Background())

	want := []string{
		"http://portal.test/week3.html",
		"http://portal.test/schools.html",
		"http://portal.test/week4.html",
	}
	if len(got) != len(want) {
		t.Fatalf("FindLinks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FindLinks()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestPageKey(t *testing.T) {
	if got := PageKey(3); got != "meeting_3" {
		t.Errorf("PageKey(3) = %q", got)
	}
}
