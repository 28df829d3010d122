package scraper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
	"github.com/pfrederiksen/league-results/internal/config"
	"github.com/pfrederiksen/league-results/internal/fetch"
	"github.com/pfrederiksen/league-results/internal/links"
	"github.com/pfrederiksen/league-results/internal/logger"
	"github.com/pfrederiksen/league-results/internal/results"
	"github.com/pfrederiksen/league-results/internal/summary"
)

// Fetcher returns the markup at a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Reporter is told about progress as the run goes. Implementations must not
// retain the slices they are given.
type Reporter interface {
	LinksFound(baseURL string, links []string)
	PageStarted(index, total int, url string)
	PageDone(index int, url string, page *Page, err error)
}

// Page is everything read from one results page.
type Page struct {
	Key     string                `json:"key"`
	URL     string                `json:"url"`
	Meeting *results.MeetingInfo  `json:"meeting_info,omitempty"`
	Rows    []results.Row         `json:"results"`
	Summary []summary.ClubSummary `json:"summary"`
	Totals  summary.Totals        `json:"totals"`
}

// Run is the outcome of one pass over the portal.
type Run struct {
	ID         string           `json:"run_id"`
	BaseURL    string           `json:"base_url"`
	SearchText string           `json:"search_text"`
	StartedAt  time.Time        `json:"started_at"`
	Links      []string         `json:"links"`
	Pages      []*Page          `json:"pages"`
	ByKey      map[string]*Page `json:"-"`
	Failed     []string         `json:"failed,omitempty"`
}

// Scraper handles fetching and parsing league results pages.
type Scraper struct {
	fetcher    Fetcher
	cfg        *config.Config
	classifier *results.Classifier
	log        *logger.Logger
}

// New creates a Scraper. Keyword lists are read from cfg once here.
func New(cfg *config.Config, fetcher Fetcher, log *logger.Logger) *Scraper {
	if log == nil {
		log = logger.Default()
	}
	return &Scraper{
		fetcher:    fetcher,
		cfg:        cfg,
		classifier: results.NewClassifier(cfg.Events.TrackKeywords, cfg.Events.FieldKeywords),
		log:        log,
	}
}

// PageKey names the page at a 1-based link index.
func PageKey(index int) string {
	return fmt.Sprintf("meeting_%d", index)
}

// Run discovers result links and processes each page in order. Only pages
// that produced at least one result are kept in the run.
func (s *Scraper) Run(ctx context.Context, reporter Reporter) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		BaseURL:    s.cfg.Scraper.URL,
		SearchText: s.cfg.Scraper.SearchText,
		StartedAt:  time.Now().UTC(),
		Pages:      make([]*Page, 0),
		ByKey:      make(map[string]*Page),
	}
	log := s.log.With(logger.Fields{"run_id": run.ID})

	run.Links = s.findLinks(ctx, log)
	reporter.LinksFound(run.BaseURL, run.Links)

	for i, link := range run.Links {
		index := i + 1
		reporter.PageStarted(index, len(run.Links), link)

		page, err := s.processPage(ctx, log, link)
		if err == nil && len(page.Rows) > 0 {
			page.Key = PageKey(index)
			run.Pages = append(run.Pages, page)
			run.ByKey[page.Key] = page
		} else {
			run.Failed = append(run.Failed, link)
		}

		reporter.PageDone(index, link, page, err)
	}

	log.Info("run complete", logger.Fields{
		"links":  len(run.Links),
		"pages":  len(run.Pages),
		"failed": len(run.Failed),
	})
	return run
}

// FindLinks fetches the portal page and returns the result links near the
// configured search text. A fetch failure gives no links.
func (s *Scraper) FindLinks(ctx context.Context) []string {
	return s.findLinks(ctx, s.log)
}

func (s *Scraper) findLinks(ctx context.Context, log *logger.Logger) []string {
	base := s.cfg.Scraper.URL
	doc, err := s.document(ctx, base)
	if err != nil {
		log.Warn("fetching portal page", logger.Fields{
			"url":        base,
			"error_type": fetch.ErrorType(err),
		}, err)
		return []string{}
	}

	found, err := links.Discover(doc, base, s.cfg.Scraper.SearchText)
	if err != nil {
		log.Warn("discovering links", logger.Fields{"url": base}, err)
		return []string{}
	}

	log.Debug("links discovered", logger.Fields{"url": base, "count": len(found)})
	return found
}

// ProcessPage fetches one results page and extracts and summarises it.
func (s *Scraper) ProcessPage(ctx context.Context, url string) (*Page, error) {
	return s.processPage(ctx, s.log, url)
}

func (s *Scraper) processPage(ctx context.Context, log *logger.Logger, url string) (*Page, error) {
	doc, err := s.document(ctx, url)
	if err != nil {
		log.Warn("fetching results page", logger.Fields{
			"url":        url,
			"error_type": fetch.ErrorType(err),
		}, err)
		return nil, err
	}

	ext, err := results.Extract(doc, results.Options{
		Classifier: s.classifier,
		Markers:    s.cfg.Markers(),
	})
	if err != nil {
		log.Warn("reading results page", logger.Fields{"url": url}, err)
		return nil, err
	}

	log.Debug("page extracted", logger.Fields{
		"url":            url,
		"rows":           len(ext.Rows),
		"tables_skipped": ext.TablesSkipped,
		"rows_skipped":   ext.RowsSkipped,
	})

	clubs := summary.Summarize(ext.Rows, s.cfg.SortPolicy())
	return &Page{
		URL:     url,
		Meeting: ext.Meeting,
		Rows:    ext.Rows,
		Summary: clubs,
		Totals:  summary.Total(clubs),
	}, nil
}

// document fetches url and parses it.
func (s *Scraper) document(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
