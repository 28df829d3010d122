package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/league-results/internal/results"
	"github.com/pfrederiksen/league-results/internal/summary"
)

const (
	DefaultSearchText       = "Mid Lancs Track & Field League"
	DefaultUserAgent        = "league-results/1.0 (github.com/pfrederiksen/league-results)"
	DefaultTimeout          = 10 * time.Second
	DefaultClubColumnWidth  = 40
	DefaultCountColumnWidth = 15
)

// Config is the full run configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	Scraper Scraper `koanf:"scraper"`
	Events  Events  `koanf:"events"`
	Output  Output  `koanf:"output"`
	Markup  Markup  `koanf:"markup"`
}

// Scraper configures where results are found.
type Scraper struct {
	// URL is the portal page listing meetings. Required.
	URL string `koanf:"url"`

	// SearchText identifies the competition series near a result link.
	SearchText string `koanf:"search_text"`

	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`
}

// Events holds the keywords that classify an event name. A list left empty,
// whether omitted or written as [], is replaced by the league defaults from
// DefaultTrackKeywords or DefaultFieldKeywords; blank entries are ignored.
type Events struct {
	TrackKeywords []string `koanf:"track_keywords"`
	FieldKeywords []string `koanf:"field_keywords"`
}

// Output configures the console report.
type Output struct {
	// SortBy is alphabetical or numerical.
	SortBy           string `koanf:"sort_by"`
	ClubColumnWidth  int    `koanf:"club_column_width"`
	CountColumnWidth int    `koanf:"count_column_width"`
}

// Markup names the CSS classes used by the results pages.
type Markup struct {
	TitleClass  string `koanf:"title_class"`
	HeaderClass string `koanf:"header_class"`
	ResultClass string `koanf:"result_class"`
}

// New returns a Config holding the defaults. Keyword lists are left empty
// here and filled by applyDefaults after loading, so a configured list
// replaces the default instead of being merged into it.
func New() *Config {
	markers := results.DefaultMarkers()
	return &Config{
		LogLevel: "info",
		Scraper: Scraper{
			SearchText: DefaultSearchText,
			UserAgent:  DefaultUserAgent,
			Timeout:    DefaultTimeout,
		},
		Output: Output{
			SortBy:           string(summary.SortAlphabetical),
			ClubColumnWidth:  DefaultClubColumnWidth,
			CountColumnWidth: DefaultCountColumnWidth,
		},
		Markup: Markup{
			TitleClass:  markers.Title,
			HeaderClass: markers.Header,
			ResultClass: markers.Result,
		},
	}
}

// DefaultTrackKeywords match the league's track event names.
func DefaultTrackKeywords() []string {
	return []string{
		"60m", "70m", "75m", "80m", "100m", "150m", "200m", "300m", "400m",
		"800m", "1200m", "1500m", "3000m", "5000m", "mile",
		"hurdles", "relay", "steeplechase", "walk",
	}
}

// DefaultFieldKeywords match the league's field event names.
func DefaultFieldKeywords() []string {
	return []string{
		"high jump", "long jump", "triple jump", "pole vault",
		"shot", "discus", "javelin", "hammer", "howler", "vortex",
	}
}

func (c *Config) applyDefaults() {
	if len(c.Events.TrackKeywords) == 0 {
		c.Events.TrackKeywords = DefaultTrackKeywords()
	}
	if len(c.Events.FieldKeywords) == 0 {
		c.Events.FieldKeywords = DefaultFieldKeywords()
	}
	if strings.TrimSpace(c.Scraper.SearchText) == "" {
		c.Scraper.SearchText = DefaultSearchText
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scraper.URL) == "" {
		return ErrMissingBaseURL
	}

	parsed, err := url.Parse(c.Scraper.URL)
	if err != nil {
		return fmt.Errorf("%w: invalid scraper.url: %v", ErrInvalidConfig, err)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: scraper.url must include a host", ErrInvalidConfig)
	}

	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("%w: scraper.timeout must be positive", ErrInvalidConfig)
	}
	if c.Output.ClubColumnWidth <= 0 || c.Output.CountColumnWidth <= 0 {
		return fmt.Errorf("%w: column widths must be positive", ErrInvalidConfig)
	}
	if c.Markup.TitleClass == "" || c.Markup.HeaderClass == "" || c.Markup.ResultClass == "" {
		return fmt.Errorf("%w: markup classes cannot be empty", ErrInvalidConfig)
	}

	return nil
}

// SortPolicy returns the parsed output sort policy.
func (c *Config) SortPolicy() summary.SortPolicy {
	return summary.ParseSortPolicy(c.Output.SortBy)
}

// Markers returns the markup classes as extraction markers.
func (c *Config) Markers() results.Markers {
	return results.Markers{
		Title:  c.Markup.TitleClass,
		Header: c.Markup.HeaderClass,
		Result: c.Markup.ResultClass,
	}
}
