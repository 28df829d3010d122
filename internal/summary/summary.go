package summary

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/league-results/internal/results"
)

// SortPolicy orders the club summaries.
type SortPolicy string

const (
	SortAlphabetical SortPolicy = "alphabetical"
	SortNumerical    SortPolicy = "numerical"
)

// ParseSortPolicy maps a configured value to a policy. Unknown values fall
// back to alphabetical.
func ParseSortPolicy(s string) SortPolicy {
	if SortPolicy(strings.ToLower(strings.TrimSpace(s))) == SortNumerical {
		return SortNumerical
	}
	return SortAlphabetical
}

// ClubSummary holds one club's participation counts for a meeting.
type ClubSummary struct {
	Club                string `json:"club"`
	TrackEvents         int    `json:"track_events"`
	TrackParticipations int    `json:"track_participations"`
	TrackAthletes       int    `json:"track_athletes"`
	FieldEvents         int    `json:"field_events"`
	FieldParticipations int    `json:"field_participations"`
	FieldAthletes       int    `json:"field_athletes"`
	TotalResults        int    `json:"total_results"`
}

// Totals sums each count column across clubs.
type Totals struct {
	TrackEvents         int `json:"track_events"`
	TrackParticipations int `json:"track_participations"`
	TrackAthletes       int `json:"track_athletes"`
	FieldEvents         int `json:"field_events"`
	FieldParticipations int `json:"field_participations"`
	FieldAthletes       int `json:"field_athletes"`
	TotalResults        int `json:"total_results"`
}

// tally accumulates one event type for one club.
type tally struct {
	events   map[string]bool
	athletes map[string]bool
	rows     int
}

func newTally() tally {
	return tally{
		events:   make(map[string]bool),
		athletes: make(map[string]bool),
	}
}

func (t *tally) add(row results.Row) {
	t.events[row.EventNormalised] = true
	t.athletes[row.Athlete] = true
	t.rows++
}

type clubTally struct {
	club  string
	track tally
	field tally
	total int
}

// Summarize groups rows by club name, exactly as spelled, and counts
// distinct events, participations and distinct athletes per event type.
// It does not modify rows.
func Summarize(rows []results.Row, policy SortPolicy) []ClubSummary {
	byClub := make(map[string]*clubTally)
	order := make([]*clubTally, 0)

	for _, row := range rows {
		ct, ok := byClub[row.Club]
		if !ok {
			ct = &clubTally{club: row.Club, track: newTally(), field: newTally()}
			byClub[row.Club] = ct
			order = append(order, ct)
		}
		switch row.EventType {
		case results.Track:
			ct.track.add(row)
		case results.Field:
			ct.field.add(row)
		}
		ct.total++
	}

	summaries := make([]ClubSummary, 0, len(order))
	for _, ct := range order {
		summaries = append(summaries, ClubSummary{
			Club:                ct.club,
			TrackEvents:         len(ct.track.events),
			TrackParticipations: ct.track.rows,
			TrackAthletes:       len(ct.track.athletes),
			FieldEvents:         len(ct.field.events),
			FieldParticipations: ct.field.rows,
			FieldAthletes:       len(ct.field.athletes),
			TotalResults:        ct.total,
		})
	}

	sortSummaries(summaries, policy)
	return summaries
}

// sortSummaries orders in place. Clubs that tie under the numerical policy
// keep the order they first appeared in.
func sortSummaries(summaries []ClubSummary, policy SortPolicy) {
	switch policy {
	case SortNumerical:
		sort.SliceStable(summaries, func(i, j int) bool {
			if summaries[i].TrackAthletes != summaries[j].TrackAthletes {
				return summaries[i].TrackAthletes > summaries[j].TrackAthletes
			}
			return summaries[i].FieldAthletes > summaries[j].FieldAthletes
		})
	default:
		sort.SliceStable(summaries, func(i, j int) bool {
			return summaries[i].Club < summaries[j].Club
		})
	}
}

// Total sums the summaries column by column.
func Total(summaries []ClubSummary) Totals {
	var t Totals
	for _, s := range summaries {
		t.TrackEvents += s.TrackEvents
		t.TrackParticipations += s.TrackParticipations
		t.TrackAthletes += s.TrackAthletes
		t.FieldEvents += s.FieldEvents
		t.FieldParticipations += s.FieldParticipations
		t.FieldAthletes += s.FieldAthletes
		t.TotalResults += s.TotalResults
	}
	return t
}
