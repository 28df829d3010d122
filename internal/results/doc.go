// Package results extracts competitor results from a league results page.
//
// Result pages are generated by timing software and carry no real schema.
// Each event is a table whose header row (marked with a CSS class) starts
// with the event name, followed by one row per competitor. Text from
// neighbouring cells is often run together, so fields are recovered with a
// few fixed text rules (see EventName, NormaliseEvent and LeadingName).
//
// Anything that does not fit the expected shape is skipped rather than
// reported: a table without a header row, an event that is neither track nor
// field, or a competitor row with missing cells.
package results
