// Package scraper runs one pass over a league results portal.
//
// A run fetches the portal page, discovers the result links for the
// configured competition series, then fetches and extracts each results page
// in turn. Pages are processed one at a time in discovery order. A page that
// cannot be fetched or read is logged and skipped; it never stops the run.
package scraper
