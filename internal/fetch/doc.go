// Package fetch retrieves pages over HTTP for the scraper.
//
// Failures are returned as typed errors (ErrTimeout, ErrConnection,
// ErrNotFound, ...) so callers can log them with a stable label. The scraper
// treats every failure as "no content" for that page.
package fetch
