// Package cli implements the command-line interface for league-results.
//
// The cli package provides the Cobra root command. It loads configuration,
// runs the scraper over the configured portal and prints a per-meeting club
// participation report, either as fixed-width text or as JSON.
package cli
