// Package config loads run configuration for league-results.
//
// Values are layered, lowest precedence first: built-in defaults, a YAML
// file, then LEAGUE_ environment variables. Nested keys use a double
// underscore in the environment, e.g. LEAGUE_SCRAPER__URL sets scraper.url.
package config
