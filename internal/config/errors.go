package config

import "errors"

// Sentinel errors for configuration problems. All of them are fatal to a run.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrMissingBaseURL = errors.New("no URL specified under scraper.url")
	ErrInvalidConfig  = errors.New("invalid config")
)
