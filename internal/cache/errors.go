package cache

import "errors"

var (
	// ErrCacheInstallFailed is returned when any asset could not be fetched
	// or stored during install. No new region is left behind.
	ErrCacheInstallFailed = errors.New("cache install failed")

	// ErrUnknownPhase is returned by Register for a phase outside the
	// lifecycle set.
	ErrUnknownPhase = errors.New("unknown lifecycle phase")

	// ErrNoResponse is returned by RoundTrip when the fetch handlers neither
	// produced a response nor an error.
	ErrNoResponse = errors.New("fetch produced no response")
)
