package cache

import (
	"context"
	"net/http"
	"time"
)

// Entry is one cached response keyed by request URI.
type Entry struct {
	URL    string
	Status int
	Header http.Header
	Body   []byte
}

// Region is a named, versioned set of entries.
type Region struct {
	Name      string
	CreatedAt time.Time
}

// Storage persists cache regions.
type Storage interface {
	// PutRegion replaces region name with entries in one transaction.
	PutRegion(ctx context.Context, name string, entries []Entry) error

	// Match looks url up across all regions, newest first. A corrupted
	// entry is skipped.
	Match(ctx context.Context, url string) (Entry, bool, error)

	// Regions lists regions oldest first.
	Regions(ctx context.Context) ([]Region, error)

	// DeleteRegion removes the region and its entries.
	DeleteRegion(ctx context.Context, name string) error
}
