package cache

import (
	"context"
	"net/http"
)

// Phase is a lifecycle phase of the cache worker.
type Phase int

const (
	PhaseInstall Phase = iota
	PhaseActivate
	PhaseFetch
	PhaseSync
)

// SyncTag is the background sync tag that triggers reconciliation.
const SyncTag = "sync-products"

func (p Phase) String() string {
	switch p {
	case PhaseInstall:
		return "install"
	case PhaseActivate:
		return "activate"
	case PhaseFetch:
		return "fetch"
	case PhaseSync:
		return "sync"
	}
	return "unknown"
}

func (p Phase) valid() bool {
	return p >= PhaseInstall && p <= PhaseSync
}

// Event is passed to every handler of a phase.
type Event struct {
	Phase Phase

	// Request is set for fetch events.
	Request *http.Request

	// Response is filled by a fetch handler. Later handlers see the
	// response produced by earlier ones.
	Response *http.Response

	// Tag is set for sync events.
	Tag string
}

// Handler reacts to a lifecycle event. The phase waits for the returned
// error; a non-nil error aborts the remaining handlers.
type Handler func(ctx context.Context, ev *Event) error
