package connectivity

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/connectivity_mock.go -package=mock

// Prober performs one active reachability check.
type Prober interface {
	// Probe reports true when the probe target answered with any HTTP
	// response, false on error or timeout.
	Probe(ctx context.Context) bool
}
