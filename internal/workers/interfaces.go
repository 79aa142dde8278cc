// Package workers runs the long-lived background loops of the client as
// one group.
//
// It defines the Worker interface and a Workers aggregate that starts every
// worker concurrently, cancels the rest when one fails and waits for all of
// them to return.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the worker
// fails; returning nil after ctx is done is a clean stop.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) error {
//	    <-ctx.Done()
//	    return nil
//	}
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a plain function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
