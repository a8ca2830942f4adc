// Package dispatch runs audit jobs on detached goroutines.
package dispatch

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"

	"caucus/contexts/endorsement/digital-audit-service/ports"
)

// GoDispatcher runs each task on its own goroutine with a fresh background
// context, so a cancelled HTTP request never aborts the audit. Panics in
// tasks are recovered and logged instead of crashing the process.
type GoDispatcher struct {
	Logger *slog.Logger
	wg     sync.WaitGroup
}

func (d *GoDispatcher) Dispatch(task func(ctx context.Context)) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer func() {
			if r := recover(); r != nil && d.Logger != nil {
				d.Logger.Error("background task panicked",
					"event", "dispatch_panic",
					"module", "endorsement/digital-audit-service",
					"panic", r,
					"stack", string(debug.Stack()),
				)
			}
		}()
		task(context.Background())
	}()
}

// Wait blocks until all dispatched tasks finish. Tests use it to observe
// audit outcomes without sleeping.
func (d *GoDispatcher) Wait() {
	d.wg.Wait()
}

var _ ports.Dispatcher = (*GoDispatcher)(nil)
