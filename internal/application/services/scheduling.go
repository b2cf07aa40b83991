package services

import (
	"context"
	"time"

	"github.com/carecompass/backend/internal/domain/providers"
)

// runDeferred hands fn to the scheduler and blocks until it has run or ctx is
// done. A callback that fires after ctx is done still runs; its result is
// simply not read.
func runDeferred(ctx context.Context, scheduler providers.Scheduler, d time.Duration, fn func()) error {
	done := make(chan struct{})
	scheduler.After(d, func() {
		defer close(done)
		fn()
	})

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
