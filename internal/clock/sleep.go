// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Every calls fn once immediately and then on every interval until ctx is canceled.
// fn runs on the caller's goroutine, so ticks that fire while it is still running are dropped.
func Every(ctx context.Context, interval time.Duration, fn func(context.Context)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fn(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fn(ctx)
		}
	}
}
