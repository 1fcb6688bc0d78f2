package utils

import (
	"context"
	"strings"
	"time"
)

// TruncateForLog shortens the provided string to the specified limit, appending an ellipsis when truncated.
func TruncateForLog(s string, limit int) string {
	s = strings.TrimSpace(s)
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

// WaitFor blocks for d, returning early with the context error when ctx is
// done first. A nil sleep waits on a timer that is stopped on cancellation;
// a non-nil sleep replaces the real wait in tests and keeps running until it
// returns.
func WaitFor(ctx context.Context, d time.Duration, sleep func(time.Duration)) error {
	if d <= 0 {
		return ctx.Err()
	}

	if sleep == nil {
		timer := time.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(d)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
