package wait

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by For when the condition never became true
// within the allotted time.
var ErrTimeout = errors.New("condition not met before timeout")

// For polls cond every interval until it returns true, the timeout
// elapses, or ctx is cancelled. A non-nil error from cond aborts the
// wait immediately.
func For(ctx context.Context, timeout, interval time.Duration, cond func() (bool, error)) error {
	deadline := time.Now().Add(timeout)

	for {
		ok, err := cond()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ErrTimeout
		}
		if interval < remaining {
			remaining = interval
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(remaining):
		}
	}
}

// Sleep blocks for d or until ctx is cancelled.
func Sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
