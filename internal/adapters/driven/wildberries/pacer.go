package wildberries

import (
	"context"
	"time"
)

// Pacer enforces a fixed pause before each request.
// The pause is unconditional, including before the first request.
type Pacer struct {
	delay time.Duration
}

// NewPacer creates a pacer with the given delay. A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay}
}

// Delay returns the configured pause.
func (p *Pacer) Delay() time.Duration {
	return p.delay
}

// Wait suspends the caller for the delay or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(p.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
