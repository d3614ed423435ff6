package scraper

import (
	"context"
	"math/rand/v2"
	"time"
)

// RandomDelay is the courtesy pause taken before every request, drawn
// uniformly from [Min, Max].
type RandomDelay struct {
	Min time.Duration
	Max time.Duration
}

// Next draws one pause length.
func (d RandomDelay) Next() time.Duration {
	if d.Max <= d.Min {
		return d.Min
	}
	return d.Min + rand.N(d.Max-d.Min+1)
}

// Sleep blocks for Next() or until ctx is done.
func (d RandomDelay) Sleep(ctx context.Context) error {
	pause := d.Next()
	if pause <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(pause)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
