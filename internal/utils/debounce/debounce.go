// Package debounce provides a trailing-edge debouncer whose pending call can be
// superseded or cancelled.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/JuanseMastrangelo/asset-movements-console/internal/apperrors"
)

// Debouncer delays calls by a fixed window. A call arriving while another is
// still waiting replaces it; the replaced caller gets apperrors.ErrSuperseded.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	pending chan struct{}
	closed  bool
}

// New creates a Debouncer. A zero delay runs calls immediately.
func New(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Do waits for the debounce window and then runs fn, unless a newer call,
// Cancel, or ctx gets there first.
func (d *Debouncer) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return apperrors.ErrWizardClosed
	}
	if d.pending != nil {
		close(d.pending)
	}
	mine := make(chan struct{})
	d.pending = mine
	d.mu.Unlock()

	timer := time.NewTimer(d.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		d.release(mine)
		return ctx.Err()
	case <-mine:
		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()
		if closed {
			return apperrors.ErrWizardClosed
		}
		return apperrors.ErrSuperseded
	case <-timer.C:
	}

	d.release(mine)
	return fn(ctx)
}

// Cancel drops any pending call and refuses new ones.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	if d.pending != nil {
		close(d.pending)
		d.pending = nil
	}
}

func (d *Debouncer) release(mine chan struct{}) {
	d.mu.Lock()
	if d.pending == mine {
		d.pending = nil
	}
	d.mu.Unlock()
}
