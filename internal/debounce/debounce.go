// Package debounce holds a single cancellable scheduled call.
package debounce

import (
	"sync"
	"time"
)

// Timer is one pending call for one concern. Scheduling replaces the
// previous call; at most one is ever live.
type Timer struct {
	mu  sync.Mutex
	t   *time.Timer
	seq uint64
}

// Schedule runs fn after delay unless Stop or another Schedule happens first.
func (d *Timer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.seq++
	seq := d.seq
	d.t = time.AfterFunc(delay, func() {
		d.mu.Lock()
		// A replaced timer may already have fired and be waiting on the lock.
		if seq != d.seq {
			d.mu.Unlock()
			return
		}
		d.t = nil
		d.mu.Unlock()
		fn()
	})
}

// Stop cancels the pending call, if any.
func (d *Timer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
}

// Pending reports whether a call is scheduled and has not fired.
func (d *Timer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.t != nil
}

func (d *Timer) stopLocked() {
	if d.t != nil {
		d.t.Stop()
		d.t = nil
	}
	d.seq++
}
