package engine

import (
	"sync"
	"time"
)

// debouncer coalesces rapid repeated requests into one: scheduling cancels
// and replaces whatever is pending, and a completion only counts if its token
// is still the newest one issued.
type debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

func newDebouncer() *debouncer {
	return &debouncer{}
}

// Schedule arranges fn to run after delay, superseding any pending call.
func (d *debouncer) Schedule(delay time.Duration, fn func(token uint64)) uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.seq++
	token := d.seq
	d.timer = time.AfterFunc(delay, func() {
		fn(token)
	})
	return token
}

// current reports whether token is still the latest scheduled call.
func (d *debouncer) current(token uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token == d.seq
}
