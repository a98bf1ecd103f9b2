package control

import (
	"sync"
	"time"
)

// Stopper cancels a scheduled call.
type Stopper interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc satisfies it.
type Scheduler func(d time.Duration, f func()) Stopper

func realScheduler(d time.Duration, f func()) Stopper {
	return time.AfterFunc(d, f)
}

// errorBanner keeps at most one pending dismissal. Scheduling a new one stops
// the previous timer, and a generation counter keeps a timer that already
// fired from dismissing a newer message.
type errorBanner struct {
	schedule Scheduler
	dismiss  func()

	mu      sync.Mutex
	gen     uint64
	pending Stopper
}

func (b *errorBanner) show(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending != nil {
		b.pending.Stop()
	}
	b.gen++
	gen := b.gen
	b.pending = b.schedule(d, func() { b.fire(gen) })
}

// fire holds the lock through dismiss; a concurrent show waits for it.
func (b *errorBanner) fire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return
	}
	b.pending = nil
	b.dismiss()
}

func (b *errorBanner) stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pending != nil {
		b.pending.Stop()
		b.pending = nil
	}
	b.gen++
}
