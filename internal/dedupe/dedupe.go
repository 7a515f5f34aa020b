package dedupe

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Deduplicator suppresses repeat submissions for the same
// (worker, substation) pair inside a short window. Entries expire via
// the cache TTL and a periodic janitor sweep, so the structure stays
// bounded over the process lifetime. Scope is single-process memory;
// it resets on restart and is a coarse debounce, not a correctness
// guarantee.
type Deduplicator struct {
	mu      sync.Mutex
	entries *cache.Cache
	window  time.Duration
}

// New creates a deduplicator with the given acceptance window.
func New(window time.Duration) *Deduplicator {
	return &Deduplicator{
		entries: cache.New(window, 10*window),
		window:  window,
	}
}

// ShouldAccept reports whether a submission for the given worker and
// substation at time now should be accepted. Accepting refreshes the
// stored last-accepted timestamp. The check-then-set is guarded by a
// mutex: handlers run on parallel goroutines here, unlike an
// event-loop runtime where the map check is serialized for free.
func (d *Deduplicator) ShouldAccept(workerID, substationName string, now time.Time) bool {
	key := workerID + "|" + substationName

	d.mu.Lock()
	defer d.mu.Unlock()

	if v, ok := d.entries.Get(key); ok {
		last := v.(int64)
		if now.UnixMilli()-last < d.window.Milliseconds() {
			return false
		}
	}
	d.entries.Set(key, now.UnixMilli(), d.window)
	return true
}
