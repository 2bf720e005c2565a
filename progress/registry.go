// Package progress holds the process-wide bookkeeping a rendering engine
// needs to place several bars on screen at once: a monotonic id allocator,
// the id-to-row table, and the lock-free per-bar counters used by the rate
// limiter.
package progress

import (
	"sync"
	"sync/atomic"
)

// Registry assigns each live bar a stable row and keeps the row table
// contiguous as bars come and go. It is safe for concurrent use; every
// mutation holds a single short-lived mutex and never performs I/O while
// holding it.
type Registry struct {
	mu       sync.Mutex
	nextID   uint64
	rows     map[uint64]uint16
	maxBars  atomic.Int64 // 0 means "use terminal height"
}

// NewRegistry returns an empty registry ready for use.
func NewRegistry() *Registry {
	return &Registry{rows: make(map[uint64]uint16)}
}

// Allocate assigns a fresh id and the next free row (current live-bar
// count) to a new bar.
func (r *Registry) Allocate() (id uint64, row uint16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id = r.nextID
	r.nextID++

	row = 0
	for _, existing := range r.rows {
		if existing+1 > row {
			row = existing + 1
		}
	}
	if len(r.rows) == 0 {
		row = 0
	}
	r.rows[id] = row
	return id, row
}

// Lookup reports the current row for id, and whether the bar is still
// registered. A bar that fails Lookup is closed and must not draw.
func (r *Registry) Lookup(id uint64) (row uint16, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok = r.rows[id]
	return row, ok
}

// Release removes id from the registry and slides every row below it up
// by one so the live rows stay a contiguous [0, k) range. It returns the
// row the bar occupied just before removal.
func (r *Registry) Release(id uint64) (row uint16, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok = r.rows[id]
	if !ok {
		return 0, false
	}
	delete(r.rows, id)
	for other, otherRow := range r.rows {
		if otherRow > row {
			r.rows[other] = otherRow - 1
		}
	}
	return row, true
}

// Count returns the number of live bars.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// SetMaxBars stores the visible-bar cap. Callers pass the number of bars
// they want visible; the registry stores max(n+1, 2) so there is always
// room for at least one bar plus the overflow ellipsis row.
func (r *Registry) SetMaxBars(n int) {
	if n+1 < 2 {
		n = 1
	}
	r.maxBars.Store(int64(n + 1))
}

// MaxBars returns the stored cap, or 0 if none was set.
func (r *Registry) MaxBars() int {
	v := r.maxBars.Load()
	if v <= 0 {
		return 0
	}
	return int(v)
}

// EffectiveRows returns min(termHeight, MaxBars()) when a cap is set,
// else termHeight.
func (r *Registry) EffectiveRows(termHeight int) int {
	if max := r.MaxBars(); max > 0 && max < termHeight {
		return max
	}
	return termHeight
}
