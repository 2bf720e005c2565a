package meter

import (
	"os"
	"sync"

	"github.com/havenforge/meter/progress"
	"github.com/havenforge/meter/term"
)

// Progress is the container that owns one registry and one terminal
// sink, and hands out Handles for every bar created through it. The
// engine is synchronous: every redraw happens on the goroutine that
// calls Update/Inc/SetXxx, and Progress never spawns a renderer of its
// own.
type Progress struct {
	reg    *progress.Registry
	term   terminalCapability
	sinkMu sync.Mutex

	barsMu sync.Mutex
	bars   map[uint64]*bar
}

// ProgressOption configures a Progress at construction time.
type ProgressOption func(*Progress)

// WithWriter overrides the destination terminal capability; intended for
// tests, which supply a fake Capability instead of a real stderr writer.
func WithWriter(w terminalCapability) ProgressOption {
	return func(p *Progress) { p.term = w }
}

// WithMaxBars caps the number of simultaneously visible bars; the last
// visible row is reserved for the overflow ellipsis.
func WithMaxBars(n int) ProgressOption {
	return func(p *Progress) { p.reg.SetMaxBars(n) }
}

// New creates a Progress container rendering to stderr by default.
func New(opts ...ProgressOption) *Progress {
	p := &Progress{
		reg:  progress.NewRegistry(),
		term: term.New(os.Stderr),
		bars: make(map[uint64]*bar),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AddBar creates a new bar with the given total (<=0 for unbounded) and
// returns a Handle for it. The bar draws once immediately.
func (p *Progress) AddBar(total int64, opts ...BarOption) Handle {
	b := newBar(p.reg, p.term, &p.sinkMu, total, opts...)
	b.onClose = p.forget

	p.barsMu.Lock()
	p.bars[b.id] = b
	p.barsMu.Unlock()

	h := newHandle(b)
	h.redraw(false)
	return h
}

func (p *Progress) forget(id uint64) {
	p.barsMu.Lock()
	delete(p.bars, id)
	p.barsMu.Unlock()
}

// SetMaxBars caps the number of simultaneously visible bars on this
// Progress, like the package-level SetMaxProgressBars.
func (p *Progress) SetMaxBars(n int) { p.reg.SetMaxBars(n) }

// BarCount returns the number of bars still registered (open) on this
// Progress.
func (p *Progress) BarCount() int { return p.reg.Count() }

// Println writes a line above the live bars: it clears every visible
// row, prints the message on the anchor line, then redraws every bar so
// the screen ends up exactly as it would have without the interruption.
func (p *Progress) Println(msg string) {
	p.barsMu.Lock()
	live := make([]*bar, 0, len(p.bars))
	for _, b := range p.bars {
		live = append(live, b)
	}
	p.barsMu.Unlock()

	cols, rows := p.term.Size()
	rows = p.reg.EffectiveRows(rows)

	for _, b := range live {
		if row, ok := b.row(); ok {
			b.clear(row, cols, rows)
		}
	}

	p.sinkMu.Lock()
	p.term.MoveToColumn(0)
	p.term.Print(msg + "\n")
	p.term.Flush()
	p.sinkMu.Unlock()

	for _, b := range live {
		if row, ok := b.row(); ok {
			b.cfg.mu.Lock()
			w := effectiveWidth(b.cfg.width, cols)
			b.cfg.mu.Unlock()
			b.draw(row, w, rows, false)
		}
	}
}

// Stop closes every bar still open on this Progress, in row order, so
// rows collapse deterministically rather than racing each other's
// reposition-on-close.
func (p *Progress) Stop() {
	p.barsMu.Lock()
	live := make([]*bar, 0, len(p.bars))
	for _, b := range p.bars {
		live = append(live, b)
	}
	p.barsMu.Unlock()

	for {
		var next *bar
		var nextRow uint16 = ^uint16(0)
		for _, b := range live {
			if row, ok := b.row(); ok && row < nextRow {
				next, nextRow = b, row
			}
		}
		if next == nil {
			return
		}
		newHandleForClose(next).Close()
	}
}

// newHandleForClose builds a one-shot Handle over an existing bar, used
// internally by Stop to drive the normal Close path without inflating
// the bar's external reference count.
func newHandleForClose(b *bar) Handle {
	refs := int32(1)
	return Handle{b: b, refs: &refs}
}
