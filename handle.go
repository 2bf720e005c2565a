package meter

import "sync/atomic"

// Handle is the user-facing progress bar object. Handles are cheap to
// clone (Clone()); every clone shares the same underlying bar state, and
// the bar closes exactly once, when the last clone is closed.
type Handle struct {
	b    *bar
	refs *int32
}

func newHandle(b *bar) Handle {
	refs := int32(1)
	return Handle{b: b, refs: &refs}
}

// Clone returns a new handle sharing the same underlying bar. The bar is
// only closed once every clone (including the original) has called
// Close.
func (h Handle) Clone() Handle {
	atomic.AddInt32(h.refs, 1)
	return Handle{b: h.b, refs: h.refs}
}

// ID returns the bar's process-unique identifier.
func (h Handle) ID() uint64 { return h.b.id }

// Current returns the bar's cumulative count.
func (h Handle) Current() int64 { return h.b.counter.N() }

// Total returns the bar's configured total; a value <= 0 means the bar
// is unbounded.
func (h Handle) Total() int64 {
	h.b.cfg.mu.Lock()
	defer h.b.cfg.mu.Unlock()
	return h.b.cfg.total
}

// Update advances the bar by n and, if the rate limiter allows it, draws
// a new frame. n < 0 is ignored. This is the hot path: the counter bump
// is lock-free, and only the one goroutine that claims the redraw window
// takes the bar's configuration mutex.
func (h Handle) Update(n int64) {
	if n < 0 {
		return
	}
	h.b.counter.Add(n)
	if !h.b.counter.TryDraw() {
		return
	}
	h.redraw(false)
}

// Inc is shorthand for Update(1).
func (h Handle) Inc() { h.Update(1) }

// Refresh forces an out-of-band redraw, bypassing the rate limiter.
func (h Handle) Refresh() { h.redraw(false) }

func (h Handle) redraw(final bool) {
	row, ok := h.b.row()
	if !ok {
		return
	}
	cols, rows := h.termSize()
	rows = h.b.reg.EffectiveRows(rows)

	h.b.cfg.mu.Lock()
	w := effectiveWidth(h.b.cfg.width, cols)
	h.b.cfg.mu.Unlock()

	h.b.draw(row, w, rows, final)
	h.b.counter.Commit()
}

func (h Handle) termSize() (cols, rows int) {
	return h.b.term.Size()
}

// SetPostfix sets the trailing annotation shown inside the bar's right
// counter block.
func (h Handle) SetPostfix(postfix string) {
	h.b.cfg.mu.Lock()
	h.b.cfg.postfix = postfix
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetDescription sets the bar's prefix text.
func (h Handle) SetDescription(desc string) {
	h.b.cfg.mu.Lock()
	h.b.cfg.desc = desc
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetTotal sets (or clears, with total<=0) the bar's upper bound.
func (h Handle) SetTotal(total int64) {
	h.b.cfg.mu.Lock()
	h.b.cfg.total = total
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetStyle changes the glyph alphabet used for the bar's fill region.
func (h Handle) SetStyle(s Style) {
	h.b.cfg.mu.Lock()
	h.b.cfg.useCustom = false
	h.b.cfg.style = s
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetCustomStyle sets a validated custom glyph alphabet.
func (h Handle) SetCustomStyle(c CustomStyle) {
	h.b.cfg.mu.Lock()
	h.b.cfg.useCustom = true
	h.b.cfg.customRaw = c.glyphs()
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetWidth overrides the bar's column count; 0 restores terminal-width
// tracking.
func (h Handle) SetWidth(width int) {
	h.b.cfg.mu.Lock()
	h.b.cfg.width = width
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// SetUnitScale toggles SI-scaled counter formatting.
func (h Handle) SetUnitScale(scale bool) {
	h.b.cfg.mu.Lock()
	h.b.cfg.unitScale = scale
	h.b.cfg.mu.Unlock()
	h.Refresh()
}

// Close finalizes the bar: it clamps the counter to total (if any),
// performs one last render with rate-smoothing disabled (the long-run
// average), removes the bar's registry row, and advances
// the cursor past it so that surviving bars keep their own rows intact.
// Calling Close on an already-closed bar is a no-op. Every call releases
// one reference of the count shared by all clones, so the bar closes on
// the call that brings the count to zero; a second Close on the same
// handle counts again and can close the bar while a clone is still open.
func (h Handle) Close() {
	if atomic.AddInt32(h.refs, -1) > 0 {
		return
	}
	h.b.closeOnce.Do(func() {
		row, ok := h.b.row()
		if !ok {
			return
		}

		h.b.cfg.mu.Lock()
		total := h.b.cfg.total
		h.b.cfg.mu.Unlock()
		h.b.counter.ClampTo(total)
		h.b.counter.Commit()

		cols, rows := h.termSize()
		rows = h.b.reg.EffectiveRows(rows)
		h.b.cfg.mu.Lock()
		w := effectiveWidth(h.b.cfg.width, cols)
		h.b.cfg.mu.Unlock()

		h.b.draw(row, w, rows, true)
		h.b.reg.Release(h.b.id)

		if h.b.term.IsTTY() {
			h.b.sinkMu.Lock()
			h.b.term.Print("\n")
			if h.b.reg.Count() > 0 {
				h.b.term.MoveToColumn(w)
			}
			h.b.term.Flush()
			h.b.sinkMu.Unlock()
		}

		if h.b.onClose != nil {
			h.b.onClose(h.b.id)
		}
	})
}
