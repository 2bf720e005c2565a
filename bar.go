package meter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/havenforge/meter/progress"
	"github.com/mattn/go-runewidth"
)

// config is a bar's mutable configuration, guarded by mu. The hot
// update/inc path never touches this struct; only construction, the
// builder methods, and draw read it, and draw takes the lock only long
// enough to snapshot+render.
type config struct {
	mu sync.Mutex

	style     Style
	customRaw string
	useCustom bool
	width     int // 0 means "use terminal width"
	desc      string
	postfix   string
	unitScale bool
	total     int64 // <= 0 means unbounded
}

func (c *config) glyphString() string {
	if c.useCustom {
		return c.customRaw
	}
	return c.style.glyphs()
}

// bar is the internal, registry-aware state behind a Handle. Multiple
// Handle clones share one *bar.
type bar struct {
	id      uint64
	cfg     config
	counter *progress.Counter
	reg     *progress.Registry
	term    terminalCapability
	sinkMu  *sync.Mutex // serializes the terminal sink across all bars of one Progress
	onClose func(id uint64)

	closeOnce sync.Once
}

func newBar(reg *progress.Registry, term terminalCapability, sinkMu *sync.Mutex, total int64, opts ...BarOption) *bar {
	id, _ := reg.Allocate()
	b := &bar{
		id:      id,
		counter: progress.NewCounter(),
		reg:     reg,
		term:    term,
		sinkMu:  sinkMu,
	}
	b.cfg.total = total
	for _, opt := range opts {
		opt(&b.cfg)
	}
	return b
}

// row reports whether the bar is still registered and, if so, its row.
// A bar without a row is closed and must not draw.
func (b *bar) row() (uint16, bool) {
	return b.reg.Lookup(b.id)
}

// effectiveWidth clamps the configured width to the terminal width,
// falling back to terminal width, then 80.
func effectiveWidth(configured, termCols int) int {
	if configured > 0 {
		if termCols > 0 && configured > termCols {
			return termCols
		}
		return configured
	}
	if termCols > 0 {
		return termCols
	}
	return 80
}

// formatLine renders the current line for the bar at width w. It does
// not draw anything; render.go owns the terminal I/O.
func (b *bar) formatLine(w int, final bool) string {
	b.cfg.mu.Lock()
	desc := b.cfg.desc
	postfix := b.cfg.postfix
	unitScale := b.cfg.unitScale
	total := b.cfg.total
	glyphRaw := b.cfg.glyphString()
	b.cfg.mu.Unlock()

	n := b.counter.N()
	elapsed := uint64(b.counter.Elapsed().Seconds())
	rate := b.counter.Rate(final)

	var descPart string
	if desc != "" {
		descPart = desc + ": "
	}
	var postfixPart string
	if postfix != "" {
		postfixPart = ", " + postfix
	}

	if total <= 0 {
		return formatUnbounded(descPart, n, elapsed, rate, postfixPart, unitScale)
	}
	return formatBounded(descPart, n, total, elapsed, rate, postfixPart, unitScale, glyphRaw, w)
}

func formatNum(n int64, unitScale bool) string {
	if unitScale {
		return formatSizeof(uint64(n))
	}
	return fmt.Sprintf("%d", n)
}

func formatUnbounded(desc string, n int64, elapsedSec uint64, rate float64, postfix string, unitScale bool) string {
	return fmt.Sprintf("%s%sit [%s, %.2fit/s%s]",
		desc, formatNum(n, unitScale), formatTime(elapsedSec), rate, postfix)
}

func formatBounded(desc string, n, total int64, elapsedSec uint64, rate float64, postfix string, unitScale bool, glyphRaw string, w int) string {
	pct := clampPct(n, total)
	percent := int(100 * pct)

	lbar := fmt.Sprintf("%s%3d%%|", desc, percent)

	var eta string
	if n == 0 {
		eta = "?"
	} else {
		remaining := float64(elapsedSec) / pct * (1 - pct)
		eta = formatTime(uint64(remaining))
	}

	rbar := fmt.Sprintf("| %s/%s [%s<%s, %.2fit/s%s]",
		formatNum(n, unitScale), formatNum(total, unitScale), formatTime(elapsedSec), eta, rate, postfix)

	limit := w - runewidth.StringWidth(lbar) - runewidth.StringWidth(rbar)
	if limit < 0 {
		limit = 0
	}
	barRegion := renderBarRegion(glyphRaw, pct, limit)

	return lbar + barRegion + rbar
}

// clampPct clamps n/total to [0, 1].
func clampPct(n, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(n) / float64(total)
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

// renderBarRegion fills limit columns with the fraction pct of the
// glyph alphabet: a run of filled cells, at most one partial cell, and
// background padding.
func renderBarRegion(glyphRaw string, pct float64, limit int) string {
	if limit <= 0 {
		return ""
	}
	gs := decodeGlyphs(glyphRaw)
	m := len(gs.partials)

	k := int(float64(limit) * pct * float64(m))
	nFull := k / m
	partialIdx := k % m
	if nFull > limit {
		nFull = limit
	}

	var b strings.Builder
	for i := 0; i < nFull; i++ {
		b.WriteRune(gs.filled)
	}
	if nFull < limit {
		b.WriteRune(gs.partials[partialIdx])
		nFull++
	}
	for i := nFull; i < limit; i++ {
		b.WriteRune(gs.background)
	}
	return b.String()
}
