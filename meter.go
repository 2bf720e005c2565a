// Package meter is a multi-bar concurrent terminal progress-rendering
// engine: it coordinates an arbitrary number of independent progress
// bars, each possibly driven from multiple goroutines, onto stderr while
// keeping cursor placement, row ordering, and redraw rate under control
// even under very high update rates.
//
// The hard part is the coordination layer, not the glyphs: assigning
// each bar a stable row (progress.Registry), rate-limiting redraws with
// lock-free counters (progress.Counter), and serializing terminal writes
// across goroutines (the per-Progress sink mutex).
package meter

// defaultProgress backs the package-level convenience functions below,
// so bars created from unrelated call sites still coordinate on row
// layout without any shared setup.
var defaultProgress = New()

// Default returns the process-wide default Progress container used by
// the package-level AddBar/SetMaxProgressBars helpers.
func Default() *Progress { return defaultProgress }

// SetMaxProgressBars caps how many bars the default Progress renders at
// once, reserving the last visible row for the overflow ellipsis.
func SetMaxProgressBars(n int) { defaultProgress.SetMaxBars(n) }

// AddBar creates a new bar on the default Progress container.
func AddBar(total int64, opts ...BarOption) Handle {
	return defaultProgress.AddBar(total, opts...)
}
