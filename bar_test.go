package meter

import (
	"strings"
	"sync"
	"testing"

	"github.com/havenforge/meter/progress"
)

// fakeTerm is a minimal in-memory Capability used by tests that need to
// observe what would have been written to a real terminal without
// touching one.
type fakeTerm struct {
	tty        bool
	cols, rows int

	mu       sync.Mutex
	lastLine string
	flushes  int
	newlines int
}

func newFakeTerm(cols, rows int) *fakeTerm { return &fakeTerm{tty: true, cols: cols, rows: rows} }

func (f *fakeTerm) IsTTY() bool       { return f.tty }
func (f *fakeTerm) Size() (int, int)  { return f.cols, f.rows }
func (f *fakeTerm) MoveUp(int)        {}
func (f *fakeTerm) MoveToColumn(int)  {}
func (f *fakeTerm) ClearCurrentLine() { f.mu.Lock(); f.lastLine = ""; f.mu.Unlock() }
func (f *fakeTerm) Print(s string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s == "\n" {
		f.newlines++
		return
	}
	f.lastLine = s
}
func (f *fakeTerm) Flush() { f.mu.Lock(); f.flushes++; f.mu.Unlock() }

func (f *fakeTerm) line() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastLine
}

func (f *fakeTerm) newlineCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.newlines
}

func newTestBar(total int64, term terminalCapability, opts ...BarOption) (*bar, *progress.Registry) {
	reg := progress.NewRegistry()
	var sinkMu sync.Mutex
	return newBar(reg, term, &sinkMu, total, opts...), reg
}

// TestBasicBoundedScenario drives a width-80 ASCII bar with no
// description, total=100, incremented 100 times, and checks the final
// frame.
func TestBasicBoundedScenario(t *testing.T) {
	term := newFakeTerm(80, 24)
	b, _ := newTestBar(100, term, WithStyle(ASCII))
	for i := 0; i < 100; i++ {
		b.counter.Add(1)
	}
	b.counter.Commit()
	b.draw(0, 80, 24, true)

	line := term.line()
	if !strings.HasPrefix(line, "100%|") {
		t.Fatalf("line %q does not start with 100%%|", line)
	}
	if !strings.Contains(line, "| 100/100 [") {
		t.Fatalf("line %q missing right counter block", line)
	}
	if got := len([]rune(line)); got != 80 {
		t.Fatalf("line length = %d, want 80 (padded): %q", got, line)
	}
}

func TestUnboundedScenario(t *testing.T) {
	term := newFakeTerm(80, 24)
	b, _ := newTestBar(0, term)
	b.counter.Add(10)
	b.counter.Add(10)
	b.counter.Add(10)
	b.counter.Commit()
	b.draw(0, 80, 24, true)

	line := strings.TrimRight(term.line(), " ")
	if !strings.HasPrefix(line, "30it [") {
		t.Fatalf("line %q does not start with 30it [", line)
	}
	if !strings.Contains(line, "it/s]") {
		t.Fatalf("line %q missing rate suffix", line)
	}
}

func TestUnitScaleScenario(t *testing.T) {
	term := newFakeTerm(80, 24)
	b, _ := newTestBar(1_234_000, term, WithUnitScale(true))
	b.counter.Add(1_234_000)
	b.counter.Commit()
	b.draw(0, 80, 24, true)

	line := term.line()
	if !strings.Contains(line, "| 1.23M/1.23M ") {
		t.Fatalf("line %q missing scaled counters", line)
	}
}

// TestNonTTYIsSilent checks that on a non-TTY destination every draw is
// a no-op, but the counter still advances.
func TestNonTTYIsSilent(t *testing.T) {
	term := &fakeTerm{tty: false, cols: 80, rows: 24}
	b, _ := newTestBar(10, term)
	b.counter.Add(5)
	b.draw(0, 80, 24, false)

	if term.line() != "" {
		t.Fatalf("expected no output on non-TTY, got %q", term.line())
	}
	if term.flushes != 0 {
		t.Fatalf("expected no flush on non-TTY, got %d", term.flushes)
	}
	if b.counter.N() != 5 {
		t.Fatalf("counter should still advance on non-TTY, got %d", b.counter.N())
	}
}

func TestOverflowRowShowsEllipsis(t *testing.T) {
	term := newFakeTerm(80, 4)
	b, _ := newTestBar(10, term)
	b.draw(3, 80, 4, false) // rows-1 == 3
	if !strings.HasPrefix(term.line(), overflowMessage) {
		t.Fatalf("expected overflow message, got %q", term.line())
	}
}

func TestRowBeyondVisibleIsSilent(t *testing.T) {
	term := newFakeTerm(80, 4)
	b, _ := newTestBar(10, term)
	b.draw(4, 80, 4, false)
	if term.line() != "" {
		t.Fatalf("expected no output for row beyond visible rows, got %q", term.line())
	}
}

func TestPercentMonotonicity(t *testing.T) {
	last := -1.0
	for n := int64(0); n <= 100; n++ {
		pct := clampPct(n, 100)
		if pct < last {
			t.Fatalf("percent decreased at n=%d: %v < %v", n, pct, last)
		}
		last = pct
	}
}
