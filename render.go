package meter

import (
	"strings"

	"github.com/havenforge/meter/term"
	"github.com/mattn/go-runewidth"
)

// terminalCapability is the terminal surface the rendering engine needs;
// see term.Capability for the concrete escape-sequence implementation.
// Keeping the alias local lets bar.go/render.go avoid importing term in
// every signature.
type terminalCapability = term.Capability

const overflowMessage = "... (more hidden) ..."

// padTo right-pads s with spaces to exactly cols display columns. A line
// already cols or more columns wide (for example when the text around
// the glyph region alone exceeds the width) is returned unchanged; it is
// never truncated.
func padTo(s string, cols int) string {
	w := runewidth.StringWidth(s)
	if w >= cols {
		return s
	}
	return s + strings.Repeat(" ", cols-w)
}

// draw renders the bar at row r in a terminal of the given (cols, rows):
// walk down r lines, write the padded frame, walk back up, and park the
// cursor at the right edge. Rows at or beyond the visible window are
// skipped; the last visible row renders the overflow ellipsis instead of
// a bar. final disables rate smoothing for the line that is about to be
// rendered (used by the last frame at close).
func (b *bar) draw(r uint16, cols, rows int, final bool) {
	if !b.term.IsTTY() {
		return
	}
	if int(r) >= rows {
		return
	}

	var line string
	if int(r) == rows-1 {
		line = overflowMessage
	} else {
		line = b.formatLine(cols, final)
	}
	line = padTo(line, cols)

	b.sinkMu.Lock()
	defer b.sinkMu.Unlock()

	if r > 0 {
		for i := uint16(0); i < r; i++ {
			b.term.Print("\n")
		}
	}
	b.term.MoveToColumn(0)
	b.term.Print(line)
	if r > 0 {
		b.term.MoveUp(int(r))
	}
	b.term.MoveToColumn(cols)
	b.term.Flush()
}

// clear performs the same vertical navigation as draw, but erases the
// row instead of writing a line, and returns the cursor to the original
// anchor.
func (b *bar) clear(r uint16, cols, rows int) {
	if !b.term.IsTTY() {
		return
	}
	if int(r) >= rows {
		return
	}

	b.sinkMu.Lock()
	defer b.sinkMu.Unlock()

	if r > 0 {
		for i := uint16(0); i < r; i++ {
			b.term.Print("\n")
		}
	}
	b.term.MoveToColumn(0)
	b.term.ClearCurrentLine()
	if r > 0 {
		b.term.MoveUp(int(r))
	}
	b.term.MoveToColumn(0)
	b.term.Flush()
}
