// Package term is the thin terminal-capability surface the rendering
// engine in meter depends on: TTY detection, sizing, and the handful of
// cursor-movement primitives needed to redraw a fixed row in place.
package term

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// Capability is the terminal surface the rendering engine requires.
// Everything above this interface (draw/clear/close protocol) is
// terminal-agnostic; only this package touches escape sequences.
type Capability interface {
	IsTTY() bool
	Size() (cols, rows int)
	MoveUp(n int)
	MoveToColumn(c int)
	ClearCurrentLine()
	Print(text string)
	Flush()
}

// defaultCols/defaultRows are used when terminal size cannot be
// determined.
const (
	defaultCols = 80
	defaultRows = 64
)

// Writer is the real Capability, writing to an *os.File (stderr by
// convention). It buffers writes between Print calls and flushes the
// whole frame as one write.
type Writer struct {
	f     *os.File
	isTTY bool
	buf   *bufio.Writer
}

// New wraps f as a Capability. f is typically os.Stderr.
func New(f *os.File) *Writer {
	return &Writer{
		f:     f,
		isTTY: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
		buf:   bufio.NewWriter(f),
	}
}

// IsTTY reports whether the underlying file is a terminal.
func (w *Writer) IsTTY() bool { return w.isTTY }

// Size returns the terminal's (columns, rows), defaulting to (80, 64) on
// any failure to query the device.
func (w *Writer) Size() (cols, rows int) {
	if !w.isTTY {
		return defaultCols, defaultRows
	}
	cols, rows, err := term.GetSize(int(w.f.Fd()))
	if err != nil || cols <= 0 || rows <= 0 {
		return defaultCols, defaultRows
	}
	return cols, rows
}

// MoveUp moves the cursor up n lines by emitting the ANSI cursor-up
// sequence; n <= 0 is a no-op.
func (w *Writer) MoveUp(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(w.buf, "\x1b[%dA", n)
}

// MoveToColumn moves the cursor to column c (1-based in terminal terms,
// but callers pass 0 for "start of line").
func (w *Writer) MoveToColumn(c int) {
	if c <= 0 {
		w.buf.WriteByte('\r')
		return
	}
	fmt.Fprintf(w.buf, "\x1b[%dG", c+1)
}

// ClearCurrentLine emits the "erase entire line" escape sequence.
func (w *Writer) ClearCurrentLine() {
	w.buf.WriteString("\x1b[2K")
}

// Print writes text verbatim to the buffered frame.
func (w *Writer) Print(text string) {
	io.WriteString(w.buf, text)
}

// Flush commits the buffered frame to the underlying file in one write.
func (w *Writer) Flush() {
	w.buf.Flush()
}
