package meter

import (
	"strings"
	"testing"
)

func TestPrintlnRedrawsBars(t *testing.T) {
	ft := newFakeTerm(80, 24)
	p := New(WithWriter(ft))

	h := p.AddBar(100, WithDesc("dl"))
	h.Update(40)
	h.Refresh()

	p.Println("checkpoint reached")

	// The message scrolled past; the bar must own the screen again.
	if !strings.HasPrefix(ft.line(), "dl:  40%|") {
		t.Fatalf("after Println the frame is %q, want the bar redrawn", ft.line())
	}
	h.Close()
}

func TestStopClosesAllBars(t *testing.T) {
	ft := newFakeTerm(80, 24)
	p := New(WithWriter(ft))

	for i := 0; i < 4; i++ {
		h := p.AddBar(5)
		h.Update(5)
	}
	if got := p.BarCount(); got != 4 {
		t.Fatalf("BarCount = %d, want 4", got)
	}

	p.Stop()
	if got := p.BarCount(); got != 0 {
		t.Fatalf("BarCount after Stop = %d, want 0", got)
	}
}

func TestAddBarDrawsImmediately(t *testing.T) {
	ft := newFakeTerm(80, 24)
	p := New(WithWriter(ft))
	h := p.AddBar(100)

	if !strings.HasPrefix(ft.line(), "  0%|") {
		t.Fatalf("construction frame = %q, want a fresh 0%% bar", ft.line())
	}
	h.Close()
}

func TestProxyReaderDrivesBar(t *testing.T) {
	ft := newFakeTerm(80, 24)
	p := New(WithWriter(ft))
	h := p.AddBar(11)

	pr := h.ProxyReader(strings.NewReader("hello world"))
	buf := make([]byte, 4)
	total := 0
	for {
		n, err := pr.Read(buf)
		total += n
		if err != nil {
			break
		}
	}
	if total != 11 {
		t.Fatalf("read %d bytes, want 11", total)
	}
	if got := h.Current(); got != 11 {
		t.Fatalf("bar advanced to %d, want 11", got)
	}
	if err := pr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if p.BarCount() != 0 {
		t.Fatalf("bar still registered after proxy close")
	}
}
