package meter

import "testing"

func TestPresetGlyphs(t *testing.T) {
	cases := []struct {
		style Style
		want  string
	}{
		{ASCII, "#0123456789 "},
		{Block, "█ ▏▎▍▌▋▊▉ "},
		{Balloon, "*.oO@ "},
	}
	for _, c := range cases {
		if got := c.style.glyphs(); got != c.want {
			t.Errorf("%v.glyphs() = %q, want %q", c.style, got, c.want)
		}
	}
}

func TestNewCustomStyleRejectsShortAlphabets(t *testing.T) {
	if _, err := NewCustomStyle("x"); err == nil {
		t.Fatal("expected error for single-rune custom style")
	}
	if _, err := NewCustomStyle(""); err == nil {
		t.Fatal("expected error for empty custom style")
	}
	if _, err := NewCustomStyle("=>-"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCustomStyleBarRegion renders the three-rune custom style "=>-"
// at 50% on a bar region of width 20: a run of '=' cells, one '>'
// partial glyph, and '-' background cells filling the rest.
func TestCustomStyleBarRegion(t *testing.T) {
	region := renderBarRegion("=>-", 0.5, 20)
	if got, want := runeCount(region), 20; got != want {
		t.Fatalf("region length = %d, want %d (region=%q)", got, want, region)
	}
	runes := []rune(region)
	nFull := 0
	for nFull < len(runes) && runes[nFull] == '=' {
		nFull++
	}
	if nFull == 0 || runes[nFull] != '>' {
		t.Fatalf("expected a run of '=' followed by '>', got %q", region)
	}
	for i := nFull + 1; i < len(runes); i++ {
		if runes[i] != '-' {
			t.Fatalf("expected background '-' at index %d, got %q in %q", i, runes[i], region)
		}
	}
}

func runeCount(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
