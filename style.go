package meter

import "fmt"

// Style selects the glyph alphabet used to render a bar's fill region.
// The zero value is ASCII.
type Style int

const (
	// ASCII fills with '#', ten partial-fill digits, background space.
	ASCII Style = iota
	// Block fills with a full block, eighth-wide partials, background space.
	Block
	// Balloon fills with '*', partials ".oO@", background space.
	Balloon
)

const (
	asciiGlyphs   = "#0123456789 "
	blockGlyphs   = "█ ▏▎▍▌▋▊▉ "
	balloonGlyphs = "*.oO@ "
)

// glyphs resolves a named style to its glyph alphabet: first rune is the
// filled glyph, last rune is the background glyph, and everything between
// is the ordered set of partial-fill glyphs used for the single
// rightmost cell of the filled region. The Block alphabet carries a
// space at position 1: the eighth-block runes and that leading space
// together form its partial set.
func (s Style) glyphs() string {
	switch s {
	case Block:
		return blockGlyphs
	case Balloon:
		return balloonGlyphs
	default:
		return asciiGlyphs
	}
}

// CustomStyle is a user-supplied glyph alphabet obeying the Style
// contract: first rune filled, last rune background, the rest ordered
// partials.
type CustomStyle struct {
	raw string
}

// NewCustomStyle validates and wraps a custom glyph alphabet. The string
// must contain at least two runes (filled, background); any runes between
// them are the ordered partial-fill set.
func NewCustomStyle(s string) (CustomStyle, error) {
	if n := runeLen(s); n < 2 {
		return CustomStyle{}, fmt.Errorf("meter: custom style %q needs at least 2 runes, got %d", s, n)
	}
	return CustomStyle{raw: s}, nil
}

func (c CustomStyle) glyphs() string { return c.raw }

// glyphSet is the decoded form consumed by the formatter: filled glyph,
// ordered partial glyphs, background glyph.
type glyphSet struct {
	filled     rune
	partials   []rune
	background rune
}

func decodeGlyphs(s string) glyphSet {
	runes := []rune(s)
	gs := glyphSet{filled: runes[0], background: runes[len(runes)-1]}
	if len(runes) > 2 {
		gs.partials = runes[1 : len(runes)-1]
	} else {
		gs.partials = []rune{runes[0]}
	}
	return gs
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
