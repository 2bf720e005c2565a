package meter

// BarOption configures a bar at construction time. Handle's SetXxx
// methods apply the same config fields later, under the per-bar mutex.
type BarOption func(*config)

// WithStyle selects one of the built-in glyph presets.
func WithStyle(s Style) BarOption {
	return func(c *config) {
		c.useCustom = false
		c.style = s
	}
}

// WithCustomStyle installs a validated custom glyph alphabet.
func WithCustomStyle(cs CustomStyle) BarOption {
	return func(c *config) {
		c.useCustom = true
		c.customRaw = cs.glyphs()
	}
}

// WithWidth overrides the bar's column count. A value <= 0 restores
// terminal-width tracking.
func WithWidth(width int) BarOption {
	return func(c *config) { c.width = width }
}

// WithDesc sets the bar's prefix text.
func WithDesc(desc string) BarOption {
	return func(c *config) { c.desc = desc }
}

// WithPostfix sets the bar's initial trailing annotation.
func WithPostfix(postfix string) BarOption {
	return func(c *config) { c.postfix = postfix }
}

// WithUnitScale enables SI-scaled counter formatting.
func WithUnitScale(scale bool) BarOption {
	return func(c *config) { c.unitScale = scale }
}

// WithTotal overrides the total passed to AddBar. total <= 0 makes the
// bar unbounded.
func WithTotal(total int64) BarOption {
	return func(c *config) { c.total = total }
}
