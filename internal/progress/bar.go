package progress

import (
	"math"
	"strings"
)

const (
	DefaultBarWidth    = 10
	DefaultFilledGlyph = "🟩"
	DefaultEmptyGlyph  = "⬜"
)

// RenderBar draws width glyphs, the first round_half_up(percent/100*width) of them filled.
// percent is clamped to [0,100] so the glyph count is always width.
func RenderBar(percent float64, width int, filled, empty string) string {
	if width <= 0 {
		return ""
	}
	n := FilledCount(percent, width)
	return strings.Repeat(filled, n) + strings.Repeat(empty, width-n)
}

// FilledCount is the number of filled glyphs RenderBar draws.
func FilledCount(percent float64, width int) int {
	if width <= 0 {
		return 0
	}
	if math.IsNaN(percent) || percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	n := int(math.Floor(percent*float64(width)/100 + 0.5))
	if n < 0 {
		return 0
	}
	if n > width {
		return width
	}
	return n
}
