package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45% in the given style.
// pct is a fraction in [0, 1]; values outside are clamped.
func RenderProgress(pct float64, width int, style lipgloss.Style) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	empty := width - filled

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, empty)
	pctStr := fmt.Sprintf("%3.0f%%", pct*100)
	return fmt.Sprintf("[%s] %s", style.Render(bar), pctStr)
}

// RenderShare renders part's share of total as a progress bar.
// A zero total renders an empty bar.
func RenderShare(part, total time.Duration, width int, style lipgloss.Style) string {
	if total <= 0 {
		return RenderProgress(0, width, style)
	}
	return RenderProgress(float64(part)/float64(total), width, style)
}
