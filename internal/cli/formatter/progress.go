package formatter

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders worked time against a daily target, such as
// [████░░░░] 4h / 8h. The bar turns green once the target is met and stays
// yellow or red below it. A zero target renders the worked time only.
func RenderProgress(worked, target time.Duration, width int) string {
	if target <= 0 {
		return FormatDuration(worked)
	}
	if width < 2 {
		width = 2
	}

	pct := float64(worked) / float64(target)
	if pct < 0 {
		pct = 0
	}
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	switch {
	case pct < 0.5:
		style = StyleRed
	case pct < 1:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %s / %s", style.Render(bar), FormatDuration(worked), FormatDuration(target))
}
