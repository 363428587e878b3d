package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

// Gauge draws label followed by a bar filled to frac, which is clamped to
// [0, 1]. The result is exactly width cells wide when width leaves room
// for a bar of at least four cells.
func Gauge(label string, frac float64, width int) string {
	return gauge(label, frac, width, false)
}

// GaugePercent is Gauge with the rounded percentage after the bar.
func GaugePercent(label string, frac float64, width int) string {
	return gauge(label, frac, width, true)
}

func gauge(label string, frac float64, width int, pct bool) string {
	frac = min(max(frac, 0), 1)

	var head, tail string
	if label != "" {
		head = lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}
	if pct {
		tail = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", int(frac*100+0.5)))
	}

	cells := max(width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	filled := int(float64(cells) * frac)
	return head +
		theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", cells-filled)) +
		tail
}
