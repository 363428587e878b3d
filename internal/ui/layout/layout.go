// Package layout draws the chrome around every screen: a title bar with
// the learner's XP and streak, the screen body, and a key hint bar.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Rows taken by the title bar and the hint bar, rule lines included.
	chromeRows = 4

	compactWidth  = 100
	compactHeight = 30
)

// KeyHint is one entry of the hint bar.
type KeyHint struct {
	Key         string
	Description string
}

// HeaderStats are the learner totals shown on the right of the title bar.
type HeaderStats struct {
	XP     int
	Streak int
}

// Size is a terminal size in cells.
type Size struct {
	Width, Height int
}

// TooSmall reports whether the terminal is below the supported minimum.
func (s Size) TooSmall() bool {
	return s.Width < MinWidth || s.Height < MinHeight
}

// Compact reports whether screens should drop decoration to fit.
func (s Size) Compact() bool {
	return s.Width < compactWidth || s.Height < compactHeight
}

// Body is the size left for a screen once the chrome is drawn.
func (s Size) Body() Size {
	return Size{Width: s.Width, Height: max(s.Height-chromeRows, 0)}
}

// BodySize reports the size of the whole terminal a screen body of
// width x height belongs to.
func BodySize(width, height int) Size {
	return Size{Width: width, Height: height + chromeRows}
}

// Chrome is what surrounds the screen body.
type Chrome struct {
	Title string
	Stats HeaderStats
	Hints []KeyHint
}

// Render draws chrome around body, padding or clipping body to fit.
func Render(size Size, c Chrome, body string) string {
	inner := size.Body()
	body = lipgloss.NewStyle().
		Width(inner.Width).
		Height(inner.Height).
		MaxHeight(inner.Height).
		Render(body)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleBar(c.Title, c.Stats, size.Width),
		body,
		hintBar(c.Hints, size.Width),
	)
}

// TooSmallNotice fills the terminal with a resize request.
func TooSmallNotice(size Size) string {
	return lipgloss.Place(size.Width, size.Height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render(fmt.Sprintf("SpeakFlow needs at least %d×%d.\nThis terminal is %d×%d.",
			MinWidth, MinHeight, size.Width, size.Height)),
		lipgloss.WithWhitespaceChars(" "))
}

func titleBar(title string, stats HeaderStats, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" 说 SpeakFlow")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("⚡ %d XP", stats.XP)) +
		"  " +
		lipgloss.NewStyle().Foreground(theme.Primary).Render(streakLabel(stats.Streak)) + " "
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)

	// Center the title on the full width, not between the side labels.
	lw, mw, rw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(right)
	gapL := max((width-mw)/2-lw, 1)
	gapR := max(width-lw-gapL-mw-rw, 1)
	line := brand + strings.Repeat(" ", gapL) + mid + strings.Repeat(" ", gapR) + right

	return lipgloss.NewStyle().Background(theme.BgCard).Width(width).MaxWidth(width).Render(line) +
		"\n" + rule(width)
}

func streakLabel(days int) string {
	if days == 1 {
		return "🔥 1 day"
	}
	return fmt.Sprintf("🔥 %d days", days)
}

func hintBar(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString(" ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(desc.Render("  ·  "))
		}
		b.WriteString(key.Render(h.Key) + " " + desc.Render(h.Description))
	}
	return rule(width) + "\n" + lipgloss.NewStyle().Width(width).MaxWidth(width).Render(b.String())
}

func rule(width int) string {
	return lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
}
