package onboarding

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/speakflow/internal/ui/theme"
)

const bannerArt = `
 ███████╗██████╗ ███████╗ █████╗ ██╗  ██╗███████╗██╗      ██████╗ ██╗    ██╗
 ██╔════╝██╔══██╗██╔════╝██╔══██╗██║ ██╔╝██╔════╝██║     ██╔═══██╗██║    ██║
 ███████╗██████╔╝█████╗  ███████║█████╔╝ █████╗  ██║     ██║   ██║██║ █╗ ██║
 ╚════██║██╔═══╝ ██╔══╝  ██╔══██║██╔═██╗ ██╔══╝  ██║     ██║   ██║██║███╗██║
 ███████║██║     ███████╗██║  ██║██║  ██╗██║     ███████╗╚██████╔╝╚███╔███╔╝
 ╚══════╝╚═╝     ╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚══════╝ ╚═════╝  ╚══╝╚══╝`

const bannerCompact = "说  S P E A K F L O W"

// RenderBanner returns the banner in the primary color, with a compact
// fallback for terminals narrower than 80 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 80 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
