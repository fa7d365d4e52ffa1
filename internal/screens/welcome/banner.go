package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/smartest/internal/ui/theme"
)

const bannerArt = `
 ███████╗███╗   ███╗ █████╗ ██████╗ ████████╗███████╗███████╗████████╗
 ██╔════╝████╗ ████║██╔══██╗██╔══██╗╚══██╔══╝██╔════╝██╔════╝╚══██╔══╝
 ███████╗██╔████╔██║███████║██████╔╝   ██║   █████╗  ███████╗   ██║
 ╚════██║██║╚██╔╝██║██╔══██║██╔══██╗   ██║   ██╔══╝  ╚════██║   ██║
 ███████║██║ ╚═╝ ██║██║  ██║██║  ██║   ██║   ███████╗███████║   ██║
 ╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝╚══════╝   ╚═╝`

const bannerCompact = "S M A R T E S T"

// RenderBanner returns the banner in the primary color, falling back to a
// compact form below 72 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 72 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
