package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/ui/theme"
)

const bannerArt = `
 ██████╗ ███████╗ ██████╗ ██████╗ ██████╗ ██╗██╗     ██╗
██╔════╝ ██╔════╝██╔═══██╗██╔══██╗██╔══██╗██║██║     ██║
██║  ███╗█████╗  ██║   ██║██║  ██║██████╔╝██║██║     ██║
██║   ██║██╔══╝  ██║   ██║██║  ██║██╔══██╗██║██║     ██║
╚██████╔╝███████╗╚██████╔╝██████╔╝██║  ██║██║███████╗███████╗
 ╚═════╝ ╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

const bannerCompact = "G E O D R I L L"

// RenderBanner returns the GEODRILL banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 64 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 64 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
