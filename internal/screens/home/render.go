package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

const titleFull = ` ██████╗ ███████╗ ██████╗ ██████╗ ██████╗ ██╗██╗     ██╗
██╔════╝ ██╔════╝██╔═══██╗██╔══██╗██╔══██╗██║██║     ██║
██║  ███╗█████╗  ██║   ██║██║  ██║██████╔╝██║██║     ██║
██║   ██║██╔══╝  ██║   ██║██║  ██║██╔══██╗██║██║     ██║
╚██████╔╝███████╗╚██████╔╝██████╔╝██║  ██║██║███████╗███████╗
 ╚═════╝ ╚══════╝ ╚═════╝ ╚═════╝ ╚═╝  ╚═╝╚═╝╚══════╝╚══════╝`

const titleCompact = "G · E · O · D · R · I · L · L"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Gold).
		Bold(true)

	art := titleFull
	if compact || cw < lipgloss.Width(titleFull) {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art))
}

// renderStatsBar shows the player and their best streak per variant.
func renderStatsBar(player string, st stats, cw int, compact bool) string {
	playerStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	bestStyle := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	best := func(v quiz.Variant, label string) string {
		if !st.loaded {
			return dimStyle.Render(label + " …")
		}
		if compact {
			return bestStyle.Render(fmt.Sprintf("%s★%d", label[:1], st.best[v]))
		}
		return bestStyle.Render(fmt.Sprintf("★ %d", st.best[v])) + dimStyle.Render(" "+label)
	}

	sep := "   "
	if compact {
		sep = " "
	}
	bar := playerStyle.Render("@ "+player) + sep +
		best(quiz.Flags, "FLAGS") + sep +
		best(quiz.Languages, "LANGUAGES")
	if st.err != "" {
		bar += sep + lipgloss.NewStyle().Foreground(theme.Error).Render("⚠ stats unavailable")
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Sky).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(bar)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
