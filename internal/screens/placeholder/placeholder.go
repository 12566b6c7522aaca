// Package placeholder shows a menu destination that cannot run with the
// current setup, such as a trainer without reference data.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

const defaultMessage = "Nothing to show here yet.\nCheck your data directory and storage settings."

// PlaceholderScreen is a read-only notice with a title.
type PlaceholderScreen struct {
	title   string
	message string
}

var _ screen.Screen = (*PlaceholderScreen)(nil)

// New creates a PlaceholderScreen. An empty message uses a generic notice.
func New(title, message string) *PlaceholderScreen {
	if message == "" {
		message = defaultMessage
	}
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd {
	return nil
}

func (p *PlaceholderScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("╌╌ " + p.title + " ╌╌")
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(heading + "\n\n" + p.message)
}

func (p *PlaceholderScreen) Title() string {
	return p.title
}
