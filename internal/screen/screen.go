package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Closer is implemented by screens that hold resources. The router calls
// Close when the screen leaves the stack.
type Closer interface {
	Close()
}

// StreakProvider lets the active screen put a streak in the header.
type StreakProvider interface {
	Streak() (quiz.Streak, bool)
}

// Resumer is implemented by screens that refresh themselves when the
// screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}
