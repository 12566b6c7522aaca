// Package signin edits the player name that progress is stored under.
package signin

import (
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/ui/components"
	"github.com/abhisek/geodrill/internal/ui/layout"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

const nameLimit = 32

// SignInScreen prompts for a player name. Saving an empty name signs out.
type SignInScreen struct {
	players *identity.Static
	log     *slog.Logger
	input   components.TextInput
}

var _ screen.Screen = (*SignInScreen)(nil)
var _ screen.KeyHintProvider = (*SignInScreen)(nil)

// New creates a sign-in screen prefilled with the current player.
func New(players *identity.Static, log *slog.Logger) *SignInScreen {
	if log == nil {
		log = slog.Default()
	}
	in := components.NewTextInput("guest", nameLimit, func(v string) error {
		_, err := identity.Normalize(v)
		return err
	})
	if id, ok := players.Current(); ok {
		in.Model.SetValue(id)
	}
	return &SignInScreen{players: players, log: log, input: in}
}

func (s *SignInScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SignInScreen) Title() string {
	return "Sign In"
}

func (s *SignInScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (s *SignInScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, s.save()
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// save applies the typed name and leaves the screen. An invalid name keeps
// the screen open with the validation error shown under the input.
func (s *SignInScreen) save() tea.Cmd {
	if err := s.input.Submit(); err != nil {
		return nil
	}
	if err := s.players.SignIn(s.input.Value()); err != nil {
		return nil
	}
	s.log.Info("player changed", "identity", identity.Key(s.players))

	// Home reloads its stats for the new player when it resumes.
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *SignInScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	current := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Playing as " + identity.Display(s.players))
	prompt := theme.Subtitle.Render("Who is playing?")
	help := theme.Hint.Render(strings.Join([]string{
		"Letters, digits, '.', '_' and '-', up to 32 characters.",
		"Leave empty to play as guest.",
	}, "\n"))

	card := components.Card(prompt+"\n\n"+s.input.View()+"\n\n"+help, cw)
	content := lipgloss.JoinVertical(lipgloss.Center, current, "", card)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
