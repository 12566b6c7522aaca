package signin

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/logging"
	"github.com/abhisek/geodrill/internal/router"
)

func enter() tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func newScreen(t *testing.T, name string) (*SignInScreen, *identity.Static) {
	t.Helper()
	players, err := identity.NewStatic(name)
	if err != nil {
		t.Fatal(err)
	}
	return New(players, logging.Discard()), players
}

func TestSignIn_PrefillsCurrentPlayer(t *testing.T) {
	s, _ := newScreen(t, "ada")
	if s.input.Value() != "ada" {
		t.Errorf("input = %q, want ada", s.input.Value())
	}
	if !strings.Contains(s.View(80, 20), "Playing as ada") {
		t.Error("view should show the current player")
	}
}

func TestSignIn_SaveSwitchesPlayer(t *testing.T) {
	s, players := newScreen(t, "")
	s.input.Model.SetValue("  Grace ")

	_, cmd := s.Update(enter())

	if cmd == nil {
		t.Fatal("expected the screen to close after saving")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("saving should pop back to the previous screen")
	}
	if id, ok := players.Current(); !ok || id != "grace" {
		t.Errorf("Current = %q, %v; want grace", id, ok)
	}
}

func TestSignIn_EmptySignsOut(t *testing.T) {
	s, players := newScreen(t, "ada")
	s.input.Model.SetValue("")

	_, cmd := s.Update(enter())

	if cmd == nil {
		t.Fatal("expected the screen to close after saving")
	}
	if _, ok := players.Current(); ok {
		t.Error("expected guest after saving an empty name")
	}
}

func TestSignIn_InvalidNameStays(t *testing.T) {
	s, players := newScreen(t, "ada")
	s.input.Model.SetValue("not a name!")

	_, cmd := s.Update(enter())

	if cmd != nil {
		t.Error("invalid name must keep the screen open")
	}
	if id, _ := players.Current(); id != "ada" {
		t.Errorf("player changed to %q", id)
	}
	if !strings.Contains(s.View(80, 20), "✗") {
		t.Error("expected the validation error in the view")
	}
}

func TestSignIn_KeyHints(t *testing.T) {
	s, _ := newScreen(t, "")
	if len(s.KeyHints()) != 2 {
		t.Errorf("expected 2 hints, got %d", len(s.KeyHints()))
	}
	if s.Title() != "Sign In" {
		t.Errorf("Title = %q", s.Title())
	}
}
