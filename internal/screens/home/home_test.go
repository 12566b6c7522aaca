package home

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/logging"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screens/placeholder"
	"github.com/abhisek/geodrill/internal/screens/profile"
	"github.com/abhisek/geodrill/internal/screens/signin"
	"github.com/abhisek/geodrill/internal/screens/trainer"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newHome(t *testing.T, player string, withData bool) (*HomeScreen, *progress.MemoryRepo) {
	t.Helper()
	players, err := identity.NewStatic(player)
	if err != nil {
		t.Fatal(err)
	}
	repo := progress.NewMemoryRepo()
	deps := Deps{Players: players, Log: logging.Discard()}
	if withData {
		cat, err := refdata.Default()
		if err != nil {
			t.Fatal(err)
		}
		deps.Reader = repo
		deps.Trainer = trainer.Deps{
			Catalog:  cat,
			Recorder: progress.NewRecorder(repo, logging.Discard()),
			Players:  players,
		}
	}
	return New(deps), repo
}

// pushed presses key and returns the screen the menu asks to push.
func pushed(t *testing.T, h *HomeScreen, key rune) any {
	t.Helper()
	_, cmd := h.Update(keyPress(key))
	if cmd == nil {
		t.Fatalf("no command for %q", key)
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg for %q", key)
	}
	return msg.Screen
}

func TestHome_MenuTargets(t *testing.T) {
	h, _ := newHome(t, "ada", true)

	if s, ok := pushed(t, h, '1').(*trainer.TrainerScreen); !ok || s.Title() != "Flag Trainer" {
		t.Error("1 should open the flag trainer")
	}
	if s, ok := pushed(t, h, '2').(*trainer.TrainerScreen); !ok || s.Title() != "Language Trainer" {
		t.Error("2 should open the language trainer")
	}
	if _, ok := pushed(t, h, '3').(*profile.ProfileScreen); !ok {
		t.Error("3 should open the profile")
	}
	if _, ok := pushed(t, h, '4').(*signin.SignInScreen); !ok {
		t.Error("4 should open sign-in")
	}
}

func TestHome_PlaceholdersWithoutBackend(t *testing.T) {
	h, _ := newHome(t, "", false)

	for _, key := range []rune{'1', '2', '3'} {
		if _, ok := pushed(t, h, key).(*placeholder.PlaceholderScreen); !ok {
			t.Errorf("%q should open a placeholder without data or storage", key)
		}
	}
}

func TestHome_Exit(t *testing.T) {
	h, _ := newHome(t, "", false)
	_, cmd := h.Update(keyPress('5'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("EXIT should quit")
	}
}

func TestHome_StatsShowBestStreaks(t *testing.T) {
	h, repo := newHome(t, "ada", true)
	_ = repo.UpsertScore(context.Background(), "ada", quiz.Flags, 0, 7)
	_ = repo.UpsertScore(context.Background(), "ada", quiz.Languages, 2, 3)

	h.Update(h.Init()())

	view := h.View(120, 40)
	for _, want := range []string{"@ ada", "★ 7", "★ 3"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestHome_ResumeReloadsStats(t *testing.T) {
	h, repo := newHome(t, "ada", true)
	h.Update(h.Init()())

	_ = repo.UpsertScore(context.Background(), "ada", quiz.Flags, 12, 12)
	h.Update(h.Resume()())

	if h.stats.best[quiz.Flags] != 12 {
		t.Errorf("best = %d, want 12", h.stats.best[quiz.Flags])
	}
	if h.mascot() != MascotCelebrating {
		t.Error("a milestone streak should celebrate")
	}
}

func TestHome_StaleStatsIgnored(t *testing.T) {
	h, _ := newHome(t, "ada", true)
	h.Update(statsMsg{Identity: "someone-else", Best: map[quiz.Variant]int{quiz.Flags: 99}})
	if h.stats.loaded {
		t.Error("stats for another identity must be dropped")
	}
}

func TestHome_StatsError(t *testing.T) {
	h, _ := newHome(t, "ada", true)
	h.Update(statsMsg{Identity: "ada", Err: errors.New("offline")})
	if !strings.Contains(h.View(120, 40), "stats unavailable") {
		t.Error("expected the stats warning")
	}
}

func TestHome_GuestMascot(t *testing.T) {
	h, _ := newHome(t, "", false)
	if h.mascot() != MascotCurious {
		t.Error("guests get the curious mascot")
	}
	if !strings.Contains(h.View(120, 40), "@ Guest") {
		t.Error("expected guest in the stats bar")
	}
}
