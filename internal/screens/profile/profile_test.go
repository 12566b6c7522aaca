package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func seededRepo(t *testing.T) *progress.MemoryRepo {
	t.Helper()
	repo := progress.NewMemoryRepo()
	ctx := context.Background()
	_ = repo.UpsertScore(ctx, "ada", quiz.Flags, 1, 4)
	_ = repo.UpsertProgress(ctx, "ada", quiz.Flags, "AR", false)
	_ = repo.UpsertProgress(ctx, "ada", quiz.Flags, "AU", true)
	_ = repo.RecordAttempt(ctx, progress.AttemptRecord{
		Identity: "ada", Variant: quiz.Flags, ItemKey: "AR",
		CorrectAnswer: "Argentina", UserAnswer: "Uruguay",
	})
	return repo
}

func loaded(t *testing.T, reader progress.Reader, player string) *ProfileScreen {
	t.Helper()
	players, err := identity.NewStatic(player)
	if err != nil {
		t.Fatal(err)
	}
	cat, err := refdata.Default()
	if err != nil {
		t.Fatal(err)
	}
	s := New(reader, players, cat)
	s.Update(s.Init()())
	return s
}

func TestProfile_ShowsStoredProgress(t *testing.T) {
	s := loaded(t, seededRepo(t), "ada")

	view := s.View(100, 40)
	for _, want := range []string{"best streak 4", "1/2 correct", "Argentina", "said Uruguay"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestProfile_SwitchesVariant(t *testing.T) {
	s := loaded(t, seededRepo(t), "ada")

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.Variant() != quiz.Languages {
		t.Fatalf("variant = %s, want languages", s.Variant())
	}
	if !strings.Contains(s.View(100, 40), "No misses yet.") {
		t.Error("language tab should have no misses")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyLeft})
	if s.Variant() != quiz.Flags {
		t.Errorf("variant = %s, want flags", s.Variant())
	}
}

func TestProfile_EmptyForOtherPlayer(t *testing.T) {
	s := loaded(t, seededRepo(t), "grace")
	if !strings.Contains(s.View(100, 40), "Nothing recorded for grace") {
		t.Error("expected the empty message")
	}
}

func TestProfile_Reload(t *testing.T) {
	s := loaded(t, seededRepo(t), "ada")

	_, cmd := s.Update(keyPress('r'))
	if cmd == nil {
		t.Fatal("expected a reload command")
	}
	if !strings.Contains(s.View(100, 40), "Loading profile") {
		t.Error("expected the loading view while reloading")
	}
	if _, ok := cmd().(profileLoadedMsg); !ok {
		t.Error("reload should produce a loaded message")
	}
}

type brokenReader struct{ *progress.MemoryRepo }

func (brokenReader) Scores(context.Context, string) ([]progress.Score, error) {
	return nil, errors.New("database is locked")
}

func TestProfile_LoadError(t *testing.T) {
	s := loaded(t, brokenReader{progress.NewMemoryRepo()}, "ada")
	if !strings.Contains(s.View(100, 40), "database is locked") {
		t.Error("expected the load error in the view")
	}
}
