package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/logging"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screens/trainer"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	cat, err := refdata.Default()
	if err != nil {
		t.Fatal(err)
	}
	players, err := identity.NewStatic("ada")
	if err != nil {
		t.Fatal(err)
	}
	return Options{
		Catalog: cat,
		Repo:    progress.NewMemoryRepo(),
		Players: players,
		Logger:  logging.Discard(),
		Seed:    42,
	}
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestStartsOnSplash(t *testing.T) {
	m := newAppModel(testOptions(t))
	if m.router.Depth() != 1 || m.router.Active().Title() != "" {
		t.Errorf("expected the splash, got %q", m.router.Active().Title())
	}
	if m.Init() == nil {
		t.Error("expected the splash ticker to start")
	}
}

func TestStartVariantOpensTrainer(t *testing.T) {
	opts := testOptions(t)
	opts.StartVariant = quiz.Languages
	m := newAppModel(opts)

	if m.router.Depth() != 2 {
		t.Fatalf("depth = %d, want home plus trainer", m.router.Depth())
	}
	if m.router.Active().Title() != "Language Trainer" {
		t.Errorf("active = %q", m.router.Active().Title())
	}
}

func TestEscPopsToHome(t *testing.T) {
	opts := testOptions(t)
	opts.StartVariant = quiz.Flags
	m := newAppModel(opts)

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Fatal("esc should pop")
	}
	tr := m.router.Active().(*trainer.TrainerScreen)
	m.Update(router.PopScreenMsg{})

	if m.router.Active().Title() != "Home" {
		t.Errorf("active = %q, want Home", m.router.Active().Title())
	}
	if tr.Session() != nil && tr.Session().Phase() != quiz.PhaseClosed {
		t.Error("popped trainer left its session open")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(testOptions(t))
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestViewFrame(t *testing.T) {
	opts := testOptions(t)
	opts.StartVariant = quiz.Flags
	m := sized(newAppModel(opts))

	if !m.View().AltScreen {
		t.Error("expected alt screen")
	}
	header := m.header()
	for _, want := range []string{"GeoDrill", "Flag Trainer", "@ ada"} {
		if !strings.Contains(header, want) {
			t.Errorf("header missing %q", want)
		}
	}
	hints := m.footerHints()
	if len(hints) == 0 || hints[len(hints)-1].Key != "Esc" {
		t.Errorf("expected trainer hints ending in Esc, got %+v", hints)
	}
}

func TestHeaderShowsStreak(t *testing.T) {
	opts := testOptions(t)
	opts.StartVariant = quiz.Flags
	m := sized(newAppModel(opts))

	tr := m.router.Active().(*trainer.TrainerScreen)
	tr.Update(tr.Init()())

	if !strings.Contains(m.header(), "★ 0") {
		t.Error("expected the live streak in the header")
	}
}

func TestSeededSessionsRepeat(t *testing.T) {
	f := newRandFunc(7)
	a, b := f(), f()
	if a.Uint64() != b.Uint64() {
		t.Error("same seed should give the same sequence")
	}
	if newRandFunc(0) != nil {
		t.Error("seed 0 should defer to the clock")
	}
}
