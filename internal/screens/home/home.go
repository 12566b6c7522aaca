// Package home is the main menu.
package home

import (
	"context"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/screens/placeholder"
	"github.com/abhisek/geodrill/internal/screens/profile"
	"github.com/abhisek/geodrill/internal/screens/signin"
	"github.com/abhisek/geodrill/internal/screens/trainer"
	"github.com/abhisek/geodrill/internal/ui/components"
	"github.com/abhisek/geodrill/internal/ui/layout"
)

const statsTimeout = 3 * time.Second

// celebrateAt is the best streak that earns the celebrating mascot.
const celebrateAt = 10

// Deps wires the home screen to the rest of the app. Trainer.Players and
// Players should be the same provider.
type Deps struct {
	Trainer trainer.Deps
	Reader  progress.Reader
	Players *identity.Static
	Log     *slog.Logger
}

type statsMsg struct {
	Identity string
	Best     map[quiz.Variant]int
	Err      error
}

type stats struct {
	best   map[quiz.Variant]int
	loaded bool
	err    string
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	deps  Deps
	menu  components.Menu
	stats stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	h := &HomeScreen{deps: deps}
	h.menu = components.NewMenu(h.menuItems())
	return h
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	push := func(s screen.Screen) tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
	}
	trainerItem := func(v quiz.Variant) components.MenuItem {
		return components.MenuItem{Label: strings.ToUpper(v.Title()), Action: func() tea.Cmd {
			if h.deps.Trainer.Catalog == nil {
				return push(placeholder.New(v.Title(), "No reference data loaded.\nCheck --data-dir and try again."))
			}
			return push(trainer.New(v, h.deps.Trainer))
		}}
	}

	return []components.MenuItem{
		trainerItem(quiz.Flags),
		trainerItem(quiz.Languages),
		{Label: "PROFILE", Action: func() tea.Cmd {
			if h.deps.Reader == nil {
				return push(placeholder.New("Profile", "No storage backend is configured."))
			}
			return push(profile.New(h.deps.Reader, h.deps.Players, h.deps.Trainer.Catalog))
		}},
		{Label: "SIGN IN", Action: func() tea.Cmd {
			return push(signin.New(h.deps.Players, h.deps.Log))
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume refreshes the stats when a trainer, profile or sign-in screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	reader := h.deps.Reader
	key := identity.Key(h.deps.Players)
	if reader == nil {
		return func() tea.Msg { return statsMsg{Identity: key} }
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), statsTimeout)
		defer cancel()
		scores, err := reader.Scores(ctx, key)
		if err != nil {
			return statsMsg{Identity: key, Err: err}
		}
		best := make(map[quiz.Variant]int, len(scores))
		for _, s := range scores {
			best[s.Variant] = s.BestStreak
		}
		return statsMsg{Identity: key, Best: best}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsMsg:
		// A sign-in may have happened while this was loading.
		if msg.Identity != identity.Key(h.deps.Players) {
			return h, nil
		}
		h.stats = stats{best: msg.Best, loaded: true}
		if msg.Err != nil {
			h.deps.Log.Warn("load home stats failed", "identity", msg.Identity, "error", msg.Err)
			h.stats.err = msg.Err.Error()
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	if _, ok := h.deps.Players.Current(); !ok {
		return MascotCurious
	}
	for _, b := range h.stats.best {
		if b >= celebrateAt {
			return MascotCelebrating
		}
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header and footer to estimate
	// the terminal height.
	termHeight := height + layout.HeaderHeight + layout.FooterHeight + 2
	compact := layout.IsCompactHeight(termHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}
	sections = append(sections,
		renderStatsBar(identity.Display(h.deps.Players), h.stats, cw, compact),
		h.menu.View(cw, buttonWidth),
	)

	sep := "\n\n"
	if compact {
		sep = "\n"
	}
	return components.Frame(strings.Join(sections, sep), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-5", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
