// Package app is the root Bubble Tea model: a router of screens inside a
// header and footer frame.
package app

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/screens/home"
	"github.com/abhisek/geodrill/internal/screens/trainer"
	"github.com/abhisek/geodrill/internal/screens/welcome"
	"github.com/abhisek/geodrill/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	Catalog *refdata.Catalog
	Repo    progress.Repo // nil runs without persistence
	Players *identity.Static
	Logger  *slog.Logger

	// Seed makes every session's shuffles reproducible. 0 seeds from the clock.
	Seed uint64

	// StartVariant opens that trainer on top of the home screen and skips
	// the splash.
	StartVariant quiz.Variant
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	players identity.Provider
	initCmd tea.Cmd
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	players := opts.Players
	if players == nil {
		players, _ = identity.NewStatic("")
	}

	deps := home.Deps{
		Trainer: trainer.Deps{
			Catalog:  opts.Catalog,
			Recorder: progress.NewRecorder(opts.Repo, log),
			Players:  players,
			NewRand:  newRandFunc(opts.Seed),
		},
		Reader:  opts.Repo,
		Players: players,
		Log:     log,
	}

	homeFactory := func() screen.Screen { return home.New(deps) }

	if opts.StartVariant == "" {
		r := router.New(welcome.New(homeFactory))
		return AppModel{router: r, players: players, initCmd: r.Init()}
	}

	r := router.New(homeFactory())
	initCmd := r.Init()
	var pushCmd tea.Cmd
	if opts.Catalog != nil {
		pushCmd = r.Push(trainer.New(opts.StartVariant, deps.Trainer))
	}
	return AppModel{router: r, players: players, initCmd: tea.Batch(initCmd, pushCmd)}
}

// newRandFunc returns nil for seed 0 so sessions seed from the clock. A
// fixed seed gives each session the same sequence.
func newRandFunc(seed uint64) func() *rand.Rand {
	if seed == 0 {
		return nil
	}
	return func() *rand.Rand {
		return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.initCmd
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) header() string {
	active := m.router.Active()
	info := layout.HeaderInfo{Player: identity.Display(m.players)}
	title := ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StreakProvider); ok {
			if st, ok := sp.Streak(); ok {
				info.Streak, info.Best, info.HasStreak = st.Current, st.Best, true
			}
		}
	}
	return layout.RenderHeader(title, info, m.width)
}

func (m AppModel) footerHints() []layout.KeyHint {
	if hp, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return hp.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Any key", Description: "Continue"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := m.header()
	footer := layout.RenderFooter(m.footerHints(), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
