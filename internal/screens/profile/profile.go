// Package profile shows what has been stored for the current player: best
// streaks, the items missed most often and the latest answers.
package profile

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/identity"
	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/ui/components"
	"github.com/abhisek/geodrill/internal/ui/layout"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

const (
	recentLimit  = 8
	hardestLimit = 5
	loadTimeout  = 5 * time.Second
)

type profileLoadedMsg struct {
	Profile progress.Profile
	Err     error
}

// ProfileScreen renders a progress.Profile, one variant at a time.
type ProfileScreen struct {
	reader  progress.Reader
	players identity.Provider
	catalog *refdata.Catalog

	variant int // index into quiz.Variants
	profile progress.Profile
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a ProfileScreen. catalog is only used to turn item keys into
// names and may be nil.
func New(reader progress.Reader, players identity.Provider, catalog *refdata.Catalog) *ProfileScreen {
	return &ProfileScreen{reader: reader, players: players, catalog: catalog}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return s.load()
}

func (s *ProfileScreen) load() tea.Cmd {
	reader := s.reader
	key := identity.Key(s.players)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		p, err := progress.LoadProfile(ctx, reader, key, recentLimit)
		return profileLoadedMsg{Profile: p, Err: err}
	}
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Variant"},
		{Key: "R", Description: "Reload"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		s.loaded = true
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.profile = msg.Profile
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			s.variant = (s.variant + len(quiz.Variants) - 1) % len(quiz.Variants)
		case "right", "l", "tab":
			s.variant = (s.variant + 1) % len(quiz.Variants)
		case "r", "R":
			s.loaded = false
			return s, s.load()
		}
	}
	return s, nil
}

// Variant is the variant whose details are shown.
func (s *ProfileScreen) Variant() quiz.Variant {
	return quiz.Variants[s.variant]
}

func (s *ProfileScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading profile...")
	}
	if s.profile.Empty() {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\n  Nothing recorded for %s yet. Start a trainer!", identity.Display(s.players)))
	}

	cw := components.ContentWidth(width)
	sections := []string{
		s.renderTabs(cw),
		s.renderSummary(cw),
		s.renderHardest(cw),
		s.renderRecent(cw),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		"\n"+strings.Join(sections, "\n\n"))
}

func (s *ProfileScreen) renderTabs(cw int) string {
	tabs := make([]string, 0, len(quiz.Variants))
	for i, v := range quiz.Variants {
		style := lipgloss.NewStyle().Padding(0, 2).Foreground(theme.TextDim)
		if i == s.variant {
			style = style.Foreground(theme.BgDark).Background(theme.Gold).Bold(true)
		}
		tabs = append(tabs, style.Render(v.Title()))
	}
	return lipgloss.PlaceHorizontal(cw, lipgloss.Center, strings.Join(tabs, " "))
}

func (s *ProfileScreen) renderSummary(cw int) string {
	v := s.Variant()
	sc := s.profile.Scores[v]
	correct, answered := s.profile.Totals(v)

	gold := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	lines := []string{
		gold.Render(fmt.Sprintf("★ best streak %d", sc.BestStreak)) +
			theme.Muted.Render(fmt.Sprintf("   current %d", sc.Score)),
	}
	if answered > 0 {
		bar := components.ProgressBar{
			Label:       fmt.Sprintf("%d/%d correct", correct, answered),
			Percent:     float64(correct) / float64(answered),
			ShowPercent: true,
			Width:       cw - 6,
		}
		lines = append(lines, bar.View())
	}
	return components.Card(strings.Join(lines, "\n"), cw)
}

func (s *ProfileScreen) renderHardest(cw int) string {
	title := theme.Subtitle.Render("Most missed")
	hard := s.profile.Hardest(s.Variant(), hardestLimit)
	if len(hard) == 0 {
		return title + "\n" + theme.Muted.Render("No misses yet.")
	}

	labelWidth := 0
	labels := make([]string, len(hard))
	for i, it := range hard {
		labels[i] = s.label(s.Variant(), it.ItemKey)
		labelWidth = max(labelWidth, lipgloss.Width(labels[i]))
	}

	rows := []string{title}
	for i, it := range hard {
		bar := components.ProgressBar{
			Label:       labels[i],
			LabelWidth:  labelWidth,
			Percent:     it.Accuracy(),
			ShowPercent: true,
			Width:       cw,
		}
		rows = append(rows, bar.View())
	}
	return strings.Join(rows, "\n")
}

func (s *ProfileScreen) renderRecent(cw int) string {
	rows := []string{theme.Subtitle.Render("Recent answers")}
	if len(s.profile.Recent) == 0 {
		return rows[0] + "\n" + theme.Muted.Render("None yet.")
	}
	for _, a := range s.profile.Recent {
		mark := theme.Correct.Render("✓")
		if !a.Correct {
			mark = theme.Incorrect.Render("✗")
		}
		when := a.CreatedAt.Local().Format("Jan 02 15:04")
		line := fmt.Sprintf("%s %-28s %s", mark, s.label(a.Variant, a.ItemKey), theme.Muted.Render(when))
		if !a.Correct && a.UserAnswer != "" {
			line += theme.Muted.Render("  said " + a.UserAnswer)
		}
		rows = append(rows, lipgloss.NewStyle().MaxWidth(cw).Render(line))
	}
	return strings.Join(rows, "\n")
}

// label resolves an item key to its display name, falling back to the key.
func (s *ProfileScreen) label(v quiz.Variant, key string) string {
	if s.catalog != nil {
		if it, ok := s.catalog.Lookup(v, key); ok {
			return it.Label()
		}
	}
	return key
}
