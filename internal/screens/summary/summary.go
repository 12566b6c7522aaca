// Package summary shows the results of one trainer run.
package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/router"
	"github.com/abhisek/geodrill/internal/screen"
	"github.com/abhisek/geodrill/internal/ui/layout"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

// Result is what a trainer reports when the player finishes.
type Result struct {
	Variant  quiz.Variant
	Duration time.Duration
	Tally    quiz.Tally
	Streak   quiz.Streak
	Missed   []string // labels of missed items, in order, without repeats
}

// Accuracy is the fraction of correct answers this run.
func (r Result) Accuracy() float64 {
	if r.Tally.Answered == 0 {
		return 0
	}
	return float64(r.Tally.Correct) / float64(r.Tally.Answered)
}

// SummaryScreen displays a Result.
type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(result Result) *SummaryScreen {
	return &SummaryScreen{result: result}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return s.result.Variant.Title() + " Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Home"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), headline(r)))
	b.WriteString("\n\n")

	mins := int(r.Duration.Minutes())
	secs := int(r.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Answered: %d        Correct: %d        Accuracy: %.0f%%",
		r.Tally.Answered, r.Tally.Correct, r.Accuracy()*100)
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text), statsLine))
	b.WriteString("\n")
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Gold),
		fmt.Sprintf("★ streak %d   best %d", r.Streak.Current, r.Streak.Best)))
	b.WriteString("\n\n")

	if len(r.Missed) > 0 {
		divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
			strings.Repeat("─", min(width-8, 60)))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Worth another look")))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, label := range r.Missed {
			b.WriteString(center(theme.Incorrect, label))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func headline(r Result) string {
	switch {
	case r.Tally.Answered == 0:
		return "No answers this time."
	case r.Tally.Correct == r.Tally.Answered:
		return "Flawless run!"
	case r.Accuracy() >= 0.8:
		return "Great run!"
	default:
		return "Run complete."
	}
}
