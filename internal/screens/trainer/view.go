package trainer

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/refdata"
	"github.com/abhisek/geodrill/internal/ui/components"
	"github.com/abhisek/geodrill/internal/ui/theme"
)

func (s *TrainerScreen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.sess == nil {
		return renderLoading(width)
	}

	cw := components.ContentWidth(width)
	sections := []string{
		s.renderInfoLine(cw),
		s.renderPrompt(cw),
		s.choices.View(cw),
	}
	if fb := s.renderFeedback(cw); fb != "" {
		sections = append(sections, fb)
	}
	if s.sess.HintVisible() {
		sections = append(sections, s.renderHint(cw))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top,
		strings.Join(sections, "\n\n"))
}

// renderInfoLine shows session counters on the left and the history
// position on the right.
func (s *TrainerScreen) renderInfoLine(cw int) string {
	tally := s.sess.Tally()
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("%d/%d correct", tally.Correct, tally.Answered))

	h := s.sess.History()
	pos := fmt.Sprintf("#%d", h.Index()+1)
	if s.sess.Reviewing() {
		pos = fmt.Sprintf("reviewing %d of %d", h.Index()+1, h.Len())
	}
	streak := s.sess.Streak()
	right := theme.Muted.Render(pos) + "  " +
		lipgloss.NewStyle().Foreground(theme.Gold).Render(fmt.Sprintf("★ %d", streak.Current))
	if next := quiz.NextMilestone(streak.Current); next > 0 {
		right += theme.Muted.Render(fmt.Sprintf(" → %d", next))
	}

	gap := cw - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	line := left + strings.Repeat(" ", gap) + right
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw))
	return line + "\n" + rule
}

func (s *TrainerScreen) renderPrompt(cw int) string {
	switch it := s.sess.Current().(type) {
	case refdata.Country:
		flag := lipgloss.NewStyle().Bold(true).Render(it.Emoji())
		question := theme.Subtitle.Render("Which country does this flag belong to?")
		return components.Card(flag+"\n\n"+question, cw)

	case refdata.Language:
		sample := lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(cw - 8).
			Align(lipgloss.Center).
			Render("“" + it.Sample + "”")
		question := theme.Subtitle.Render("Which language is this?")
		return components.Card(sample+"\n\n"+question, cw)
	}

	cur := s.sess.Current()
	if cur == nil {
		return ""
	}
	return components.Card(cur.Label(), cw)
}

func (s *TrainerScreen) renderFeedback(cw int) string {
	if s.sess.Phase() != quiz.PhaseFeedback {
		return ""
	}
	fb := s.sess.Feedback()

	style := theme.Incorrect
	if fb.Correct {
		style = theme.Correct
	}
	out := lipgloss.PlaceHorizontal(cw, lipgloss.Center, style.Render(fb.Message))

	// Country trivia is the reward for answering, right or wrong.
	if c, ok := s.sess.Current().(refdata.Country); ok && len(c.Facts) > 0 {
		var facts []string
		for _, f := range c.Facts {
			facts = append(facts, "• "+f)
		}
		body := lipgloss.NewStyle().Width(cw - 4).Foreground(theme.TextDim).
			Render(strings.Join(facts, "\n"))
		out += "\n\n" + lipgloss.PlaceHorizontal(cw, lipgloss.Center, body)
	}
	return out
}

func (s *TrainerScreen) renderHint(cw int) string {
	var body string
	switch it := s.sess.Current().(type) {
	case refdata.Country:
		body = it.Tip
		if body == "" {
			body = "No tip for this flag."
		}
	case refdata.Language:
		body = fmt.Sprintf("Script: %s\n%s\nLook for: %s", it.Hint.Script, it.Hint.Feature, it.Hint.Examples)
	}
	title := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("Hint")
	return theme.HintCard.Width(cw - 2).Render(title + "\n" + body)
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Shuffling the atlas...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
