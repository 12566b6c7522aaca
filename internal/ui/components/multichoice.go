package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/ui/theme"
)

// ChoiceState controls how one option is highlighted.
type ChoiceState int

const (
	ChoicePlain ChoiceState = iota
	ChoiceRight
	ChoiceWrong
	ChoiceFaded
)

// ChoiceMsg is emitted when the player picks an option. Seq is the
// selector's Seq at the time of the key press.
type ChoiceMsg struct {
	Index int
	Seq   int
}

// MultiChoice is a numbered multiple-choice selector. Options are picked
// with their number key, or with the arrows and Enter.
type MultiChoice struct {
	Options []string
	States  []ChoiceState
	Cursor  int
	Locked  bool // no input while feedback is showing

	// Seq identifies the option set. Owners bump it when the options
	// change and drop ChoiceMsgs carrying an older value.
	Seq int
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{
		Options: options,
		States:  make([]ChoiceState, len(options)),
	}
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Locked || len(m.Options) == 0 {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space":
		return m, m.pick(m.Cursor)
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Cursor = n - 1
			return m, m.pick(m.Cursor)
		}
	}

	return m, nil
}

func (m MultiChoice) pick(i int) tea.Cmd {
	seq := m.Seq
	return func() tea.Msg { return ChoiceMsg{Index: i, Seq: seq} }
}

// View renders the options as a left-aligned block centred in width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.Locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		state := ChoicePlain
		if i < len(m.States) {
			state = m.States[i]
		}

		var style lipgloss.Style
		switch {
		case state == ChoiceRight:
			style = theme.Correct
			line += "  ✓"
		case state == ChoiceWrong:
			style = theme.Incorrect
			line += "  ✗"
		case state == ChoiceFaded || m.Locked:
			style = theme.Muted
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		if i < len(m.Options)-1 {
			b.WriteString("\n")
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}
