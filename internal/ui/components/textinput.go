package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with GeoDrill styling and an optional
// validator that is checked on Submit.
type TextInput struct {
	Model     textinput.Model
	Validate  func(string) error
	submitted bool
	err       error
}

// NewTextInput creates a new styled, focused text input.
func NewTextInput(placeholder string, charLimit int, validate func(string) error) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()

	if charLimit > 0 {
		ti.CharLimit = charLimit
	}

	return TextInput{
		Model:    ti,
		Validate: validate,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages. Editing clears a previous validation result.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.submitted = false
		t.err = nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input followed by the validation verdict.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.err == nil {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.err.Error())
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit runs the validator and remembers the result for View.
func (t *TextInput) Submit() error {
	t.submitted = true
	t.err = nil
	if t.Validate != nil {
		t.err = t.Validate(t.Model.Value())
	}
	return t.err
}
