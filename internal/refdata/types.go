package refdata

import (
	"strings"

	"github.com/abhisek/geodrill/internal/quiz"
)

// Country is a flag quiz item.
type Country struct {
	Code  string   `json:"code"`
	Name  string   `json:"name"`
	Facts []string `json:"facts,omitempty"`
	Tip   string   `json:"tip,omitempty"`
}

var _ quiz.Item = Country{}

func (c Country) Key() string   { return c.Code }
func (c Country) Label() string { return c.Name }

// Emoji renders the country's flag as a pair of regional indicator symbols.
// Codes that are not two ASCII letters render as the code itself.
func (c Country) Emoji() string {
	code := strings.ToUpper(c.Code)
	if len(code) != 2 {
		return code
	}
	var b strings.Builder
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return code
		}
		b.WriteRune(0x1F1E6 + (r - 'A'))
	}
	return b.String()
}

// LanguageHint explains how to recognise a language's writing.
type LanguageHint struct {
	Script   string `json:"script"`
	Feature  string `json:"feature"`
	Examples string `json:"examples"`
}

// Language is a language quiz item.
type Language struct {
	Code   string       `json:"code"`
	Name   string       `json:"name"`
	Sample string       `json:"sample"`
	Hint   LanguageHint `json:"hint"`
}

var _ quiz.Item = Language{}

func (l Language) Key() string   { return l.Code }
func (l Language) Label() string { return l.Name }
