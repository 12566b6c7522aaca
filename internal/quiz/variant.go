package quiz

import (
	"fmt"
	"strings"
	"time"
)

// Variant selects one of the two quiz modes.
type Variant string

const (
	Flags     Variant = "flags"
	Languages Variant = "languages"
)

// Variants lists every variant in menu order.
var Variants = []Variant{Flags, Languages}

// ParseVariant accepts the variant name and a few common aliases.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "flags", "flag", "f":
		return Flags, nil
	case "languages", "language", "lang", "l":
		return Languages, nil
	}
	return "", fmt.Errorf("unknown variant %q (want flags or languages)", s)
}

// Width is the number of options shown per question.
func (v Variant) Width() int {
	if v == Languages {
		return 4
	}
	return 5
}

// Delay is how long answer feedback stays on screen before the next item.
func (v Variant) Delay(correct bool) time.Duration {
	switch {
	case v == Languages && correct:
		return 1500 * time.Millisecond
	case v == Languages:
		return 2500 * time.Millisecond
	case correct:
		return 1000 * time.Millisecond
	default:
		return 2000 * time.Millisecond
	}
}

// RecordsAnswerText reports whether attempts carry the correct and chosen labels.
func (v Variant) RecordsAnswerText() bool {
	return v == Flags
}

// Title returns the trainer name shown in the UI.
func (v Variant) Title() string {
	if v == Languages {
		return "Language Trainer"
	}
	return "Flag Trainer"
}

func (v Variant) String() string {
	return string(v)
}
