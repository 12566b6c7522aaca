package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/geodrill/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Plain globe
	MascotCelebrating                      // Gold, with laurels: a milestone streak on record
	MascotCurious                          // Question mark: playing as guest
)

const mascotIdle = ` .-'''-.
/ _( )_ \
|(_ / _)|
\  \/ / /
 '-...-'`

const mascotCelebrating = `\ .-'''-. /
 / ★( )★ \
 |(_ / _)|
 \  \/ / /
  '-...-'
   ╚═══╝`

const mascotCurious = ` .-'''-.
/ _( )_ \ ?
|(_ / _)|
\  \/ / /
 '-...-'`

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	v := MascotIdle
	if len(variant) > 0 {
		v = variant[0]
	}

	var art string
	var fg = theme.Sky

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Gold
	case MascotCurious:
		art = mascotCurious
		fg = theme.Accent
	default:
		art = mascotIdle
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
