package layout

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
)

func TestSizeThresholds(t *testing.T) {
	tests := []struct {
		w, h          int
		small, cw, ch bool
	}{
		{80, 24, false, true, true},
		{79, 24, true, true, true},
		{120, 40, false, false, false},
		{100, 30, false, false, false},
	}
	for _, tt := range tests {
		if got := IsTooSmall(tt.w, tt.h); got != tt.small {
			t.Errorf("IsTooSmall(%d, %d) = %v", tt.w, tt.h, got)
		}
		if got := IsCompactWidth(tt.w); got != tt.cw {
			t.Errorf("IsCompactWidth(%d) = %v", tt.w, got)
		}
		if got := IsCompactHeight(tt.h); got != tt.ch {
			t.Errorf("IsCompactHeight(%d) = %v", tt.h, got)
		}
	}
}

func TestContentHeight(t *testing.T) {
	if got := ContentHeight(30); got != 24 {
		t.Errorf("ContentHeight(30) = %d", got)
	}
	if got := ContentHeight(4); got != 0 {
		t.Errorf("ContentHeight(4) = %d", got)
	}
}

func TestRenderHeader(t *testing.T) {
	h := RenderHeader("Flag Trainer", HeaderInfo{Player: "ada", Streak: 3, Best: 7, HasStreak: true}, 100)
	for _, want := range []string{"GeoDrill", "Flag Trainer", "@ ada", "★ 3", "(best 7)"} {
		if !strings.Contains(h, want) {
			t.Errorf("header missing %q", want)
		}
	}

	h = RenderHeader("Home", HeaderInfo{Player: "guest"}, 100)
	if strings.Contains(h, "★") {
		t.Error("header shows a streak without one")
	}
}

func TestRenderFrameFillsHeight(t *testing.T) {
	header := RenderHeader("Home", HeaderInfo{Player: "ada"}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Esc", Description: "Back"}}, 80)
	frame := RenderFrame(header, "body", footer, 80, 24)
	if got := lipgloss.Height(frame); got != 24 {
		t.Errorf("frame height = %d, want 24", got)
	}
	if !strings.Contains(frame, "Esc") || !strings.Contains(frame, "Back") {
		t.Error("footer hint missing")
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	msg := RenderMinSizeMessage(60, 20)
	if !strings.Contains(msg, "Current: 60 x 20") {
		t.Errorf("message = %q", msg)
	}
}
