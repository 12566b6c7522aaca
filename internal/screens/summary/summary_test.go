package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/geodrill/internal/quiz"
	"github.com/abhisek/geodrill/internal/router"
)

func testResult() Result {
	return Result{
		Variant:  quiz.Flags,
		Duration: 3*time.Minute + 7*time.Second,
		Tally:    quiz.Tally{Answered: 14, Correct: 11},
		Streak:   quiz.Streak{Current: 4, Best: 9},
		Missed:   []string{"Chad", "Romania"},
	}
}

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testResult())
	if s.Title() != "Flag Trainer Summary" {
		t.Errorf("Title = %q", s.Title())
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	s := New(testResult())
	view := s.View(100, 30)

	for _, want := range []string{"3:07", "Answered: 14", "Correct: 11", "79%", "best 9", "Chad", "Romania"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_Headline(t *testing.T) {
	tests := []struct {
		tally quiz.Tally
		want  string
	}{
		{quiz.Tally{}, "No answers"},
		{quiz.Tally{Answered: 5, Correct: 5}, "Flawless"},
		{quiz.Tally{Answered: 5, Correct: 4}, "Great run"},
		{quiz.Tally{Answered: 5, Correct: 1}, "Run complete"},
	}
	for _, tt := range tests {
		if got := headline(Result{Tally: tt.tally}); !strings.Contains(got, tt.want) {
			t.Errorf("headline(%+v) = %q, want %q", tt.tally, got, tt.want)
		}
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	s := New(testResult())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("enter should pop back home")
	}
}
