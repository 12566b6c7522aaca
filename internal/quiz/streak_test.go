package quiz

import "testing"

func TestStreak_HitAndMiss(t *testing.T) {
	var s Streak
	for i := 0; i < 7; i++ {
		s.Hit()
	}
	if s.Current != 7 || s.Best != 7 {
		t.Fatalf("after 7 hits: %+v", s)
	}

	s.Miss()
	if s.Current != 0 {
		t.Errorf("Current = %d, want 0 after miss", s.Current)
	}
	if s.Best != 7 {
		t.Errorf("Best = %d, want 7 after miss", s.Best)
	}

	s.Hit()
	if s.Best != 7 {
		t.Errorf("Best = %d, want 7 (not lowered)", s.Best)
	}
}

func TestEncouragement_Ladder(t *testing.T) {
	tests := []struct {
		streak int
		want   string
	}{
		{5, "Great streak! 5 in a row!"},
		{9, "Great streak! 5 in a row!"},
		{10, "Amazing! 10 in a row!"},
		{15, "On fire! 15 in a row!"},
		{20, "Unstoppable! 20 in a row!"},
		{25, "Legendary! 25 in a row!"},
		{40, "Legendary! 25 in a row!"},
	}
	rng := testRand(5)
	for _, tt := range tests {
		if got := Encouragement(rng, tt.streak); got != tt.want {
			t.Errorf("Encouragement(%d) = %q, want %q", tt.streak, got, tt.want)
		}
	}
}

func TestEncouragement_RandomPoolBelowFive(t *testing.T) {
	rng := testRand(5)
	pool := map[string]bool{}
	for _, m := range encouragements {
		pool[m] = true
	}
	for streak := 0; streak < 5; streak++ {
		for i := 0; i < 20; i++ {
			if msg := Encouragement(rng, streak); !pool[msg] {
				t.Fatalf("Encouragement(%d) = %q, not in the random pool", streak, msg)
			}
		}
	}
}

func TestNextMilestone(t *testing.T) {
	tests := []struct {
		current int
		want    int
	}{
		{0, 5},
		{4, 5},
		{5, 10},
		{19, 20},
		{24, 25},
		{25, 0},
	}
	for _, tt := range tests {
		if got := NextMilestone(tt.current); got != tt.want {
			t.Errorf("NextMilestone(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}
