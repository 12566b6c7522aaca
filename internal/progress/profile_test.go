package progress

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/geodrill/internal/quiz"
)

func TestHardest(t *testing.T) {
	items := []ItemProgress{
		{ItemKey: "FR", CorrectCount: 4},
		{ItemKey: "TD", CorrectCount: 1, WrongCount: 3},
		{ItemKey: "RO", WrongCount: 2},
		{ItemKey: "MC", WrongCount: 5},
		{ItemKey: "NZ", CorrectCount: 1, WrongCount: 1},
	}

	got := Hardest(items, 3)

	want := []string{"MC", "RO", "TD"}
	if len(got) != len(want) {
		t.Fatalf("Hardest = %+v, want %v", got, want)
	}
	for i, k := range want {
		if got[i].ItemKey != k {
			t.Errorf("Hardest[%d] = %s, want %s", i, got[i].ItemKey, k)
		}
	}
}

func TestHardest_SkipsNeverMissed(t *testing.T) {
	got := Hardest([]ItemProgress{{ItemKey: "FR", CorrectCount: 2}}, 0)
	if len(got) != 0 {
		t.Errorf("expected no hard items, got %+v", got)
	}
}

func TestLoadProfile(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_ = repo.UpsertScore(ctx, "ada", quiz.Flags, 2, 6)
	_ = repo.UpsertProgress(ctx, "ada", quiz.Flags, "FR", true)
	_ = repo.UpsertProgress(ctx, "ada", quiz.Flags, "TD", false)
	_ = repo.UpsertProgress(ctx, "ada", quiz.Languages, "fi", true)
	for _, k := range []string{"FR", "TD", "fi"} {
		_ = repo.RecordAttempt(ctx, AttemptRecord{Identity: "ada", ItemKey: k})
	}

	p, err := LoadProfile(ctx, repo, "ada", 2)
	if err != nil {
		t.Fatal(err)
	}

	if p.Scores[quiz.Flags].BestStreak != 6 {
		t.Errorf("flag best = %d, want 6", p.Scores[quiz.Flags].BestStreak)
	}
	if c, n := p.Totals(quiz.Flags); c != 1 || n != 2 {
		t.Errorf("flag totals = %d/%d, want 1/2", c, n)
	}
	if len(p.Recent) != 2 {
		t.Errorf("recent = %d, want 2", len(p.Recent))
	}
	if h := p.Hardest(quiz.Flags, 5); len(h) != 1 || h[0].ItemKey != "TD" {
		t.Errorf("hardest = %+v", h)
	}
	if p.Empty() {
		t.Error("profile should not be empty")
	}
}

func TestLoadProfile_Empty(t *testing.T) {
	p, err := LoadProfile(context.Background(), NewMemoryRepo(), "nobody", 10)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Empty() {
		t.Errorf("expected empty profile, got %+v", p)
	}
}

type failingReader struct{ *MemoryRepo }

func (failingReader) Scores(context.Context, string) ([]Score, error) {
	return nil, errors.New("offline")
}

func TestLoadProfile_WrapsErrors(t *testing.T) {
	r := failingReader{MemoryRepo: NewMemoryRepo()}
	_, err := LoadProfile(context.Background(), r, "ada", 1)
	if err == nil || err.Error() != "load scores: offline" {
		t.Errorf("err = %v", err)
	}
}
