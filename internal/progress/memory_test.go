package progress

import (
	"context"
	"testing"

	"github.com/abhisek/geodrill/internal/quiz"
)

func TestMemoryRepo_IsolatesIdentities(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	_ = repo.UpsertScore(ctx, "ada", quiz.Flags, 1, 1)
	_ = repo.UpsertScore(ctx, "guest", quiz.Languages, 2, 5)
	_ = repo.RecordAttempt(ctx, AttemptRecord{Identity: "ada", Variant: quiz.Flags, ItemKey: "FR"})
	_ = repo.RecordAttempt(ctx, AttemptRecord{Identity: "guest", Variant: quiz.Flags, ItemKey: "DE"})

	scores, _ := repo.Scores(ctx, "ada")
	if len(scores) != 1 || scores[0].Variant != quiz.Flags {
		t.Errorf("scores = %+v", scores)
	}

	if err := repo.Reset(ctx, "ada"); err != nil {
		t.Fatal(err)
	}
	if sc, _ := repo.Score(ctx, "ada", quiz.Flags); sc != nil {
		t.Error("score survived reset")
	}
	if got, _ := repo.RecentAttempts(ctx, "ada", 0); len(got) != 0 {
		t.Errorf("attempts survived reset: %+v", got)
	}
	if got, _ := repo.RecentAttempts(ctx, "guest", 0); len(got) != 1 {
		t.Error("reset removed another identity's attempts")
	}
}

func TestMemoryRepo_RecentAttemptsLimit(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	for _, k := range []string{"a", "b", "c"} {
		_ = repo.RecordAttempt(ctx, AttemptRecord{Identity: "ada", ItemKey: k})
	}

	got, _ := repo.RecentAttempts(ctx, "ada", 2)
	if len(got) != 2 || got[0].ItemKey != "c" || got[1].ItemKey != "b" {
		t.Errorf("RecentAttempts = %+v, want c then b", got)
	}
}

func TestItemProgressAccuracy(t *testing.T) {
	tests := []struct {
		p    ItemProgress
		want float64
	}{
		{ItemProgress{}, 0},
		{ItemProgress{CorrectCount: 3, WrongCount: 1}, 0.75},
		{ItemProgress{WrongCount: 2}, 0},
	}
	for _, tt := range tests {
		if got := tt.p.Accuracy(); got != tt.want {
			t.Errorf("Accuracy(%+v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestMemoryRepo_BestStreakNeverDrops(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()
	_ = repo.UpsertScore(ctx, "guest", quiz.Flags, 8, 8)
	_ = repo.UpsertScore(ctx, "guest", quiz.Flags, 2, 5)

	sc, _ := repo.Score(ctx, "guest", quiz.Flags)
	if sc == nil || sc.Score != 2 || sc.BestStreak != 8 {
		t.Errorf("score = %+v, want current 2 best 8", sc)
	}
}
