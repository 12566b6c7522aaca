// Package progress defines the persistence gateway used by quiz trainers and
// the policy for writing to it.
package progress

import (
	"context"
	"time"

	"github.com/abhisek/geodrill/internal/quiz"
)

// Score is the stored streak state for one identity and variant.
type Score struct {
	Identity   string
	Variant    quiz.Variant
	Score      int // current streak at the last answer
	BestStreak int
	UpdatedAt  time.Time
}

// AttemptRecord is one persisted answer.
type AttemptRecord struct {
	SessionID     string
	Identity      string
	Variant       quiz.Variant
	ItemKey       string
	Correct       bool
	CorrectAnswer string
	UserAnswer    string
	CreatedAt     time.Time
}

// ItemProgress accumulates answers for a single item.
type ItemProgress struct {
	Variant       quiz.Variant
	ItemKey       string
	CorrectCount  int
	WrongCount    int
	LastAttemptAt time.Time
}

// Attempts is the total number of answers recorded for the item.
func (p ItemProgress) Attempts() int {
	return p.CorrectCount + p.WrongCount
}

// Accuracy is the fraction of correct answers, 0 when never attempted.
func (p ItemProgress) Accuracy() float64 {
	n := p.Attempts()
	if n == 0 {
		return 0
	}
	return float64(p.CorrectCount) / float64(n)
}

// Gateway is the write side used by a running trainer. Every method may fail;
// callers decide whether failures matter.
type Gateway interface {
	// Score returns the stored score, or nil if none exists.
	Score(ctx context.Context, identity string, variant quiz.Variant) (*Score, error)

	// UpsertScore stores the current and best streak.
	UpsertScore(ctx context.Context, identity string, variant quiz.Variant, score, bestStreak int) error

	// UpsertProgress bumps the item's correct or wrong counter and its last attempt time.
	UpsertProgress(ctx context.Context, identity string, variant quiz.Variant, itemKey string, correct bool) error

	// RecordAttempt appends one answer to the attempt log.
	RecordAttempt(ctx context.Context, rec AttemptRecord) error
}

// Reader is the read side used by the profile view and the stats command.
type Reader interface {
	// Scores returns every stored score for identity.
	Scores(ctx context.Context, identity string) ([]Score, error)

	// ItemProgress returns per-item counters for identity and variant.
	ItemProgress(ctx context.Context, identity string, variant quiz.Variant) ([]ItemProgress, error)

	// RecentAttempts returns the newest attempts first. limit <= 0 means all.
	RecentAttempts(ctx context.Context, identity string, limit int) ([]AttemptRecord, error)

	// Reset deletes every row stored for identity.
	Reset(ctx context.Context, identity string) error
}

// Repo is a backend that serves both sides.
type Repo interface {
	Gateway
	Reader
}
