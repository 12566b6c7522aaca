package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abhisek/geodrill/internal/quiz"
)

// Recorder turns quiz outcomes into gateway writes. Writes are not retried
// and failures never undo the in-memory state that produced them: Record
// logs every failure and returns them joined so the caller may ignore it.
type Recorder struct {
	gw  Gateway
	log *slog.Logger
}

// NewRecorder creates a Recorder. A nil logger uses slog.Default().
func NewRecorder(gw Gateway, log *slog.Logger) *Recorder {
	if log == nil {
		log = slog.Default()
	}
	return &Recorder{gw: gw, log: log}
}

// Record persists the attempt, the item progress and the streak of out.
// All three writes are attempted even if one fails.
func (r *Recorder) Record(ctx context.Context, out quiz.Outcome) error {
	if r == nil || r.gw == nil {
		return nil
	}
	a := out.Attempt
	attrs := []any{
		"identity", a.Identity,
		"variant", a.Variant,
		"item", a.ItemKey,
	}

	var errs []error

	err := r.gw.RecordAttempt(ctx, AttemptRecord{
		SessionID:     a.SessionID,
		Identity:      a.Identity,
		Variant:       a.Variant,
		ItemKey:       a.ItemKey,
		Correct:       a.Correct,
		CorrectAnswer: a.CorrectAnswer,
		UserAnswer:    a.UserAnswer,
		CreatedAt:     a.At,
	})
	if err != nil {
		r.log.Warn("record attempt failed", append(attrs, "error", err)...)
		errs = append(errs, fmt.Errorf("record attempt: %w", err))
	}

	if err := r.gw.UpsertProgress(ctx, a.Identity, a.Variant, a.ItemKey, a.Correct); err != nil {
		r.log.Warn("update progress failed", append(attrs, "error", err)...)
		errs = append(errs, fmt.Errorf("update progress: %w", err))
	}

	if err := r.gw.UpsertScore(ctx, a.Identity, a.Variant, out.Streak.Current, out.Streak.Best); err != nil {
		r.log.Warn("update score failed", append(attrs, "error", err)...)
		errs = append(errs, fmt.Errorf("update score: %w", err))
	}

	return errors.Join(errs...)
}

// LoadStreak reads the stored streak for identity and variant. Failures are
// logged and yield a zero streak so a trainer can always start.
func (r *Recorder) LoadStreak(ctx context.Context, identity string, variant quiz.Variant) quiz.Streak {
	if r == nil || r.gw == nil {
		return quiz.Streak{}
	}
	sc, err := r.gw.Score(ctx, identity, variant)
	if err != nil {
		r.log.Warn("load score failed", "identity", identity, "variant", variant, "error", err)
		return quiz.Streak{}
	}
	if sc == nil {
		return quiz.Streak{}
	}
	return quiz.Streak{Current: sc.Score, Best: sc.BestStreak}
}
