package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/geodrill/internal/progress"
	"github.com/abhisek/geodrill/internal/quiz"
)

// ProgressRepo implements progress.Repo on SQLite using ent's SQL builder.
type ProgressRepo struct {
	drv *entsql.Driver
	now func() time.Time
}

var _ progress.Repo = (*ProgressRepo)(nil)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *ProgressRepo) Score(ctx context.Context, identity string, variant quiz.Variant) (*progress.Score, error) {
	query, args := builder().
		Select(colScore, colBestStreak, colUpdatedAt).
		From(builder().Table(tableScores)).
		Where(entsql.And(
			entsql.EQ(colIdentity, identity),
			entsql.EQ(colVariant, string(variant)),
		)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query score: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query score: %w", err)
		}
		return nil, nil
	}
	sc := &progress.Score{Identity: identity, Variant: variant}
	if err := rows.Scan(&sc.Score, &sc.BestStreak, &sc.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan score: %w", err)
	}
	return sc, nil
}

// UpsertScore stores the current streak. The stored best streak never
// goes down, whatever order concurrent writes land in.
func (r *ProgressRepo) UpsertScore(ctx context.Context, identity string, variant quiz.Variant, score, bestStreak int) error {
	query, args := builder().
		Insert(tableScores).
		Columns(colIdentity, colVariant, colScore, colBestStreak, colUpdatedAt).
		Values(identity, string(variant), score, bestStreak, r.now()).
		OnConflict(
			entsql.ConflictColumns(colIdentity, colVariant),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded(colScore)
				u.Set(colBestStreak, entsql.Expr(fmt.Sprintf("MAX(%s, excluded.%s)", colBestStreak, colBestStreak)))
				u.SetExcluded(colUpdatedAt)
			}),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

func (r *ProgressRepo) UpsertProgress(ctx context.Context, identity string, variant quiz.Variant, itemKey string, correct bool) error {
	var right, wrong int
	if correct {
		right = 1
	} else {
		wrong = 1
	}

	query, args := builder().
		Insert(tableProgress).
		Columns(colIdentity, colVariant, colItemKey, colCorrectCount, colWrongCount, colLastAttemptAt).
		Values(identity, string(variant), itemKey, right, wrong, r.now()).
		OnConflict(
			entsql.ConflictColumns(colIdentity, colVariant, colItemKey),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add(colCorrectCount, right)
				u.Add(colWrongCount, wrong)
				u.SetExcluded(colLastAttemptAt)
			}),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *ProgressRepo) RecordAttempt(ctx context.Context, rec progress.AttemptRecord) error {
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now()
	}

	query, args := builder().
		Insert(tableAttempts).
		Columns(colSessionID, colIdentity, colVariant, colItemKey, colCorrect, colCorrectAnswer, colUserAnswer, colCreatedAt).
		Values(rec.SessionID, rec.Identity, string(rec.Variant), rec.ItemKey, rec.Correct, rec.CorrectAnswer, rec.UserAnswer, createdAt.UTC()).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *ProgressRepo) Scores(ctx context.Context, identity string) ([]progress.Score, error) {
	query, args := builder().
		Select(colVariant, colScore, colBestStreak, colUpdatedAt).
		From(builder().Table(tableScores)).
		Where(entsql.EQ(colIdentity, identity)).
		OrderBy(colVariant).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []progress.Score
	for rows.Next() {
		sc := progress.Score{Identity: identity}
		var variant string
		if err := rows.Scan(&variant, &sc.Score, &sc.BestStreak, &sc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		sc.Variant = quiz.Variant(variant)
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}

func (r *ProgressRepo) ItemProgress(ctx context.Context, identity string, variant quiz.Variant) ([]progress.ItemProgress, error) {
	query, args := builder().
		Select(colItemKey, colCorrectCount, colWrongCount, colLastAttemptAt).
		From(builder().Table(tableProgress)).
		Where(entsql.And(
			entsql.EQ(colIdentity, identity),
			entsql.EQ(colVariant, string(variant)),
		)).
		OrderBy(colItemKey).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []progress.ItemProgress
	for rows.Next() {
		p := progress.ItemProgress{Variant: variant}
		if err := rows.Scan(&p.ItemKey, &p.CorrectCount, &p.WrongCount, &p.LastAttemptAt); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate progress: %w", err)
	}
	return out, nil
}

func (r *ProgressRepo) RecentAttempts(ctx context.Context, identity string, limit int) ([]progress.AttemptRecord, error) {
	sel := builder().
		Select(colSessionID, colVariant, colItemKey, colCorrect, colCorrectAnswer, colUserAnswer, colCreatedAt).
		From(builder().Table(tableAttempts)).
		Where(entsql.EQ(colIdentity, identity)).
		OrderBy(entsql.Desc(colID))
	if limit > 0 {
		sel = sel.Limit(limit)
	}
	query, args := sel.Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []progress.AttemptRecord
	for rows.Next() {
		a := progress.AttemptRecord{Identity: identity}
		var variant string
		if err := rows.Scan(&a.SessionID, &variant, &a.ItemKey, &a.Correct, &a.CorrectAnswer, &a.UserAnswer, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Variant = quiz.Variant(variant)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *ProgressRepo) Reset(ctx context.Context, identity string) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin reset: %w", err)
	}

	for _, table := range []string{tableScores, tableProgress, tableAttempts} {
		query, args := builder().
			Delete(table).
			Where(entsql.EQ(colIdentity, identity)).
			Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return fmt.Errorf("reset %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reset: %w", err)
	}
	return nil
}
