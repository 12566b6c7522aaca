package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Table and column names shared by the schema and the query builders.
const (
	tableScores   = "scores"
	tableProgress = "progress"
	tableAttempts = "attempts"

	colIdentity      = "identity"
	colVariant       = "variant"
	colScore         = "score"
	colBestStreak    = "best_streak"
	colUpdatedAt     = "updated_at"
	colItemKey       = "item_key"
	colCorrectCount  = "correct_count"
	colWrongCount    = "wrong_count"
	colLastAttemptAt = "last_attempt_at"
	colID            = "id"
	colSessionID     = "session_id"
	colCorrect       = "correct"
	colCorrectAnswer = "correct_answer"
	colUserAnswer    = "user_answer"
	colCreatedAt     = "created_at"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scores (
		identity TEXT NOT NULL,
		variant TEXT NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		best_streak INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME NOT NULL,
		PRIMARY KEY (identity, variant)
	)`,
	`CREATE TABLE IF NOT EXISTS progress (
		identity TEXT NOT NULL,
		variant TEXT NOT NULL,
		item_key TEXT NOT NULL,
		correct_count INTEGER NOT NULL DEFAULT 0,
		wrong_count INTEGER NOT NULL DEFAULT 0,
		last_attempt_at DATETIME NOT NULL,
		PRIMARY KEY (identity, variant, item_key)
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		identity TEXT NOT NULL,
		variant TEXT NOT NULL,
		item_key TEXT NOT NULL,
		correct INTEGER NOT NULL,
		correct_answer TEXT NOT NULL DEFAULT '',
		user_answer TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_identity_created ON attempts(identity, created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_attempts_session ON attempts(session_id)`,
}

// migrate creates any missing tables and indexes.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
