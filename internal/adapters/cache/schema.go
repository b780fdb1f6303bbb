package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// InitSchema creates the schedule_cache table. The statements are valid for
// both Postgres and SQLite.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createScheduleCacheQuery := `
	CREATE TABLE IF NOT EXISTS schedule_cache (
        cache_key TEXT PRIMARY KEY,
        body TEXT NOT NULL,
        expires_at BIGINT NOT NULL DEFAULT 0
    );
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_schedule_cache_expires_at
    ON schedule_cache(expires_at);
	`

	for _, stmt := range []string{createScheduleCacheQuery, createIndexQuery} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit: %w", err)
	}
	return nil
}

// expiry returns the unix second after which an entry written at now is stale.
// Zero means the entry never expires.
func expiry(now func() int64, ttlSeconds int64) int64 {
	if ttlSeconds <= 0 {
		return 0
	}
	return now() + ttlSeconds
}
