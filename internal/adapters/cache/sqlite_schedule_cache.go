package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"vrp-client/internal/platform/obs"
	"vrp-client/internal/ports"
)

// SQLite backed cache of raw schedule responses.
// Keys are expected to be request fingerprints computed by the caller.
type SqliteScheduleCache struct {
	DB  *sql.DB
	TTL time.Duration

	now func() int64
}

func NewSqliteScheduleCache(db *sql.DB, ttl time.Duration) *SqliteScheduleCache {
	return &SqliteScheduleCache{DB: db, TTL: ttl, now: unixNow}
}

func (s *SqliteScheduleCache) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "schedule.cache.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("schedule cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get schedule cache: key must not be empty")
	}

	q := `
	SELECT body
    FROM schedule_cache
    WHERE cache_key = ?
        AND (expires_at = 0 OR expires_at > ?);
	`

	var body string
	err = s.DB.QueryRowContext(ctx, q, key, s.now()).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get schedule cache: query schedule_cache table: %w", err)
	}

	return []byte(body), true, nil
}

func (s *SqliteScheduleCache) Put(ctx context.Context, key string, body []byte) error {
	if s.DB == nil {
		return errors.New("schedule cache: db is nil")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("insert schedule cache: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO schedule_cache (
        cache_key,
        body,
        expires_at
    )
    VALUES (?, ?, ?)
	`

	exp := expiry(s.now, int64(s.TTL/time.Second))
	if _, err := s.DB.ExecContext(ctx, q, key, string(body), exp); err != nil {
		return fmt.Errorf("insert schedule cache key=%q: %w", key, err)
	}
	return nil
}

// Purge deletes expired entries and reports how many were removed.
func (s *SqliteScheduleCache) Purge(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, errors.New("schedule cache: db is nil")
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM schedule_cache WHERE expires_at <> 0 AND expires_at <= ?;`, s.now())
	if err != nil {
		return 0, fmt.Errorf("purge schedule cache: %w", err)
	}
	return res.RowsAffected()
}

var _ ports.ScheduleCache = (*SqliteScheduleCache)(nil)
