package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// StatsDB records play activity per user (the Telegram adapter's
// scoreboard). It shares the SQLite handle with the corpus store.
type StatsDB struct {
	db *sql.DB
}

const statsSchema = `
CREATE TABLE IF NOT EXISTS play_activity (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL,
	k          INTEGER NOT NULL,
	target     INTEGER NOT NULL,
	expression TEXT    NOT NULL,
	win        BOOLEAN NOT NULL,
	timestamp  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_play_activity_user ON play_activity(user_id);
`

// NewStatsDB initializes the activity table on db.
func NewStatsDB(db *sql.DB) (*StatsDB, error) {
	if _, err := db.Exec(statsSchema); err != nil {
		return nil, fmt.Errorf("stats: schema: %w", err)
	}
	return &StatsDB{db: db}, nil
}

// RecordAttempt stores one submitted expression and its outcome.
func (s *StatsDB) RecordAttempt(ctx context.Context, userID int64, k, target int, expression string, win bool) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO play_activity (user_id, k, target, expression, win, timestamp) VALUES (?,?,?,?,?,?)",
		userID, k, target, expression, win, time.Now().Unix())
	return err
}

// UserStats returns the win/loss counts for a user.
func (s *StatsDB) UserStats(ctx context.Context, userID int64) (wins, losses int, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM play_activity WHERE user_id = ? AND win = 1", userID).Scan(&wins)
	if err != nil {
		return 0, 0, err
	}
	err = s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM play_activity WHERE user_id = ? AND win = 0", userID).Scan(&losses)
	return wins, losses, err
}
