package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vancomm/minesweeper/internal/stats"
)

type SQLite struct {
	mu sync.Mutex
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database file at path and makes
// sure the game_record table exists.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to open sqlite db: %w", err)
	}
	s, err := NewSQLite(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(db *sql.DB) (*SQLite, error) {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS game_record (
	game_id		TEXT PRIMARY KEY,
	outcome		TEXT NOT NULL CHECK (outcome IN ('won', 'lost', 'abandoned')),
	width		INTEGER NOT NULL,
	height		INTEGER NOT NULL,
	mine_count	INTEGER NOT NULL,
	revealed	INTEGER NOT NULL,
	duration_ms	INTEGER NOT NULL,
	finished_at	INTEGER NOT NULL
);`)
	if err != nil {
		return nil, fmt.Errorf("unable to create game_record table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) RecordGame(ctx context.Context, rec stats.GameRecord) error {
	if err := validate(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
INSERT INTO game_record (
	game_id, outcome, width, height, mine_count, revealed, duration_ms, finished_at
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(game_id) DO NOTHING;`,
		rec.GameID.String(),
		string(rec.Outcome),
		rec.Width,
		rec.Height,
		rec.MineCount,
		rec.Revealed,
		rec.Duration.Milliseconds(),
		rec.FinishedAt.UnixMilli(),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanGameRecord(row rowScanner) (*stats.GameRecord, error) {
	var (
		id         string
		outcome    string
		durationMs int64
		finishedAt int64
		rec        stats.GameRecord
	)
	err := row.Scan(
		&id, &outcome, &rec.Width, &rec.Height, &rec.MineCount, &rec.Revealed,
		&durationMs, &finishedAt,
	)
	if err != nil {
		return nil, err
	}
	if rec.GameID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("stored game id %q: %w", id, err)
	}
	if rec.Outcome, err = stats.ParseOutcome(outcome); err != nil {
		return nil, err
	}
	rec.Duration = time.Duration(durationMs) * time.Millisecond
	rec.FinishedAt = time.UnixMilli(finishedAt).UTC()
	return &rec, nil
}

const selectGameRecord = `
SELECT game_id, outcome, width, height, mine_count, revealed, duration_ms, finished_at
FROM game_record`

func (s *SQLite) Game(ctx context.Context, id uuid.UUID) (*stats.GameRecord, error) {
	row := s.db.QueryRowContext(ctx, selectGameRecord+` WHERE game_id = ?;`, id.String())
	rec, err := scanGameRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rec, err
}

func (s *SQLite) Games(ctx context.Context) ([]stats.GameRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectGameRecord+` ORDER BY finished_at, rowid;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]stats.GameRecord, 0)
	for rows.Next() {
		rec, err := scanGameRecord(rows)
		if err != nil {
			return nil, err
		}
		games = append(games, *rec)
	}
	return games, rows.Err()
}

func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM game_record;`).Scan(&n)
	return n, err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
