package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/minesweeper/internal/stats"
)

type Postgres struct {
	logger *slog.Logger
	db     *pgxpool.Pool
}

// NewPostgres expects the schema in [Migrations] to be applied already.
func NewPostgres(logger *slog.Logger, db *pgxpool.Pool) *Postgres {
	return &Postgres{logger: logger, db: db}
}

type gameRecordRow struct {
	GameID     uuid.UUID `db:"game_id"`
	Outcome    string    `db:"outcome"`
	Width      int       `db:"width"`
	Height     int       `db:"height"`
	MineCount  int       `db:"mine_count"`
	Revealed   int       `db:"revealed"`
	DurationMs int64     `db:"duration_ms"`
	FinishedAt time.Time `db:"finished_at"`
}

func (r gameRecordRow) record() (*stats.GameRecord, error) {
	outcome, err := stats.ParseOutcome(r.Outcome)
	if err != nil {
		return nil, err
	}
	return &stats.GameRecord{
		GameID:     r.GameID,
		Outcome:    outcome,
		Width:      r.Width,
		Height:     r.Height,
		MineCount:  r.MineCount,
		Revealed:   r.Revealed,
		Duration:   time.Duration(r.DurationMs) * time.Millisecond,
		FinishedAt: r.FinishedAt.UTC(),
	}, nil
}

func (p *Postgres) RecordGame(ctx context.Context, rec stats.GameRecord) error {
	if err := validate(rec); err != nil {
		return err
	}

	_, err := p.db.Exec(ctx, `
		INSERT INTO game_record (
			game_id, outcome, width, height, mine_count, revealed, duration_ms, finished_at
		)
		VALUES (
			@game_id, @outcome, @width, @height, @mine_count, @revealed, @duration_ms, @finished_at
		);`,
		pgx.NamedArgs{
			"game_id":     rec.GameID,
			"outcome":     string(rec.Outcome),
			"width":       rec.Width,
			"height":      rec.Height,
			"mine_count":  rec.MineCount,
			"revealed":    rec.Revealed,
			"duration_ms": rec.Duration.Milliseconds(),
			"finished_at": rec.FinishedAt,
		})

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgerrcode.UniqueViolation {
			p.logger.Debug("game already recorded", slog.String("id", rec.GameID.String()))
			return nil
		}
		if pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
			return fmt.Errorf("%w: %s", ErrInvalidRecord, pgErr.Message)
		}
	}
	return err
}

const selectGameRecordPg = `
	SELECT game_id, outcome, width, height, mine_count, revealed, duration_ms, finished_at
	FROM game_record`

func (p *Postgres) Game(ctx context.Context, id uuid.UUID) (*stats.GameRecord, error) {
	rows, _ := p.db.Query(ctx, selectGameRecordPg+" WHERE game_id = $1;", id)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameRecordRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.record()
}

func (p *Postgres) Games(ctx context.Context) ([]stats.GameRecord, error) {
	rows, _ := p.db.Query(ctx, selectGameRecordPg+" ORDER BY finished_at;")
	collected, err := pgx.CollectRows(rows, pgx.RowToStructByName[gameRecordRow])
	if err != nil {
		return nil, err
	}
	games := make([]stats.GameRecord, 0, len(collected))
	for _, row := range collected {
		rec, err := row.record()
		if err != nil {
			return nil, err
		}
		games = append(games, *rec)
	}
	return games, nil
}

func (p *Postgres) Count(ctx context.Context) (int, error) {
	var n int
	err := p.db.QueryRow(ctx, "SELECT count(*) FROM game_record;").Scan(&n)
	return n, err
}

func (p *Postgres) Close() error {
	p.db.Close()
	return nil
}
