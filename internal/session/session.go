// Package session runs one game at a time on behalf of a presentation layer:
// it owns the current game, the elapsed-time counter and the lifetime
// statistics, and it restarts games on request.
package session

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/stats"
)

type Params struct {
	Width, Height, MineCount int
}

func DefaultParams() Params {
	return Params{
		Width:     mines.DefaultWidth,
		Height:    mines.DefaultHeight,
		MineCount: mines.DefaultMineCount,
	}
}

// Turn is what a presentation layer needs after a reveal: the uncovered cells,
// the terminal notification raised by this reveal if any, and the record of
// the finished game.
type Turn struct {
	mines.RevealResult
	Event  mines.Event
	Record *stats.GameRecord
}

type Session struct {
	logger *slog.Logger
	rnd    *rand.Rand
	params Params
	stats  *stats.Statistics
	now    func() time.Time

	id      uuid.UUID
	game    *mines.Game
	elapsed int
	running bool
}

func New(
	logger *slog.Logger, rnd *rand.Rand, params Params, st *stats.Statistics,
) (*Session, error) {
	if st == nil {
		st = &stats.Statistics{}
	}
	s := &Session{
		logger: logger,
		rnd:    rnd,
		params: params,
		stats:  st,
		now:    time.Now,
	}
	if err := s.newGame(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) newGame() error {
	game, err := mines.NewGame(
		s.params.Width, s.params.Height, s.params.MineCount, s.rnd,
	)
	if err != nil {
		return fmt.Errorf("unable to create game: %w", err)
	}
	s.id = uuid.New()
	s.game = game
	s.elapsed = 0
	s.running = false
	s.logger.Debug("new game", slog.String("id", s.id.String()))
	return nil
}

func (s *Session) ID() uuid.UUID            { return s.id }
func (s *Session) Game() *mines.Game        { return s.game }
func (s *Session) Stats() *stats.Statistics { return s.stats }
func (s *Session) Running() bool            { return s.running }

func (s *Session) Elapsed() time.Duration {
	return time.Duration(s.elapsed) * time.Second
}

func (s *Session) Clock() string {
	return stats.FormatClock(s.Elapsed())
}

// Tick advances the timer by one second while a game is being played and
// reports whether the timer is still running.
func (s *Session) Tick() bool {
	if s.running {
		s.elapsed++
	}
	return s.running
}

// Reveal uncovers p in the current game. The first reveal starts the timer;
// a win or a loss stops it and is recorded in the statistics.
func (s *Session) Reveal(p mines.Point) (Turn, error) {
	res, err := s.game.Reveal(p)
	if err != nil {
		return Turn{}, err
	}
	turn := Turn{RevealResult: res}

	if len(res.Cells) > 0 && !s.running && !res.Outcome.Over() {
		s.running = true
	}

	if e, ok := s.game.TakeEvent(); ok {
		s.running = false
		turn.Event = e
		outcome := stats.OutcomeLost
		if e == mines.EventWon {
			outcome = stats.OutcomeWon
		}
		rec := s.record(outcome)
		turn.Record = &rec
		s.logger.Info("game finished",
			slog.String("id", s.id.String()),
			slog.String("outcome", string(outcome)),
			slog.String("time", s.Clock()),
		)
	}

	return turn, nil
}

// Restart discards the current game and deals a new one. An unfinished game
// that has been started counts as played and its record is returned.
func (s *Session) Restart() (*stats.GameRecord, error) {
	var abandoned *stats.GameRecord
	if !s.game.State().Over() && s.game.RevealedCount() > 0 {
		rec := s.record(stats.OutcomeAbandoned)
		abandoned = &rec
	}
	if err := s.newGame(); err != nil {
		return abandoned, err
	}
	return abandoned, nil
}

func (s *Session) record(outcome stats.Outcome) stats.GameRecord {
	rec := stats.GameRecord{
		GameID:     s.id,
		Outcome:    outcome,
		Width:      s.game.Width(),
		Height:     s.game.Height(),
		MineCount:  s.game.MineCount(),
		Revealed:   s.game.RevealedCount(),
		Duration:   s.Elapsed(),
		FinishedAt: s.now().UTC(),
	}
	s.stats.Record(rec)
	return rec
}
