// Package stats keeps lifetime statistics across games played in one
// process, optionally seeded from a store.
package stats

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	// OutcomeAbandoned is a game replaced by a new one before it ended.
	OutcomeAbandoned Outcome = "abandoned"
)

func ParseOutcome(s string) (Outcome, error) {
	switch o := Outcome(s); o {
	case OutcomeWon, OutcomeLost, OutcomeAbandoned:
		return o, nil
	default:
		return "", fmt.Errorf("unknown outcome %q", s)
	}
}

type GameRecord struct {
	GameID     uuid.UUID     `json:"game_id"`
	Outcome    Outcome       `json:"outcome"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	MineCount  int           `json:"mine_count"`
	Revealed   int           `json:"revealed"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

type Statistics struct {
	GamesPlayed int
	Wins        int
	Losses      int
	// Durations holds the playtime of every won or lost game.
	Durations []time.Duration
}

func FromRecords(records []GameRecord) *Statistics {
	s := &Statistics{}
	for _, rec := range records {
		s.Record(rec)
	}
	return s
}

func (s *Statistics) Record(rec GameRecord) {
	s.GamesPlayed++
	switch rec.Outcome {
	case OutcomeWon:
		s.Wins++
	case OutcomeLost:
		s.Losses++
	default:
		return
	}
	s.Durations = append(s.Durations, rec.Duration)
}

func (s *Statistics) AverageTime() time.Duration {
	if len(s.Durations) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range s.Durations {
		total += d
	}
	return total / time.Duration(len(s.Durations))
}

func (s *Statistics) WinLoss() string {
	return fmt.Sprintf("%d/%d", s.Wins, s.Losses)
}

func (s *Statistics) Summary() string {
	if s.GamesPlayed == 0 {
		return "Finish a game of Minesweeper first!"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Total Games Played: %d\n", s.GamesPlayed)
	fmt.Fprintf(&b, "W/L: %s\n", s.WinLoss())
	fmt.Fprintf(&b, "Average Time: %s", FormatClock(s.AverageTime()))
	return b.String()
}

// FormatClock renders d as mm:ss, truncating to whole seconds. Minutes wrap
// at an hour.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", (secs/60)%60, secs%60)
}
