package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper/internal/stats"
	"github.com/vancomm/minesweeper/internal/store"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("MINES_LOG_FILE", filepath.Join(dir, "minesweeper.log"))
	t.Setenv("MINES_STATS_BACKEND", "sqlite")
	t.Setenv("MINES_STATS_PATH", filepath.Join(dir, "stats.db"))
	return dir
}

func seedRecord(t *testing.T, path string, outcome stats.Outcome) stats.GameRecord {
	t.Helper()
	s, err := store.OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()

	rec := stats.GameRecord{
		GameID:     uuid.New(),
		Outcome:    outcome,
		Width:      10,
		Height:     10,
		MineCount:  8,
		Revealed:   92,
		Duration:   75 * time.Second,
		FinishedAt: time.Now().UTC(),
	}
	require.NoError(t, s.RecordGame(context.Background(), rec))
	return rec
}

func runCmd(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunStats(t *testing.T) {
	dir := setupEnv(t)

	code, out, _ := runCmd("-stats")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Finish a game of Minesweeper first!")
	assert.Contains(t, out, "Recorded games: 0")

	seedRecord(t, filepath.Join(dir, "stats.db"), stats.OutcomeWon)

	code, out, _ = runCmd("-stats")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Total Games Played: 1")
	assert.Contains(t, out, "W/L: 1/0")
	assert.Contains(t, out, "Average Time: 01:15")
	assert.Contains(t, out, "Recorded games: 1")
}

func TestRunGame(t *testing.T) {
	dir := setupEnv(t)
	rec := seedRecord(t, filepath.Join(dir, "stats.db"), stats.OutcomeLost)

	code, out, _ := runCmd("-game", rec.GameID.String())
	assert.Equal(t, 0, code)
	assert.Contains(t, out, rec.GameID.String())
	assert.Contains(t, out, `"outcome": "lost"`)
}

func TestRunFailures(t *testing.T) {
	testCases := []struct {
		name   string
		args   []string
		env    func(t *testing.T, dir string)
		code   int
		stderr string
	}{
		{
			name: "unknown flag",
			args: []string{"-nope"},
			code: 2,
		},
		{
			name:   "bad config",
			args:   []string{"-stats"},
			env:    func(t *testing.T, _ string) { t.Setenv("MINES_STATS_BACKEND", "redis") },
			code:   1,
			stderr: "failed to read config",
		},
		{
			name: "stats dir is a file",
			args: []string{"-stats"},
			env: func(t *testing.T, dir string) {
				blocker := filepath.Join(dir, "blocker")
				require.NoError(t, os.WriteFile(blocker, nil, 0o644))
				t.Setenv("MINES_STATS_PATH", filepath.Join(blocker, "stats.db"))
			},
			code:   1,
			stderr: "failed to open stats store",
		},
		{
			name:   "malformed game id",
			args:   []string{"-game", "not-a-uuid"},
			code:   1,
			stderr: "failed to read game record",
		},
		{
			name:   "unknown game",
			args:   []string{"-game", uuid.NewString()},
			code:   1,
			stderr: "game record not found",
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			dir := setupEnv(t)
			if test.env != nil {
				test.env(t, dir)
			}
			code, _, stderr := runCmd(test.args...)
			assert.Equal(t, test.code, code)
			assert.Contains(t, stderr, test.stderr)
		})
	}
}
