// Package config reads settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gorilla/schema"
)

type StatsBackend string

const (
	StatsMemory   StatsBackend = "memory"
	StatsSQLite   StatsBackend = "sqlite"
	StatsPostgres StatsBackend = "postgres"
)

type Config struct {
	Development  bool         `schema:"-"`
	Seed         *uint64      `schema:"MINES_SEED"`
	LogFile      string       `schema:"MINES_LOG_FILE"`
	StatsBackend StatsBackend `schema:"MINES_STATS_BACKEND"`
	StatsPath    string       `schema:"MINES_STATS_PATH"`
}

func dataDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "minesweeper")
}

func defaults() Config {
	dir := dataDir()
	return Config{
		LogFile:      filepath.Join(dir, "minesweeper.log"),
		StatsBackend: StatsMemory,
		StatsPath:    filepath.Join(dir, "stats.db"),
	}
}

// environ turns the process environment into the map form the schema decoder
// expects. Empty variables count as unset.
func environ(env []string) map[string][]string {
	src := make(map[string][]string, len(env))
	for _, kv := range env {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || v == "" {
			continue
		}
		src[k] = []string{v}
	}
	return src
}

// development reports whether DEVELOPMENT is set to anything but "0".
func development(env []string) bool {
	for _, kv := range env {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "DEVELOPMENT" {
			return v != "0"
		}
	}
	return false
}

func Development() bool {
	return development(os.Environ())
}

func decode(env []string) (*Config, error) {
	cfg := defaults()
	cfg.Development = development(env)
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&cfg, environ(env)); err != nil {
		return nil, fmt.Errorf("unable to decode environment: %w", err)
	}
	switch cfg.StatsBackend {
	case StatsMemory, StatsSQLite, StatsPostgres:
	default:
		return nil, fmt.Errorf(
			"MINES_STATS_BACKEND must be one of memory, sqlite, postgres; got %q",
			cfg.StatsBackend,
		)
	}
	return &cfg, nil
}

func Load() (*Config, error) {
	return decode(os.Environ())
}
