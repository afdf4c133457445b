package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/stats"
)

// Memory keeps records for the lifetime of the process only.
type Memory struct {
	mu    sync.Mutex
	games []stats.GameRecord
	index map[uuid.UUID]int
}

func NewMemory() *Memory {
	return &Memory{index: make(map[uuid.UUID]int)}
}

func (m *Memory) RecordGame(_ context.Context, rec stats.GameRecord) error {
	if err := validate(rec); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[rec.GameID]; ok {
		return nil
	}
	m.index[rec.GameID] = len(m.games)
	m.games = append(m.games, rec)
	return nil
}

func (m *Memory) Game(_ context.Context, id uuid.UUID) (*stats.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, ok := m.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	rec := m.games[i]
	return &rec, nil
}

func (m *Memory) Games(context.Context) ([]stats.GameRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.games), nil
}

func (m *Memory) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games), nil
}

func (m *Memory) Close() error {
	return nil
}
