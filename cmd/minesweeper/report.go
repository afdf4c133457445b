package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper/internal/stats"
	"github.com/vancomm/minesweeper/internal/store"
)

func writeStats(ctx context.Context, w io.Writer, st store.Store, s *stats.Statistics) error {
	n, err := st.Count(ctx)
	if err != nil {
		return fmt.Errorf("unable to count game records: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\nRecorded games: %d\n", s.Summary(), n)
	return err
}

func writeGame(ctx context.Context, w io.Writer, st store.Store, id string) error {
	gameID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid game id %q: %w", id, err)
	}
	rec, err := st.Game(ctx, gameID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
