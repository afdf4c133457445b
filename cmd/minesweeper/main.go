package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/maphash"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
	"github.com/vancomm/minesweeper/internal/store"
	"github.com/vancomm/minesweeper/internal/tui"
)

func createRand(seed *uint64) *rand.Rand {
	if seed != nil {
		return rand.New(rand.NewPCG(*seed, *seed))
	}
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	if cfg.Development {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:   slog.LevelDebug,
			NoColor: true,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, nil))
}

// run returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("minesweeper", flag.ContinueOnError)
	flags.SetOutput(stderr)
	printStats := flags.Bool("stats", false, "print lifetime statistics and exit")
	gameID := flags.String("game", "", "print the stored record of a game and exit")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to read config: %s\n", err)
		return 1
	}

	logFile := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     28,
	}
	defer logFile.Close()

	logger := newLogger(cfg, logFile)
	mines.Log = logger

	fail := func(msg string, err error) int {
		logger.Error(msg, slog.Any("error", err))
		fmt.Fprintf(stderr, "%s: %s\n", msg, err)
		return 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st, err := store.Open(ctx, cfg, logger)
	if err != nil {
		return fail("failed to open stats store", err)
	}
	defer st.Close()

	if *gameID != "" {
		if err := writeGame(ctx, stdout, st, *gameID); err != nil {
			return fail("failed to read game record", err)
		}
		return 0
	}

	statistics, err := store.LoadStatistics(ctx, st)
	if err != nil {
		return fail("failed to load statistics", err)
	}

	if *printStats {
		if err := writeStats(ctx, stdout, st, statistics); err != nil {
			return fail("failed to print statistics", err)
		}
		return 0
	}

	sess, err := session.New(
		logger, createRand(cfg.Seed), session.DefaultParams(), statistics,
	)
	if err != nil {
		return fail("failed to start session", err)
	}

	logger.Info("starting up",
		slog.String("backend", string(cfg.StatsBackend)),
		slog.Int("games played", statistics.GamesPlayed),
	)

	g, gCtx := errgroup.WithContext(ctx)
	p := tea.NewProgram(
		tui.New(gCtx, logger, sess, st),
		tea.WithAltScreen(),
		tea.WithContext(gCtx),
	)
	g.Go(func() error {
		defer cancel()
		_, err := p.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		p.Quit()
		return nil
	})

	if err := g.Wait(); err != nil {
		return fail("exit reason", err)
	}
	logger.Info("shutting down")
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
