// Package tui is the terminal front end: it draws the board, turns key
// presses into reveals and menu actions, and drives the one-second timer.
package tui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
	"github.com/vancomm/minesweeper/internal/stats"
	"github.com/vancomm/minesweeper/internal/store"
)

type dialog int

const (
	dialogNone dialog = iota
	dialogConfirmNewGame
	dialogConfirmQuit
	dialogStats
	dialogInstructions
	dialogAbout
	dialogGameOver
)

// tickMsg carries the timer generation it was scheduled for; ticks from a
// previous game are dropped.
type tickMsg struct {
	gen int
}

type recordedMsg struct {
	rec stats.GameRecord
	err error
}

type Model struct {
	ctx     context.Context
	logger  *slog.Logger
	session *session.Session
	store   store.Store

	cursor  mines.Point
	dialog  dialog
	message string
	tickGen int
	err     error
}

func New(
	ctx context.Context, logger *slog.Logger, sess *session.Session, st store.Store,
) Model {
	return Model{
		ctx:     ctx,
		logger:  logger,
		session: sess,
		store:   st,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		if m.session.Tick() {
			return m, m.tick()
		}
		return m, nil

	case recordedMsg:
		if msg.err != nil {
			m.logger.Error("unable to store game record",
				slog.String("id", msg.rec.GameID.String()),
				slog.Any("error", msg.err),
			)
			m.err = msg.err
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.dialog != dialogNone {
			return m.updateDialog(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	g := m.session.Game()
	switch msg.String() {
	case "up", "k":
		if m.cursor.Y > 0 {
			m.cursor.Y--
		}
	case "down", "j":
		if m.cursor.Y < g.Height()-1 {
			m.cursor.Y++
		}
	case "left", "h":
		if m.cursor.X > 0 {
			m.cursor.X--
		}
	case "right", "l":
		if m.cursor.X < g.Width()-1 {
			m.cursor.X++
		}
	case " ", "enter":
		return m.reveal()
	case "n":
		m.dialog = dialogConfirmNewGame
	case "q", "esc":
		m.dialog = dialogConfirmQuit
	case "s":
		m.dialog = dialogStats
	case "i":
		m.dialog = dialogInstructions
	case "a":
		m.dialog = dialogAbout
	}
	return m, nil
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch m.dialog {
	case dialogConfirmNewGame:
		switch key {
		case "y", "Y", "enter":
			m.dialog = dialogNone
			return m.restart()
		case "n", "N", "esc":
			m.dialog = dialogNone
		}
	case dialogConfirmQuit:
		switch key {
		case "y", "Y", "enter":
			return m, tea.Quit
		case "n", "N", "esc":
			m.dialog = dialogNone
		}
	default:
		switch key {
		case "n":
			if m.dialog == dialogGameOver {
				m.dialog = dialogConfirmNewGame
			}
		case "enter", "esc", " ", "q":
			m.dialog = dialogNone
			m.message = ""
		}
	}
	return m, nil
}

func (m Model) reveal() (tea.Model, tea.Cmd) {
	wasRunning := m.session.Running()
	turn, err := m.session.Reveal(m.cursor)
	if err != nil {
		m.logger.Error("reveal failed",
			slog.String("point", m.cursor.String()), slog.Any("error", err))
		m.err = err
		return m, nil
	}

	cmds := make([]tea.Cmd, 0, 2)
	if !wasRunning && m.session.Running() {
		m.tickGen++
		cmds = append(cmds, m.tick())
	}

	switch turn.Event {
	case mines.EventLost:
		m.dialog = dialogGameOver
		m.message = "Game Over"
	case mines.EventWon:
		m.dialog = dialogGameOver
		m.message = "You win!"
	}

	if turn.Record != nil {
		cmds = append(cmds, m.record(*turn.Record))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	rec, err := m.session.Restart()
	m.tickGen++
	m.cursor = mines.Point{}
	m.message = ""
	if err != nil {
		m.logger.Error("unable to start a new game", slog.Any("error", err))
		m.err = err
	}
	if rec != nil {
		return m, m.record(*rec)
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{gen: gen}
	})
}

func (m Model) record(rec stats.GameRecord) tea.Cmd {
	return func() tea.Msg {
		err := m.store.RecordGame(m.ctx, rec)
		return recordedMsg{rec: rec, err: err}
	}
}
