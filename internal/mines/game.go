package mines

import (
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

const (
	DefaultWidth     = 10
	DefaultHeight    = 10
	DefaultMineCount = 8
)

type State int8

const (
	InProgress State = iota
	Won
	Lost
)

func (s State) String() string {
	switch s {
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

func (s State) Over() bool {
	return s != InProgress
}

// Event is a notification raised when the game enters a terminal state.
type Event int8

const (
	// EventLost means reveals must be disabled.
	EventLost Event = iota + 1
	// EventWon means the timer must stop and a win must be recorded.
	EventWon
)

func (e Event) String() string {
	switch e {
	case EventLost:
		return "lost"
	case EventWon:
		return "won"
	default:
		return "none"
	}
}

type RevealedCell struct {
	Point
	AdjacentMines int
	Mine          bool
}

// RevealResult is the batch of cells uncovered by one reveal, in the order
// they were uncovered, and the state of the game afterwards.
type RevealResult struct {
	Cells   []RevealedCell
	Outcome State
}

type Game struct {
	board    *Board
	state    State
	revealed int
	events   []Event
}

func NewGame(width, height, mineCount int, r *rand.Rand) (*Game, error) {
	board, err := NewBoard(width, height)
	if err != nil {
		return nil, err
	}
	if err := board.PlaceMines(mineCount, r); err != nil {
		return nil, err
	}
	return NewGameFromBoard(board), nil
}

func NewDefaultGame(r *rand.Rand) (*Game, error) {
	return NewGame(DefaultWidth, DefaultHeight, DefaultMineCount, r)
}

// NewGameFromBoard starts a game on a board whose mines are already placed.
func NewGameFromBoard(board *Board) *Game {
	return &Game{board: board}
}

func (g *Game) Width() int         { return g.board.Width }
func (g *Game) Height() int        { return g.board.Height }
func (g *Game) MineCount() int     { return g.board.MineCount() }
func (g *Game) State() State       { return g.state }
func (g *Game) RevealedCount() int { return g.revealed }

// WinThreshold is the number of safe cells; revealing all of them wins.
func (g *Game) WinThreshold() int {
	return g.board.Size() - g.board.MineCount()
}

func (g *Game) InBounds(p Point) bool {
	return g.board.InBounds(p)
}

func (g *Game) Cell(p Point) (Cell, error) {
	return g.board.Cell(p)
}

func (g *Game) IsMine(p Point) (bool, error) {
	return g.board.IsMine(p)
}

func (g *Game) Mines() []Point {
	return g.board.Mines()
}

func (g *Game) String() string {
	return g.board.String()
}

// Reveal uncovers p. Safe cells with no adjacent mines uncover their
// neighbours as well, until the whole zero region and its border are open.
// Revealing an open cell, or any cell once the game is over, changes nothing.
func (g *Game) Reveal(p Point) (RevealResult, error) {
	if err := g.board.checkPoint(p); err != nil {
		return RevealResult{}, err
	}

	start := g.board.index(p)
	if g.state.Over() || g.board.cells[start].Revealed {
		return RevealResult{Outcome: g.state}, nil
	}

	var opened []RevealedCell

	if g.board.cells[start].Mine {
		g.board.cells[start].Revealed = true
		g.revealed++
		opened = append(opened, RevealedCell{Point: p, Mine: true})
		g.finish(Lost)
		return RevealResult{Cells: opened, Outcome: g.state}, nil
	}

	todo := newCellQueue(g.board.Size())
	g.board.cells[start].Revealed = true
	todo.push(start)

	for {
		i, ok := todo.pop()
		if !ok {
			break
		}
		g.revealed++
		c := g.board.cells[i]
		q := g.board.point(i)
		opened = append(opened, RevealedCell{Point: q, AdjacentMines: c.AdjacentMines})

		if c.AdjacentMines > 0 {
			continue
		}
		for _, n := range g.board.Neighbors(q) {
			j := g.board.index(n)
			if !g.board.cells[j].Revealed {
				g.board.cells[j].Revealed = true
				todo.push(j)
			}
		}
	}

	if g.revealed == g.WinThreshold() {
		g.finish(Won)
	}

	return RevealResult{Cells: opened, Outcome: g.state}, nil
}

func (g *Game) finish(s State) {
	g.state = s
	switch s {
	case Won:
		g.events = append(g.events, EventWon)
	case Lost:
		g.events = append(g.events, EventLost)
	}
	Log.Debug("game over",
		slog.String("state", s.String()),
		slog.Int("revealed", g.revealed),
	)
}

// TakeEvent hands out each terminal notification exactly once.
func (g *Game) TakeEvent() (Event, bool) {
	if len(g.events) == 0 {
		return 0, false
	}
	e := g.events[0]
	g.events = g.events[1:]
	return e, true
}
