package mines

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}

// Cell is the state of a single square. AdjacentMines is fixed once mines
// have been placed.
type Cell struct {
	Mine          bool
	Revealed      bool
	AdjacentMines int
}

func (c Cell) String() string {
	switch {
	case !c.Revealed:
		return "#"
	case c.Mine:
		return "*"
	case c.AdjacentMines == 0:
		return "."
	default:
		return strconv.Itoa(c.AdjacentMines)
	}
}

type Board struct {
	Width, Height int
	mineCount     int
	cells         []Cell
}

func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, &ConfigurationError{
			Width: width, Height: height,
			message: "dimensions must be positive",
		}
	}
	b := &Board{
		Width:  width,
		Height: height,
		cells:  make([]Cell, width*height),
	}
	return b, nil
}

func (b *Board) Size() int {
	return b.Width * b.Height
}

func (b *Board) MineCount() int {
	return b.mineCount
}

func (b *Board) InBounds(p Point) bool {
	return 0 <= p.X && p.X < b.Width && 0 <= p.Y && p.Y < b.Height
}

func (b *Board) index(p Point) int {
	return p.Y*b.Width + p.X
}

func (b *Board) point(i int) Point {
	return Point{X: i % b.Width, Y: i / b.Width}
}

func (b *Board) checkPoint(p Point) error {
	if !b.InBounds(p) {
		return &InvalidCoordinateError{Point: p, Width: b.Width, Height: b.Height}
	}
	return nil
}

func (b *Board) Cell(p Point) (Cell, error) {
	if err := b.checkPoint(p); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(p)], nil
}

// PlaceMines puts count mines on distinct cells chosen uniformly at random,
// re-rolling on collisions, then fills in the adjacency counts. It may only
// be called once per board.
func (b *Board) PlaceMines(count int, r *rand.Rand) error {
	if count < 0 || count >= b.Size() {
		return &ConfigurationError{
			Width: b.Width, Height: b.Height, MineCount: count,
			message: "mine count must be between 0 and the number of cells minus one",
		}
	}
	if b.mineCount != 0 {
		return &ConfigurationError{
			Width: b.Width, Height: b.Height, MineCount: count,
			message: "mines have already been placed",
		}
	}

	for placed := 0; placed < count; {
		p := Point{X: r.IntN(b.Width), Y: r.IntN(b.Height)}
		c := &b.cells[b.index(p)]
		if c.Mine {
			continue
		}
		c.Mine = true
		placed++
	}
	b.mineCount = count

	b.countAdjacentMines()
	return nil
}

func (b *Board) countAdjacentMines() {
	for i := range b.cells {
		n := 0
		for _, q := range b.Neighbors(b.point(i)) {
			if b.cells[b.index(q)].Mine {
				n++
			}
		}
		b.cells[i].AdjacentMines = n
	}
}

// Neighbors returns the in-bounds points around p: 8 for interior cells, 5
// along an edge and 3 in a corner.
func (b *Board) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 8)
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			q := Point{X: p.X + dx, Y: p.Y + dy}
			if b.InBounds(q) {
				neighbors = append(neighbors, q)
			}
		}
	}
	return neighbors
}

func (b *Board) AdjacentMineCount(p Point) (int, error) {
	if err := b.checkPoint(p); err != nil {
		return 0, err
	}
	return b.cells[b.index(p)].AdjacentMines, nil
}

func (b *Board) IsMine(p Point) (bool, error) {
	if err := b.checkPoint(p); err != nil {
		return false, err
	}
	return b.cells[b.index(p)].Mine, nil
}

// Mines lists mine positions in row-major order.
func (b *Board) Mines() []Point {
	mines := make([]Point, 0, b.mineCount)
	for i, c := range b.cells {
		if c.Mine {
			mines = append(mines, b.point(i))
		}
	}
	return mines
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.Height {
		for x := range b.Width {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[y*b.Width+x].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
