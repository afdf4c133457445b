package mines

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardWithMines builds a board with mines at exactly the given points.
func boardWithMines(t *testing.T, width, height int, mines ...Point) *Board {
	t.Helper()
	b, err := NewBoard(width, height)
	require.NoError(t, err)
	for _, p := range mines {
		require.True(t, b.InBounds(p), "mine %s out of bounds", p)
		b.cells[b.index(p)].Mine = true
	}
	b.mineCount = len(mines)
	b.countAdjacentMines()
	return b
}

func TestNewBoardRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := NewBoard(test.width, test.height)
			var ce *ConfigurationError
			assert.True(t, errors.As(err, &ce), "have %v", err)
		})
	}
}

func TestPlaceMinesCount(t *testing.T) {
	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{"10x10(8)", 10, 10, 8},
		{"10x10(0)", 10, 10, 0},
		{"10x10(99)", 10, 10, 99},
		{"3x7(20)", 3, 7, 20},
		{"1x2(1)", 1, 2, 1},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r := rand.New(rand.NewPCG(1, 2))
			for range 50 {
				b, err := NewBoard(test.width, test.height)
				require.NoError(t, err)
				require.NoError(t, b.PlaceMines(test.mineCount, r))

				n := 0
				for _, c := range b.cells {
					if c.Mine {
						n++
					}
				}
				assert.Equal(t, test.mineCount, n)
				assert.Equal(t, test.mineCount, b.MineCount())
				assert.Len(t, b.Mines(), test.mineCount)
			}
		})
	}
}

func TestPlaceMinesRejectsFullBoard(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for _, count := range []int{100, 101, -1} {
		b, err := NewBoard(10, 10)
		require.NoError(t, err)
		err = b.PlaceMines(count, r)
		var ce *ConfigurationError
		assert.True(t, errors.As(err, &ce), "count %d: have %v", count, err)
	}
}

func TestPlaceMinesOnlyOnce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	b, err := NewBoard(10, 10)
	require.NoError(t, err)
	require.NoError(t, b.PlaceMines(8, r))
	assert.Error(t, b.PlaceMines(8, r))
	assert.Len(t, b.Mines(), 8)
}

func TestPlaceMinesUsesWholeBoard(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	hits := make(map[Point]int)
	for range 2000 {
		b, err := NewBoard(10, 10)
		require.NoError(t, err)
		require.NoError(t, b.PlaceMines(8, r))
		for _, p := range b.Mines() {
			hits[p]++
		}
	}
	assert.Len(t, hits, 100)
}

func TestAdjacentMineCountMatchesRecount(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for range 100 {
		b, err := NewBoard(10, 10)
		require.NoError(t, err)
		require.NoError(t, b.PlaceMines(30, r))

		for y := range b.Height {
			for x := range b.Width {
				p := Point{x, y}
				want := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						xx, yy := x+dx, y+dy
						if (dx != 0 || dy != 0) &&
							0 <= xx && xx < b.Width && 0 <= yy && yy < b.Height &&
							b.cells[yy*b.Width+xx].Mine {
							want++
						}
					}
				}
				have, err := b.AdjacentMineCount(p)
				require.NoError(t, err)
				assert.Equal(t, want, have, "cell %s", p)
			}
		}
	}
}

func TestNeighborCount(t *testing.T) {
	b, err := NewBoard(10, 10)
	require.NoError(t, err)

	tests := []struct {
		name string
		p    Point
		want int
	}{
		{"interior", Point{5, 5}, 8},
		{"interior next to edge", Point{1, 1}, 8},
		{"top left corner", Point{0, 0}, 3},
		{"top right corner", Point{9, 0}, 3},
		{"bottom left corner", Point{0, 9}, 3},
		{"bottom right corner", Point{9, 9}, 3},
		{"left edge", Point{0, 4}, 5},
		{"top edge", Point{4, 0}, 5},
		{"right edge", Point{9, 4}, 5},
		{"bottom edge", Point{4, 9}, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			neighbors := b.Neighbors(test.p)
			assert.Len(t, neighbors, test.want)
			for _, n := range neighbors {
				assert.True(t, b.InBounds(n))
				assert.NotEqual(t, test.p, n)
			}
		})
	}
}

func TestBoardRejectsOutOfRangePoints(t *testing.T) {
	b := boardWithMines(t, 10, 10, Point{3, 3})
	for _, p := range []Point{{-1, 0}, {0, -1}, {10, 0}, {0, 10}} {
		_, err := b.AdjacentMineCount(p)
		var ie *InvalidCoordinateError
		assert.True(t, errors.As(err, &ie), "point %s: have %v", p, err)

		_, err = b.IsMine(p)
		assert.True(t, errors.As(err, &ie), "point %s: have %v", p, err)
	}
}

func TestBoardString(t *testing.T) {
	b := boardWithMines(t, 3, 2, Point{0, 0})
	b.cells[b.index(Point{2, 1})].Revealed = true
	b.cells[b.index(Point{1, 1})].Revealed = true
	b.cells[b.index(Point{0, 0})].Revealed = true
	assert.Equal(t, "* # #\n# 1 .\n", b.String())
}
