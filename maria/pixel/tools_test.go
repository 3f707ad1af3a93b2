package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpalumbo/go-maria/maria/events"
	"github.com/mpalumbo/go-maria/maria/mode"
)

func TestFloodFill_Region(t *testing.T) {
	g := newGrid(t, 6, 6, mode.Mode160A)

	// a 3x3 block of color 2 with one unconnected cell of the same color
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			g.SetCell(Point{x, y}, 2, events.BehaviorInternal)
		}
	}
	g.SetCell(Point{5, 5}, 2, events.BehaviorInternal)

	g.FloodFill(Point{1, 1}, 3)

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, ColorIndex(3), cellIndex(t, g, x, y))
		}
	}
	assert.Equal(t, ColorIndex(2), cellIndex(t, g, 5, 5), "diagonal is not 4-connected")
}

func TestFloodFill_TerminatesOnCycles(t *testing.T) {
	// a solid grid is the worst case: every cell connects to every
	// neighbor, so an unguarded walk would revisit forever
	g := newGrid(t, 32, 32, mode.Mode160A)

	var draws int
	g.Events().Subscribe(func(e events.Event) {
		if e.Type == events.PixelDraw {
			draws++
		}
	})

	g.FloodFill(Point{16, 16}, 1)

	assert.Equal(t, 32*32, draws, "each cell written exactly once")
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			assert.Equal(t, ColorIndex(1), cellIndex(t, g, x, y))
		}
	}
}

func TestFloodFill_MatchesExactIndexOnly(t *testing.T) {
	g := newGrid(t, 4, 1, mode.Mode160A)
	g.SetCell(Point{1, 0}, 2, events.BehaviorInternal)

	// filling empty cells stops at the color-2 wall
	g.FloodFill(Point{0, 0}, 3)

	assert.Equal(t, ColorIndex(3), cellIndex(t, g, 0, 0))
	assert.Equal(t, ColorIndex(2), cellIndex(t, g, 1, 0))
	assert.Equal(t, NoInk, cellIndex(t, g, 2, 0))
}

func TestFloodFill_NoOpWhenInkMatches(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160A)

	var draws int
	g.Events().Subscribe(func(e events.Event) {
		if e.Type == events.PixelDraw {
			draws++
		}
	})

	g.FloodFill(Point{0, 0}, NoInk)
	assert.Zero(t, draws)
}

func TestLineCells(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want []Point
	}{
		{"single cell", Point{3, 3}, Point{3, 3}, []Point{{3, 3}}},
		{"horizontal", Point{0, 2}, Point{3, 2}, []Point{{0, 2}, {1, 2}, {2, 2}, {3, 2}}},
		{"vertical", Point{2, 0}, Point{2, 3}, []Point{{2, 0}, {2, 1}, {2, 2}, {2, 3}}},
		{"vertical upward", Point{2, 3}, Point{2, 1}, []Point{{2, 3}, {2, 2}, {2, 1}}},
		{"diagonal", Point{0, 0}, Point{3, 3}, []Point{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{"leftward shallow", Point{4, 0}, Point{0, 2}, []Point{{4, 0}, {3, 1}, {2, 1}, {1, 2}, {0, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lineCells(tt.a, tt.b))
		})
	}
}

// A line must be contiguous: consecutive cells never differ by more than
// one on either axis, regardless of slope.
func TestLineCells_NoGaps(t *testing.T) {
	ends := []Point{{7, 2}, {2, 7}, {-5, 3}, {3, -5}, {-4, -9}, {9, 0}, {0, 9}, {6, 6}}
	for _, end := range ends {
		cells := lineCells(Point{0, 0}, end)
		require.NotEmpty(t, cells)
		assert.Equal(t, Point{0, 0}, cells[0])
		assert.Equal(t, end, cells[len(cells)-1])
		for i := 1; i < len(cells); i++ {
			assert.LessOrEqual(t, absInt(cells[i].X-cells[i-1].X), 1, "end %v step %d", end, i)
			assert.LessOrEqual(t, absInt(cells[i].Y-cells[i-1].Y), 1, "end %v step %d", end, i)
		}
	}
}

func TestRectCells(t *testing.T) {
	outline := rectCells(Point{0, 0}, Point{2, 2}, false)
	filled := rectCells(Point{2, 2}, Point{0, 0}, true)

	assert.Len(t, outline, 8)
	assert.Len(t, filled, 9)
	assert.NotContains(t, outline, Point{1, 1})
	assert.Contains(t, filled, Point{1, 1})
}

// Every outline cell must also be part of the filled ellipse for the same
// bounding box.
func TestEllipseCells_FilledCoversOutline(t *testing.T) {
	boxes := []struct{ a, b Point }{
		{Point{0, 0}, Point{8, 4}},
		{Point{0, 0}, Point{4, 8}},
		{Point{0, 0}, Point{9, 9}},
		{Point{0, 0}, Point{5, 3}},
		{Point{3, 2}, Point{14, 9}},
	}

	for _, box := range boxes {
		outline := ellipseCells(box.a, box.b, false)
		filled := ellipseCells(box.a, box.b, true)
		require.NotEmpty(t, outline, "box %v-%v", box.a, box.b)

		filledSet := make(map[Point]bool, len(filled))
		for _, p := range filled {
			filledSet[p] = true
		}
		for _, p := range outline {
			assert.True(t, filledSet[p], "outline cell %v missing from filled ellipse, box %v-%v", p, box.a, box.b)
		}
	}
}

func TestEllipseCells_DegenerateBoxFallsBackToRect(t *testing.T) {
	cells := ellipseCells(Point{0, 0}, Point{0, 4}, false)
	assert.Len(t, cells, 5, "1-wide box rasterizes as a column")
}
