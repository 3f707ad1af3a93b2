package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpalumbo/go-maria/maria/events"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
)

func newGrid(t *testing.T, w, h int, m mode.DisplayMode) *Grid {
	t.Helper()
	g, err := New(w, h, m, palette.DefaultSet())
	require.NoError(t, err)
	return g
}

// drag simulates a full left-button gesture over the given cells.
func drag(g *Grid, cells ...Point) {
	g.Pointer(PointerEvent{Action: PointerDown, Button: ButtonLeft, Cell: cells[0]})
	for _, c := range cells[1:] {
		g.Pointer(PointerEvent{Action: PointerMove, Button: ButtonLeft, Cell: c})
	}
	g.Pointer(PointerEvent{Action: PointerUp, Button: ButtonLeft, Cell: cells[len(cells)-1]})
}

func cellIndex(t *testing.T, g *Grid, x, y int) ColorIndex {
	t.Helper()
	cell, ok := g.Cell(Point{x, y})
	require.True(t, ok)
	return cell.ModeColorIndex
}

func TestNew_RejectsBadSizes(t *testing.T) {
	set := palette.DefaultSet()

	_, err := New(0, 4, mode.Mode160A, set)
	assert.Error(t, err)

	_, err = New(200, 4, mode.Mode160A, set)
	assert.Error(t, err, "width past the mode ceiling")

	_, err = New(200, 4, mode.None, set)
	assert.NoError(t, err, "none mode has no ceiling")
}

func TestResize_PreservesOverlap(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160A)
	g.SetCell(Point{1, 2}, 3, events.BehaviorInternal)
	g.SetCell(Point{3, 3}, 2, events.BehaviorInternal)

	require.NoError(t, g.Resize(3, 5))

	assert.Equal(t, ColorIndex(3), cellIndex(t, g, 1, 2), "surviving cell keeps its ink")
	assert.Equal(t, NoInk, cellIndex(t, g, 2, 4), "new cells start empty")
	_, ok := g.Cell(Point{3, 3})
	assert.False(t, ok, "truncated column is gone")
}

func TestPointer_FreehandDraw(t *testing.T) {
	g := newGrid(t, 8, 8, mode.Mode160A)
	g.SetTool(ToolDraw)
	g.SetActiveColor(2)

	var draws, aggregates int
	g.Events().Subscribe(func(e events.Event) {
		switch e.Type {
		case events.PixelDraw:
			draws++
		case events.PixelDrawAggregate:
			aggregates++
		}
	})

	drag(g, Point{1, 1}, Point{2, 1}, Point{2, 1}, Point{3, 1})

	for x := 1; x <= 3; x++ {
		assert.Equal(t, ColorIndex(2), cellIndex(t, g, x, 1))
	}
	assert.Equal(t, 3, draws, "duplicate move cell is deduplicated")
	assert.Equal(t, 1, aggregates, "one aggregate per gesture")
	assert.Equal(t, StateIdle, g.Context().State)
}

func TestPointer_EraseAndOutOfBounds(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160A)
	g.SetCell(Point{0, 0}, 1, events.BehaviorInternal)

	g.SetTool(ToolErase)
	// wanders off the grid mid-drag; must not panic, off cells skipped
	drag(g, Point{0, 0}, Point{-1, 0}, Point{0, -1})

	assert.Equal(t, NoInk, cellIndex(t, g, 0, 0))
}

func TestPointer_ColorPick(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160A)
	g.SetCell(Point{2, 2}, 3, events.BehaviorInternal)
	g.SetTool(ToolDraw)
	g.SetActiveColor(1)

	g.Pointer(PointerEvent{Action: PointerDown, Button: ButtonLeft, Alt: true, Cell: Point{2, 2}})
	assert.Equal(t, ColorIndex(3), g.ActiveColor())
	assert.Equal(t, StateIdle, g.Context().State, "pick is a one-shot, no draw state entered")

	g.Pointer(PointerEvent{Action: PointerDown, Button: ButtonMiddle, Cell: Point{0, 0}})
	assert.Equal(t, NoInk, g.ActiveColor(), "picking an empty cell selects no ink")
}

func TestPointer_RectFilledGesture(t *testing.T) {
	g := newGrid(t, 3, 3, mode.Mode160A)
	g.SetTool(ToolRectFilled)
	g.SetActiveColor(1)

	drag(g, Point{0, 0}, Point{2, 2})

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			assert.Equal(t, ColorIndex(1), cellIndex(t, g, x, y), "cell %d,%d", x, y)
		}
	}
	assert.Empty(t, g.Preview(), "preview cleared after commit")
}

func TestPointer_RectOutlineGesture(t *testing.T) {
	g := newGrid(t, 3, 3, mode.Mode160A)
	g.SetTool(ToolRect)
	g.SetActiveColor(1)

	drag(g, Point{0, 0}, Point{2, 2})

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			want := ColorIndex(1)
			if x == 1 && y == 1 {
				want = NoInk
			}
			assert.Equal(t, want, cellIndex(t, g, x, y), "cell %d,%d", x, y)
		}
	}
}

func TestPointer_PreviewReplacedNotAccumulated(t *testing.T) {
	g := newGrid(t, 10, 10, mode.Mode160A)
	g.SetTool(ToolLine)
	g.SetActiveColor(1)

	g.Pointer(PointerEvent{Action: PointerDown, Button: ButtonLeft, Cell: Point{0, 0}})
	g.Pointer(PointerEvent{Action: PointerMove, Button: ButtonLeft, Cell: Point{9, 0}})
	assert.Len(t, g.Preview(), 10)

	// retreat: stale preview cells must disappear
	g.Pointer(PointerEvent{Action: PointerMove, Button: ButtonLeft, Cell: Point{2, 0}})
	assert.Len(t, g.Preview(), 3)

	for p := range g.Preview() {
		cell, _ := g.Cell(p)
		assert.True(t, cell.Empty(), "preview never touches real cells")
	}
}

func TestPointer_SelectionDrag(t *testing.T) {
	g := newGrid(t, 8, 8, mode.Mode160A)
	g.SetTool(ToolSelect)

	drag(g, Point{5, 4}, Point{2, 1})

	require.Equal(t, StateSelected, g.Context().State)
	require.NotNil(t, g.Context().Selection)
	assert.Equal(t, Selection{X: 2, Y: 1, Width: 4, Height: 4}, *g.Context().Selection)

	g.ClearSelection()
	assert.Equal(t, StateIdle, g.Context().State)
	assert.Nil(t, g.Context().Selection)
}

func TestSetDisplayMode_EmitsOnce(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160A)

	var changes int
	g.Events().Subscribe(func(e events.Event) {
		if e.Type == events.DisplayModeChange {
			changes++
		}
	})

	g.SetDisplayMode(mode.Mode320A)
	g.SetDisplayMode(mode.Mode320A)
	assert.Equal(t, 1, changes)
	assert.Equal(t, mode.Mode320A, g.DisplayMode())
}

func TestColorAt_StaleIndexAfterModeSwitch(t *testing.T) {
	g := newGrid(t, 4, 4, mode.Mode160B)
	g.SetCell(Point{0, 0}, 12, events.BehaviorInternal)

	require.NotNil(t, g.ColorAt(Point{0, 0}))

	// 160A only has 4 colors; the stored index goes stale, not fatal
	g.SetDisplayMode(mode.Mode160A)
	assert.Nil(t, g.ColorAt(Point{0, 0}))
	assert.Equal(t, ColorIndex(12), cellIndex(t, g, 0, 0), "stored data is untouched")
}
