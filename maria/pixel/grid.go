package pixel

import (
	"fmt"
	"log/slog"

	"github.com/mpalumbo/go-maria/maria/events"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
)

// Grid is the editable pixel grid plus everything needed to interpret it:
// active display mode, palette reference, current ink, and the draw-state
// machine. All mutation flows through tool dispatch; the grid performs no
// work outside a call into it.
type Grid struct {
	width, height int
	cells         [][]PixelInfo // row-major, cells[y][x]

	displayMode   mode.DisplayMode
	set           *palette.Set
	activePalette int
	activeColor   ColorIndex
	kangaroo      bool

	// display scaling hints carried with the project, not used by the core
	pixelWidth, pixelHeight int

	tool    Tool
	ctx     DrawContext
	origin  Point // anchor cell of the drag in progress
	last    Point // previous visited cell, for dedupe
	hasLast bool
	preview map[Point]ColorIndex

	bus *events.Bus
}

// New creates a grid of the given size with every cell empty. Width is
// checked against the mode's hard ceiling.
func New(width, height int, m mode.DisplayMode, set *palette.Set) (*Grid, error) {
	g := &Grid{
		displayMode: m,
		set:         set,
		activeColor: 1,
		pixelWidth:  1,
		pixelHeight: 1,
		preview:     make(map[Point]ColorIndex),
		bus:         events.NewBus(),
	}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Events exposes the grid's signal bus for UI, history and persistence
// layers to subscribe on.
func (g *Grid) Events() *events.Bus { return g.bus }

func (g *Grid) Width() int                    { return g.width }
func (g *Grid) Height() int                   { return g.height }
func (g *Grid) DisplayMode() mode.DisplayMode { return g.displayMode }
func (g *Grid) PaletteSet() *palette.Set      { return g.set }
func (g *Grid) ActivePalette() int            { return g.activePalette }
func (g *Grid) ActiveColor() ColorIndex       { return g.activeColor }
func (g *Grid) KangarooMode() bool            { return g.kangaroo }
func (g *Grid) Tool() Tool                    { return g.tool }
func (g *Grid) Context() DrawContext          { return g.ctx }
func (g *Grid) PixelSize() (int, int)         { return g.pixelWidth, g.pixelHeight }

// SetTool selects the active tool. Changing tools does not interrupt a
// gesture; the state machine only consults the tool on pointer-down.
func (g *Grid) SetTool(t Tool) { g.tool = t }

// SetPixelSize records the display scaling hints persisted with the grid.
func (g *Grid) SetPixelSize(w, h int) {
	g.pixelWidth, g.pixelHeight = w, h
}

// Resize grows or shrinks the grid, preserving cell contents at matching
// coordinates and filling new cells with no ink.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("pixel: grid size %dx%d is not positive", width, height)
	}
	if max := g.displayMode.MaxWidth(); max > 0 && width > max {
		return fmt.Errorf("pixel: width %d exceeds mode %s ceiling of %d cells", width, g.displayMode, max)
	}

	cells := make([][]PixelInfo, height)
	for y := range cells {
		row := make([]PixelInfo, width)
		for x := range row {
			row[x] = PixelInfo{ModeColorIndex: NoInk}
		}
		if y < g.height {
			copy(row, g.cells[y][:minInt(width, g.width)])
		}
		cells[y] = row
	}
	g.cells = cells
	g.width, g.height = width, height
	return nil
}

// InBounds reports whether the point addresses a live cell.
func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Cell returns the cell at p, reporting whether p was in bounds.
func (g *Grid) Cell(p Point) (PixelInfo, bool) {
	if !g.InBounds(p) {
		return PixelInfo{ModeColorIndex: NoInk}, false
	}
	return g.cells[p.Y][p.X], true
}

// SetCell writes one cell and emits a PixelDraw signal. Out-of-bounds
// coordinates are skipped with a diagnostic: pointer cells routinely land
// just outside the grid mid-gesture and must never be fatal.
func (g *Grid) SetCell(p Point, index ColorIndex, tag events.Behavior) bool {
	if !g.InBounds(p) {
		slog.Debug("pixel: skipping out-of-bounds cell", "x", p.X, "y", p.Y)
		return false
	}
	g.cells[p.Y][p.X] = PixelInfo{ModeColorIndex: index}
	g.bus.Publish(events.Event{Type: events.PixelDraw, X: p.X, Y: p.Y, Tag: tag})
	return true
}

// SetDisplayMode reinterprets the grid under a new mode. Cell data is kept
// as-is; stale indexes simply resolve to nothing until redrawn.
func (g *Grid) SetDisplayMode(m mode.DisplayMode) {
	if m == g.displayMode {
		return
	}
	if max := m.MaxWidth(); max > 0 && g.width > max {
		slog.Warn("pixel: grid wider than new mode's ceiling, cells beyond it will not pack",
			"width", g.width, "mode", m.String(), "max", max)
	}
	g.displayMode = m
	g.bus.Publish(events.Event{Type: events.DisplayModeChange, Data: m})
}

// SetActivePalette changes which palette resolves palette-relative colors.
func (g *Grid) SetActivePalette(i int) {
	if i < 0 || i >= palette.MaxPalettes {
		slog.Debug("pixel: ignoring out-of-range palette", "palette", i)
		return
	}
	g.activePalette = i
	g.bus.Publish(events.Event{Type: events.PaletteChange, Data: i})
}

// SetActiveColor changes the current ink.
func (g *Grid) SetActiveColor(index ColorIndex) {
	g.activeColor = index
	g.bus.Publish(events.Event{Type: events.PaletteChange, Data: index})
}

// SetKangarooMode toggles the kangaroo submode flag.
func (g *Grid) SetKangarooMode(on bool) { g.kangaroo = on }

// Colors resolves the grid's current selectable color list.
func (g *Grid) Colors() []mode.ModeColor {
	return g.displayMode.Colors(g.set, g.activePalette, g.kangaroo)
}

// ColorAt resolves one cell's mode color, or nil for empty and stale cells.
func (g *Grid) ColorAt(p Point) mode.ModeColor {
	cell, ok := g.Cell(p)
	if !ok || cell.Empty() {
		return nil
	}
	return g.displayMode.ColorAt(g.set, g.activePalette, int(cell.ModeColorIndex), g.kangaroo)
}

// RowIndexes returns row y as plain ints for byte packing, NoInk included
// as mode.NoInk.
func (g *Grid) RowIndexes(y int) []int {
	row := make([]int, g.width)
	for x := range row {
		row[x] = int(g.cells[y][x].ModeColorIndex)
	}
	return row
}

// LoadCells restores cell contents wholesale, without per-cell signals.
// Used by persistence rebuilding a grid whose dimensions already match;
// oversized input is clipped.
func (g *Grid) LoadCells(data [][]PixelInfo) {
	for y, row := range data {
		if y >= g.height {
			break
		}
		for x, cell := range row {
			if x >= g.width {
				break
			}
			g.cells[y][x] = cell
		}
	}
}

// Preview returns the live shape-preview overlay. The overlay never
// touches the real cells until the gesture commits.
func (g *Grid) Preview() map[Point]ColorIndex {
	out := make(map[Point]ColorIndex, len(g.preview))
	for p, c := range g.preview {
		out[p] = c
	}
	return out
}

// Pointer dispatches one pointer event through the state machine and the
// active tool. Each call is one atomic, serializable step.
func (g *Grid) Pointer(e PointerEvent) {
	e.Tool = g.tool

	if e.pick() {
		g.pickColor(e.Cell)
		return
	}

	prev := g.ctx
	next := Transition(g.ctx, e)

	switch e.Action {
	case PointerDown:
		switch next.State {
		case StateDrawing:
			g.origin = e.Cell
			g.hasLast = false
			clear(g.preview)
			g.visit(e.Cell)
		case StateSelecting:
			g.origin = e.Cell
		}

	case PointerMove:
		switch g.ctx.State {
		case StateDrawing:
			g.visit(e.Cell)
		case StateSelecting:
			sel := rectBetween(g.origin, e.Cell)
			next.Selection = &sel
		}

	case PointerUp:
		if g.ctx.State == StateDrawing {
			g.commitPreview()
			g.bus.Publish(events.Event{Type: events.PixelDrawAggregate, Tag: events.BehaviorUser})
		}
	}

	g.ctx = next
	if next.State != prev.State {
		g.bus.Publish(events.Event{Type: events.DrawStateChange, Data: next.State})
	}
}

// ClearSelection drops any live selection and returns to idle.
func (g *Grid) ClearSelection() {
	if g.ctx.State != StateSelecting && g.ctx.State != StateSelected {
		return
	}
	g.ctx = DrawContext{State: StateIdle}
	g.bus.Publish(events.Event{Type: events.DrawStateChange, Data: StateIdle})
}

// visit applies the active tool to one cell of the drag, deduplicated
// against the immediately previous cell to bound per-event work.
func (g *Grid) visit(cell Point) {
	if g.hasLast && cell == g.last {
		return
	}
	g.last = cell
	g.hasLast = true

	switch {
	case g.tool.IsShape():
		g.rebuildPreview(cell)
	case g.tool == ToolDraw:
		g.SetCell(cell, g.activeColor, events.BehaviorUser)
	case g.tool == ToolErase:
		g.SetCell(cell, NoInk, events.BehaviorUser)
	case g.tool == ToolDropper:
		g.pickColor(cell)
	case g.tool == ToolFill:
		g.FloodFill(cell, g.activeColor)
	}
}

// pickColor sets the active ink from the cell under the cursor.
func (g *Grid) pickColor(cell Point) {
	info, ok := g.Cell(cell)
	if !ok {
		slog.Debug("pixel: color pick outside grid", "x", cell.X, "y", cell.Y)
		return
	}
	g.SetActiveColor(info.ModeColorIndex)
}

// commitPreview writes any pending shape preview into the real grid and
// clears the overlay.
func (g *Grid) commitPreview() {
	for p, index := range g.preview {
		g.SetCell(p, index, events.BehaviorInternal)
	}
	clear(g.preview)
}

// rebuildPreview recomputes the overlay for the shape from the drag origin
// to the current cell. The overlay is replaced wholesale on every move,
// never accumulated.
func (g *Grid) rebuildPreview(cell Point) {
	clear(g.preview)
	for _, p := range g.shapeCells(g.origin, cell) {
		if g.InBounds(p) {
			g.preview[p] = g.activeColor
		}
	}
}
