package pixel

import (
	"errors"
	"log/slog"

	"github.com/mpalumbo/go-maria/maria/events"
)

// ErrFlipUnsupported reports a flip axis without an implementation.
var ErrFlipUnsupported = errors.New("pixel: horizontal flip not implemented")

// FlipAxis selects a flip orientation.
type FlipAxis int

const (
	FlipVertical FlipAxis = iota
	FlipHorizontal
)

// SelectionPixelData snapshots the cells inside the live selection,
// row-major. Coordinates outside the grid are skipped with a diagnostic;
// a selection can legitimately overhang if the grid was resized after it
// was made. Returns nil when nothing is selected.
func (g *Grid) SelectionPixelData() [][]PixelInfo {
	sel := g.ctx.Selection
	if sel == nil || sel.Empty() {
		return nil
	}
	return g.SelectionSnapshot(*sel)
}

// SelectionSnapshot copies the cells of an arbitrary rectangle with the
// same clipping rules as SelectionPixelData.
func (g *Grid) SelectionSnapshot(sel Selection) [][]PixelInfo {
	data := make([][]PixelInfo, 0, sel.Height)
	for y := sel.Y; y < sel.Y+sel.Height; y++ {
		row := make([]PixelInfo, 0, sel.Width)
		for x := sel.X; x < sel.X+sel.Width; x++ {
			cell, ok := g.Cell(Point{x, y})
			if !ok {
				slog.Debug("pixel: selection cell outside grid, skipping", "x", x, "y", y)
				continue
			}
			row = append(row, cell)
		}
		data = append(data, row)
	}
	return data
}

// EraseSelection clears every in-bounds cell of the rectangle. A zero-area
// rectangle does nothing.
func (g *Grid) EraseSelection(rect Selection) {
	if rect.Empty() {
		return
	}
	for y := rect.Y; y < rect.Y+rect.Height; y++ {
		for x := rect.X; x < rect.X+rect.Width; x++ {
			g.SetCell(Point{x, y}, NoInk, events.BehaviorInternal)
		}
	}
	g.bus.Publish(events.Event{Type: events.PixelDrawAggregate, Tag: events.BehaviorInternal})
}

// FlipSelection mirrors the rectangle's cells in place. Only the vertical
// axis is implemented; asking for horizontal fails loudly rather than
// quietly doing nothing.
func (g *Grid) FlipSelection(rect Selection, axis FlipAxis) error {
	if axis != FlipVertical {
		return ErrFlipUnsupported
	}
	if rect.Empty() {
		return nil
	}

	for i := 0; i < rect.Height/2; i++ {
		top := rect.Y + i
		bottom := rect.Y + rect.Height - 1 - i
		for x := rect.X; x < rect.X+rect.Width; x++ {
			a, okA := g.Cell(Point{x, top})
			b, okB := g.Cell(Point{x, bottom})
			if !okA || !okB {
				slog.Debug("pixel: flip row pair outside grid, skipping", "x", x, "top", top, "bottom", bottom)
				continue
			}
			g.SetCell(Point{x, top}, b.ModeColorIndex, events.BehaviorInternal)
			g.SetCell(Point{x, bottom}, a.ModeColorIndex, events.BehaviorInternal)
		}
	}
	g.bus.Publish(events.Event{Type: events.PixelDrawAggregate, Tag: events.BehaviorInternal})
	return nil
}

// ApplyPartialPixelData pastes a previously captured block at location,
// clipped both to the grid and to the block's own dimensions. Returns how
// many cells were actually written.
func (g *Grid) ApplyPartialPixelData(data [][]PixelInfo, location Point) int {
	written := 0
	for dy, row := range data {
		for dx, cell := range row {
			if g.SetCell(Point{location.X + dx, location.Y + dy}, cell.ModeColorIndex, events.BehaviorInternal) {
				written++
			}
		}
	}
	if written > 0 {
		g.bus.Publish(events.Event{Type: events.PixelDrawAggregate, Tag: events.BehaviorInternal})
	}
	return written
}
