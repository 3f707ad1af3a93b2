// Package pixel owns the editable grid: its cells, the draw-state machine
// that turns pointer gestures into mutations, and the tool algorithms.
package pixel

import (
	"encoding/json"
	"fmt"
)

// ColorIndex is a mode-color-index: a position into the active display
// mode's color list. It is meaningless without the mode that resolves it.
type ColorIndex int

// NoInk marks a cell with nothing drawn in it.
const NoInk ColorIndex = -1

// PixelInfo is one grid cell.
type PixelInfo struct {
	ModeColorIndex ColorIndex
}

// Empty reports whether the cell has no ink.
func (p PixelInfo) Empty() bool { return p.ModeColorIndex == NoInk }

// MarshalJSON writes the persisted cell shape, with NoInk as null.
func (p PixelInfo) MarshalJSON() ([]byte, error) {
	if p.ModeColorIndex == NoInk {
		return []byte(`{"modeColorIndex":null}`), nil
	}
	return []byte(fmt.Sprintf(`{"modeColorIndex":%d}`, p.ModeColorIndex)), nil
}

// UnmarshalJSON reads the persisted cell shape. A missing key or a
// non-integer value is a structural error, never coerced to a default.
func (p *PixelInfo) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("pixel: malformed cell: %w", err)
	}
	raw, ok := fields["modeColorIndex"]
	if !ok {
		return fmt.Errorf("pixel: cell is missing modeColorIndex")
	}
	if string(raw) == "null" {
		p.ModeColorIndex = NoInk
		return nil
	}
	var index int
	if err := json.Unmarshal(raw, &index); err != nil {
		return fmt.Errorf("pixel: modeColorIndex must be an integer or null: %w", err)
	}
	if index < 0 {
		return fmt.Errorf("pixel: modeColorIndex %d out of range", index)
	}
	p.ModeColorIndex = ColorIndex(index)
	return nil
}

// Point is a grid coordinate, column x and row y.
type Point struct {
	X, Y int
}

// Tool identifies one of the editing tools.
type Tool int

const (
	ToolDraw Tool = iota
	ToolErase
	ToolDropper
	ToolFill
	ToolLine
	ToolRect
	ToolRectFilled
	ToolEllipse
	ToolEllipseFilled
	ToolSelect
)

// Tools lists every tool in declaration order.
var Tools = []Tool{
	ToolDraw, ToolErase, ToolDropper, ToolFill, ToolLine,
	ToolRect, ToolRectFilled, ToolEllipse, ToolEllipseFilled, ToolSelect,
}

func (t Tool) String() string {
	switch t {
	case ToolDraw:
		return "draw"
	case ToolErase:
		return "erase"
	case ToolDropper:
		return "dropper"
	case ToolFill:
		return "fill"
	case ToolLine:
		return "line"
	case ToolRect:
		return "rect"
	case ToolRectFilled:
		return "rect-filled"
	case ToolEllipse:
		return "ellipse"
	case ToolEllipseFilled:
		return "ellipse-filled"
	case ToolSelect:
		return "select"
	}
	return "unknown"
}

// IsShape reports whether the tool previews a whole shape during the drag
// and commits it on pointer-up, rather than painting cell by cell.
func (t Tool) IsShape() bool {
	switch t {
	case ToolLine, ToolRect, ToolRectFilled, ToolEllipse, ToolEllipseFilled:
		return true
	}
	return false
}
