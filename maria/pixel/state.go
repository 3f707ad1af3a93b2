package pixel

// DrawState is the grid's gesture state. Exactly one tool can be in
// progress at a time; every tool entry point is gated on this.
type DrawState int

const (
	StateIdle DrawState = iota
	StateDrawing
	StateSelecting
	StateSelected
)

func (s DrawState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateSelecting:
		return "selecting"
	case StateSelected:
		return "selected"
	}
	return "unknown"
}

// Selection is an axis-aligned rectangle in grid coordinates. It exists
// only while the draw state is selecting or selected.
type Selection struct {
	X, Y, Width, Height int
}

// Empty reports a zero-area selection.
func (s Selection) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Contains reports whether the point lies inside the rectangle.
func (s Selection) Contains(p Point) bool {
	return p.X >= s.X && p.X < s.X+s.Width && p.Y >= s.Y && p.Y < s.Y+s.Height
}

// rectBetween is the inclusive bounding rectangle of two corner cells.
func rectBetween(a, b Point) Selection {
	x0, x1 := minInt(a.X, b.X), maxInt(a.X, b.X)
	y0, y1 := minInt(a.Y, b.Y), maxInt(a.Y, b.Y)
	return Selection{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}
}

// DrawContext is the full externally-inspectable state-machine value:
// the gesture state plus the live selection, if any.
type DrawContext struct {
	State     DrawState
	Selection *Selection
}

// PointerButton identifies which button produced a pointer event.
type PointerButton int

const (
	ButtonNone PointerButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// PointerAction is the kind of pointer event.
type PointerAction int

const (
	PointerDown PointerAction = iota
	PointerMove
	PointerUp
)

// PointerEvent is one pointer gesture step, already translated into grid
// cell coordinates by the front end.
type PointerEvent struct {
	Action PointerAction
	Button PointerButton
	Alt    bool
	Cell   Point
	Tool   Tool
}

// pick reports whether the event is a one-shot color pick: alt-click or
// middle-click, in any state, without entering a draw state.
func (e PointerEvent) pick() bool {
	return e.Action == PointerDown && (e.Alt || e.Button == ButtonMiddle)
}

// Transition computes the next draw context for one pointer event. It is a
// pure function of its inputs so the transition table can be tested
// without any pointer-event plumbing.
func Transition(ctx DrawContext, e PointerEvent) DrawContext {
	if e.pick() {
		return ctx
	}

	switch e.Action {
	case PointerDown:
		if e.Button != ButtonLeft {
			return ctx
		}
		if e.Tool == ToolSelect {
			sel := rectBetween(e.Cell, e.Cell)
			return DrawContext{State: StateSelecting, Selection: &sel}
		}
		return DrawContext{State: StateDrawing}

	case PointerMove:
		// movement never changes state; the live selection rectangle is
		// maintained by the grid while selecting
		return ctx

	case PointerUp:
		switch ctx.State {
		case StateDrawing:
			return DrawContext{State: StateIdle}
		case StateSelecting:
			return DrawContext{State: StateSelected, Selection: ctx.Selection}
		}
	}
	return ctx
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
