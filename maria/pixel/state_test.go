package pixel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	down := func(tool Tool) PointerEvent {
		return PointerEvent{Action: PointerDown, Button: ButtonLeft, Tool: tool, Cell: Point{2, 3}}
	}
	up := PointerEvent{Action: PointerUp, Button: ButtonLeft}

	tests := []struct {
		name  string
		start DrawContext
		event PointerEvent
		want  DrawState
	}{
		{"idle to drawing on left down", DrawContext{State: StateIdle}, down(ToolDraw), StateDrawing},
		{"idle to selecting with select tool", DrawContext{State: StateIdle}, down(ToolSelect), StateSelecting},
		{"drawing back to idle on up", DrawContext{State: StateDrawing}, up, StateIdle},
		{"selecting to selected on up", DrawContext{State: StateSelecting}, up, StateSelected},
		{"selected stays through movement", DrawContext{State: StateSelected}, PointerEvent{Action: PointerMove}, StateSelected},
		{"right button does not draw", DrawContext{State: StateIdle},
			PointerEvent{Action: PointerDown, Button: ButtonRight, Tool: ToolDraw}, StateIdle},
		{"alt click never changes state", DrawContext{State: StateSelected},
			PointerEvent{Action: PointerDown, Button: ButtonLeft, Alt: true, Tool: ToolDraw}, StateSelected},
		{"middle click never changes state", DrawContext{State: StateIdle},
			PointerEvent{Action: PointerDown, Button: ButtonMiddle, Tool: ToolDraw}, StateIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Transition(tt.start, tt.event)
			assert.Equal(t, tt.want, got.State)
		})
	}
}

func TestTransition_SelectionLifecycle(t *testing.T) {
	ctx := Transition(DrawContext{State: StateIdle},
		PointerEvent{Action: PointerDown, Button: ButtonLeft, Tool: ToolSelect, Cell: Point{4, 5}})
	require.NotNil(t, ctx.Selection)
	assert.Equal(t, Selection{X: 4, Y: 5, Width: 1, Height: 1}, *ctx.Selection)

	ctx = Transition(ctx, PointerEvent{Action: PointerUp, Button: ButtonLeft})
	assert.Equal(t, StateSelected, ctx.State)
	require.NotNil(t, ctx.Selection, "selection survives pointer-up")

	// re-entering a draw gesture drops the selection
	ctx = Transition(ctx, PointerEvent{Action: PointerDown, Button: ButtonLeft, Tool: ToolDraw})
	assert.Equal(t, StateDrawing, ctx.State)
	assert.Nil(t, ctx.Selection)
}

func TestRectBetween_Normalizes(t *testing.T) {
	assert.Equal(t,
		Selection{X: 1, Y: 2, Width: 4, Height: 3},
		rectBetween(Point{4, 2}, Point{1, 4}))
}
