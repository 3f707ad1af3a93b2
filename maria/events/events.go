// Package events carries the mutation signals the editor core emits.
// Surrounding layers (UI repaint, undo history, persistence) observe the
// core exclusively through these; the core never calls them directly.
package events

// Type identifies a mutation signal.
type Type int

const (
	// PixelDraw fires for every individual cell change.
	PixelDraw Type = iota
	// PixelDrawAggregate fires once per completed tool gesture. This is
	// the unit an undo history should snapshot on.
	PixelDrawAggregate
	// DrawStateChange fires when the draw-state machine transitions.
	DrawStateChange
	// DisplayModeChange fires when the grid is reinterpreted under a new mode.
	DisplayModeChange
	// PaletteChange fires when the active palette or ink changes.
	PaletteChange
)

// Behavior tags a PixelDraw with its origin: a direct user gesture or an
// internal operation such as paste or shape commit.
type Behavior string

const (
	BehaviorUser     Behavior = "user"
	BehaviorInternal Behavior = "internal"
)

// Event is one emitted signal. X, Y and Tag are meaningful for PixelDraw;
// Data carries signal-specific payloads for the rest.
type Event struct {
	Type Type
	X, Y int
	Tag  Behavior
	Data any
}

// Handler receives events synchronously, on the emitting goroutine.
type Handler func(Event)

// Bus fans events out to subscribers in subscription order. It is not
// goroutine safe; the editor core is single threaded by contract.
type Bus struct {
	handlers []Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

// Publish delivers the event to every subscriber before returning.
func (b *Bus) Publish(e Event) {
	for _, h := range b.handlers {
		h(e)
	}
}
