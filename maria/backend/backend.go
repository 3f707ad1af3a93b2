// Package backend defines the surface a front end implements. Front ends
// own the event loop and the on-screen rendering; the editor core never
// calls into them except through the signals it emits.
package backend

import maria "github.com/mpalumbo/go-maria/maria"

// Config holds front-end configuration.
type Config struct {
	Title string
	// OnQuit, when set, is invoked once when the front end decides to
	// shut down (window close, quit key).
	OnQuit func()
}

// Backend runs one editor session on some display.
type Backend interface {
	// Init prepares the display. Required before Run.
	Init(config Config) error

	// Run drives the editor until the user quits. Blocking; the whole
	// session happens on the calling goroutine, matching the core's
	// single-threaded contract.
	Run(ed *maria.Editor) error

	// Cleanup restores the display on shutdown.
	Cleanup() error
}
