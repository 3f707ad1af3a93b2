// Package maria wires the editor core together: one grid, its palette
// set, and the project file it came from. Front ends drive everything
// through the grid and this façade.
package maria

import (
	"errors"
	"fmt"

	"github.com/mpalumbo/go-maria/maria/asm"
	"github.com/mpalumbo/go-maria/maria/events"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
	"github.com/mpalumbo/go-maria/maria/pixel"
	"github.com/mpalumbo/go-maria/maria/project"
)

// ErrNoPath reports a save without a project path.
var ErrNoPath = errors.New("maria: project has no file path")

// Editor owns one open project.
type Editor struct {
	grid  *pixel.Grid
	set   *palette.Set
	path  string
	dirty bool
}

// NewEditor creates an editor around a fresh grid.
func NewEditor(width, height int, m mode.DisplayMode) (*Editor, error) {
	set := palette.DefaultSet()
	g, err := pixel.New(width, height, m, set)
	if err != nil {
		return nil, err
	}
	e := &Editor{grid: g, set: set}
	e.watch()
	return e, nil
}

// OpenEditor loads an existing project file.
func OpenEditor(path string) (*Editor, error) {
	set := palette.DefaultSet()
	g, err := project.LoadFile(path, set)
	if err != nil {
		return nil, err
	}
	e := &Editor{grid: g, set: set, path: path}
	e.watch()
	return e, nil
}

// watch marks the editor dirty on every committed mutation.
func (e *Editor) watch() {
	e.grid.Events().Subscribe(func(ev events.Event) {
		switch ev.Type {
		case events.PixelDrawAggregate, events.DisplayModeChange:
			e.dirty = true
		}
	})
}

// Grid is the open project's grid.
func (e *Editor) Grid() *pixel.Grid { return e.grid }

// PaletteSet is the project's palette set.
func (e *Editor) PaletteSet() *palette.Set { return e.set }

// Path is the project file, empty for unsaved projects.
func (e *Editor) Path() string { return e.path }

// Dirty reports unsaved committed mutations.
func (e *Editor) Dirty() bool { return e.dirty }

// Save writes the project back to its file.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	return e.SaveAs(e.path)
}

// SaveAs writes the project to path and adopts it.
func (e *Editor) SaveAs(path string) error {
	if err := project.SaveFile(path, e.grid); err != nil {
		return err
	}
	e.path = path
	e.dirty = false
	return nil
}

// Export serializes the grid to assembly text.
func (e *Editor) Export(cfg asm.Config) (asm.Result, error) {
	res, err := asm.Serialize(cfg, e.grid)
	if err != nil {
		return asm.Result{}, fmt.Errorf("maria: %w", err)
	}
	return res, nil
}
