// Package terminal is the tcell front end: it paints the grid as
// double-width colored cells and translates terminal mouse and key events
// into the core's pointer events and operations.
package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	maria "github.com/mpalumbo/go-maria/maria"
	"github.com/mpalumbo/go-maria/maria/backend"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
	"github.com/mpalumbo/go-maria/maria/pixel"
)

const (
	// each grid cell is drawn two terminal columns wide to look square
	cellCols = 2
	gridTop  = 1 // row 0 is the status bar
	helpRows = 1
)

// Backend implements backend.Backend on a tcell screen.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	running bool

	// pressed tracks the left button between tcell events so press,
	// drag and release can be told apart.
	pressed bool
	status  string
}

// New creates an uninitialized terminal backend.
func New() *Backend {
	return &Backend{}
}

// Init sets up the tcell screen and enables mouse reporting.
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault)

	t.screen = screen
	t.running = true
	return nil
}

// Cleanup restores the terminal.
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

// Run drives the session until quit.
func (t *Backend) Run(ed *maria.Editor) error {
	if t.screen == nil {
		return fmt.Errorf("terminal: not initialized")
	}

	t.draw(ed)
	for t.running {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventResize:
			t.screen.Sync()
		case *tcell.EventKey:
			t.handleKey(ed, ev)
		case *tcell.EventMouse:
			t.handleMouse(ed, ev)
		case nil:
			t.running = false
			continue
		}
		t.draw(ed)
	}

	if t.config.OnQuit != nil {
		t.config.OnQuit()
	}
	return nil
}

func (t *Backend) quit() { t.running = false }

func (t *Backend) handleKey(ed *maria.Editor, ev *tcell.EventKey) {
	g := ed.Grid()

	switch ev.Key() {
	case tcell.KeyEscape:
		g.ClearSelection()
		return
	case tcell.KeyCtrlC:
		t.quit()
		return
	case tcell.KeyDelete, tcell.KeyBackspace2:
		if sel := g.Context().Selection; sel != nil {
			g.EraseSelection(*sel)
		}
		return
	}

	switch ev.Rune() {
	case 'q':
		t.quit()
	case 't':
		g.SetTool(nextTool(g.Tool()))
	case 'T':
		g.SetTool(prevTool(g.Tool()))
	case 'm':
		g.SetDisplayMode(nextMode(g.DisplayMode(), g.Width()))
	case 'k':
		g.SetKangarooMode(!g.KangarooMode())
	case '[':
		g.SetActivePalette((g.ActivePalette() + palette.MaxPalettes - 1) % palette.MaxPalettes)
	case ']':
		g.SetActivePalette((g.ActivePalette() + 1) % palette.MaxPalettes)
	case '-':
		g.SetActiveColor(cycleColor(g, -1))
	case '=', '+':
		g.SetActiveColor(cycleColor(g, 1))
	case 'F':
		if sel := g.Context().Selection; sel != nil {
			if err := g.FlipSelection(*sel, pixel.FlipVertical); err != nil {
				t.status = err.Error()
			}
		}
	case 'w':
		if err := ed.Save(); err != nil {
			t.status = err.Error()
		} else {
			t.status = "saved " + ed.Path()
		}
	}
}

func (t *Backend) handleMouse(ed *maria.Editor, ev *tcell.EventMouse) {
	g := ed.Grid()
	x, y := ev.Position()
	cell := pixel.Point{X: x / cellCols, Y: y - gridTop}

	buttons := ev.Buttons()
	alt := ev.Modifiers()&tcell.ModAlt != 0

	switch {
	case buttons&tcell.ButtonMiddle != 0:
		g.Pointer(pixel.PointerEvent{Action: pixel.PointerDown, Button: pixel.ButtonMiddle, Cell: cell})
	case buttons&tcell.ButtonPrimary != 0 && !t.pressed:
		t.pressed = true
		g.Pointer(pixel.PointerEvent{Action: pixel.PointerDown, Button: pixel.ButtonLeft, Alt: alt, Cell: cell})
	case buttons&tcell.ButtonPrimary != 0:
		g.Pointer(pixel.PointerEvent{Action: pixel.PointerMove, Button: pixel.ButtonLeft, Alt: alt, Cell: cell})
	case t.pressed:
		t.pressed = false
		g.Pointer(pixel.PointerEvent{Action: pixel.PointerUp, Button: pixel.ButtonLeft, Cell: cell})
	}
}

// draw repaints the whole screen. The grid is small enough that damage
// tracking is not worth having.
func (t *Backend) draw(ed *maria.Editor) {
	g := ed.Grid()
	t.screen.Clear()

	t.drawStatus(ed)
	preview := g.Preview()
	sel := g.Context().Selection

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			p := pixel.Point{X: x, Y: y}
			style, ch := t.cellStyle(g, p, preview, sel)
			for i := 0; i < cellCols; i++ {
				t.screen.SetContent(x*cellCols+i, y+gridTop, ch, nil, style)
			}
		}
	}

	t.drawHelp(g)
	t.screen.Show()
}

// cellStyle resolves one cell's on-screen appearance: preview overlay
// first, then real ink, empty cells as a faint checker glyph, selection
// shown reversed.
func (t *Backend) cellStyle(g *pixel.Grid, p pixel.Point, preview map[pixel.Point]pixel.ColorIndex, sel *pixel.Selection) (tcell.Style, rune) {
	style := tcell.StyleDefault
	ch := ' '

	index, inked := preview[p]
	if !inked {
		cell, _ := g.Cell(p)
		index, inked = cell.ModeColorIndex, !cell.Empty()
	}

	if inked {
		mc := g.DisplayMode().ColorAt(g.PaletteSet(), g.ActivePalette(), int(index), g.KangarooMode())
		if rgba, ok := mc.RGBA(g.PaletteSet()); ok {
			style = style.Background(tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B)))
		} else {
			// stale index under the current mode
			ch = '?'
		}
	} else {
		ch = '·'
		style = style.Foreground(tcell.ColorGray)
	}

	if sel != nil && sel.Contains(p) {
		style = style.Reverse(true)
	}
	return style, ch
}

func (t *Backend) drawStatus(ed *maria.Editor) {
	g := ed.Grid()
	dirty := ""
	if ed.Dirty() {
		dirty = " *"
	}
	line := fmt.Sprintf("%s%s | %s | mode %s | pal %d | ink %d | %s",
		ed.Path(), dirty, g.Tool(), g.DisplayMode(), g.ActivePalette(), g.ActiveColor(), t.status)
	t.putText(0, 0, line, tcell.StyleDefault.Reverse(true))
}

func (t *Backend) drawHelp(g *pixel.Grid) {
	_, h := t.screen.Size()
	help := "t/T tool  m mode  [/] palette  -/= ink  k kangaroo  F flip  Del erase  Esc clear  w save  q quit"
	t.putText(0, h-helpRows, help, tcell.StyleDefault.Dim(true))
}

func (t *Backend) putText(x, y int, s string, style tcell.Style) {
	w, _ := t.screen.Size()
	for i, r := range s {
		if x+i >= w {
			break
		}
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func nextTool(cur pixel.Tool) pixel.Tool {
	for i, tool := range pixel.Tools {
		if tool == cur {
			return pixel.Tools[(i+1)%len(pixel.Tools)]
		}
	}
	return pixel.ToolDraw
}

func prevTool(cur pixel.Tool) pixel.Tool {
	for i, tool := range pixel.Tools {
		if tool == cur {
			return pixel.Tools[(i+len(pixel.Tools)-1)%len(pixel.Tools)]
		}
	}
	return pixel.ToolDraw
}

// nextMode cycles display modes, skipping any whose width ceiling the
// grid already exceeds.
func nextMode(cur mode.DisplayMode, width int) mode.DisplayMode {
	start := 0
	for i, m := range mode.Modes {
		if m == cur {
			start = i
			break
		}
	}
	for step := 1; step < len(mode.Modes); step++ {
		m := mode.Modes[(start+step)%len(mode.Modes)]
		if max := m.MaxWidth(); max > 0 && width > max {
			slog.Debug("terminal: skipping mode, grid too wide", "mode", m.String(), "width", width)
			continue
		}
		return m
	}
	return cur
}

// cycleColor steps the active ink through the current color list,
// including the no-ink position just before index zero.
func cycleColor(g *pixel.Grid, dir int) pixel.ColorIndex {
	n := len(g.Colors())
	cur := int(g.ActiveColor())
	// positions run -1..n-1
	pos := (cur+1+dir+n+1)%(n+1) - 1
	return pixel.ColorIndex(pos)
}
