package pixel

import (
	"math"

	"github.com/mpalumbo/go-maria/maria/events"
)

// FloodFill replaces the 4-connected region of cells sharing the clicked
// cell's exact color index with ink. Iterative with an explicit stack and
// seen-set: grids are easily large enough to blow the call stack, and
// same-colored cycles (any filled rectangle) would revisit forever
// without the seen-set.
func (g *Grid) FloodFill(start Point, ink ColorIndex) {
	cell, ok := g.Cell(start)
	if !ok {
		return
	}
	target := cell.ModeColorIndex
	if target == ink {
		return
	}

	seen := map[Point]bool{start: true}
	stack := []Point{start}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		g.SetCell(p, ink, events.BehaviorInternal)

		for _, n := range []Point{{p.X + 1, p.Y}, {p.X - 1, p.Y}, {p.X, p.Y + 1}, {p.X, p.Y - 1}} {
			if seen[n] || !g.InBounds(n) {
				continue
			}
			if g.cells[n.Y][n.X].ModeColorIndex != target {
				continue
			}
			seen[n] = true
			stack = append(stack, n)
		}
	}
}

// shapeCells rasterizes the active shape tool between the drag's two
// corner cells.
func (g *Grid) shapeCells(origin, cursor Point) []Point {
	switch g.tool {
	case ToolLine:
		return lineCells(origin, cursor)
	case ToolRect:
		return rectCells(origin, cursor, false)
	case ToolRectFilled:
		return rectCells(origin, cursor, true)
	case ToolEllipse:
		return ellipseCells(origin, cursor, false)
	case ToolEllipseFilled:
		return ellipseCells(origin, cursor, true)
	}
	return nil
}

// lineCells walks a single-cell-wide line from a to b. Shallow slopes step
// by column, steep ones by row in a rotated coordinate system, plotting
// round(m*step) on the other axis with the intercept fixed at the origin.
// Contiguity matters more than exactness here.
func lineCells(a, b Point) []Point {
	dx, dy := b.X-a.X, b.Y-a.Y

	if dx == 0 {
		cells := make([]Point, 0, absInt(dy)+1)
		for y := 0; ; y += sign(dy) {
			cells = append(cells, Point{a.X, a.Y + y})
			if y == dy {
				break
			}
		}
		return cells
	}

	steep := absInt(dy) > absInt(dx)
	major, minor := dx, dy
	if steep {
		major, minor = dy, dx
	}
	m := float64(minor) / float64(major)

	cells := make([]Point, 0, absInt(major)+1)
	for i := 0; ; i += sign(major) {
		j := int(math.Round(m * float64(i)))
		if steep {
			cells = append(cells, Point{a.X + j, a.Y + i})
		} else {
			cells = append(cells, Point{a.X + i, a.Y + j})
		}
		if i == major {
			break
		}
	}
	return cells
}

// rectCells collects the bounding rectangle of the two corners: every cell
// when filled, otherwise only those on the perimeter rows and columns.
func rectCells(a, b Point, filled bool) []Point {
	r := rectBetween(a, b)
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1

	var cells []Point
	for y := r.Y; y <= y1; y++ {
		for x := r.X; x <= x1; x++ {
			if filled || x == r.X || x == x1 || y == r.Y || y == y1 {
				cells = append(cells, Point{x, y})
			}
		}
	}
	return cells
}

// ellipseCells rasterizes an ellipse inscribed in the corners' bounding
// box, testing the quadratic form dx²/w² + dy²/h² against 1. The outline
// keeps cells where round(3v) == 3: testing v == 1 exactly leaves a
// sparse, disconnected ring on a discrete grid, so a coarse band is used
// instead. The filled variant includes the outline band so the two stay
// consistent on the same bounding box.
func ellipseCells(a, b Point, filled bool) []Point {
	r := rectBetween(a, b)
	w, h := r.Width/2, r.Height/2
	if w == 0 || h == 0 {
		// degenerate box, nothing to inscribe; fall back to the rectangle
		return rectCells(a, b, true)
	}
	cx, cy := r.X+w, r.Y+h

	var cells []Point
	for y := r.Y; y < r.Y+r.Height; y++ {
		for x := r.X; x < r.X+r.Width; x++ {
			dx, dy := float64(x-cx), float64(y-cy)
			v := dx*dx/float64(w*w) + dy*dy/float64(h*h)

			onOutline := math.Round(v*3) == 3
			if filled {
				if v < 1 || onOutline {
					cells = append(cells, Point{x, y})
				}
			} else if onOutline {
				cells = append(cells, Point{x, y})
			}
		}
	}
	return cells
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
