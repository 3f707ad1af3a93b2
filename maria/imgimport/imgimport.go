// Package imgimport converts arbitrary images into editable grids: the
// image is quantized down to the display mode's color capacity, then each
// quantized color is matched to the nearest resolvable mode color.
package imgimport

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/ericpauley/go-quantize/quantize"

	"github.com/mpalumbo/go-maria/maria/events"
	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
	"github.com/mpalumbo/go-maria/maria/pixel"
)

// ErrNoPaintableColors reports a mode/palette combination with nothing to
// match image colors against.
var ErrNoPaintableColors = errors.New("imgimport: mode resolves no paintable colors")

// alpha below this is treated as nothing drawn
const alphaThreshold = 0x80

// candidate is one paintable mode-color-index with its displayable color.
type candidate struct {
	index int
	rgba  color.RGBA
}

// FromImage builds a grid the size of the image's bounds, inked with the
// nearest mode colors. Pixels that are mostly transparent stay empty.
func FromImage(img image.Image, m mode.DisplayMode, set *palette.Set, activePalette int, kangaroo bool) (*pixel.Grid, error) {
	b := img.Bounds()
	g, err := pixel.New(b.Dx(), b.Dy(), m, set)
	if err != nil {
		return nil, fmt.Errorf("imgimport: %w", err)
	}
	g.SetActivePalette(activePalette)
	g.SetKangarooMode(kangaroo)

	candidates := paintableColors(m, set, activePalette, kangaroo)
	if len(candidates) == 0 {
		return nil, ErrNoPaintableColors
	}

	pm := quantized(img, len(candidates))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := pm.At(b.Min.X+x, b.Min.Y+y)
			if _, _, _, a := c.RGBA(); a>>8 < alphaThreshold {
				continue
			}
			g.SetCell(pixel.Point{X: x, Y: y}, pixel.ColorIndex(nearest(candidates, c)), events.BehaviorInternal)
		}
	}
	return g, nil
}

// FromFile decodes an image file and imports it. PNG is the expected
// format; anything image.Decode understands works.
func FromFile(path string, m mode.DisplayMode, set *palette.Set, activePalette int, kangaroo bool) (*pixel.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imgimport: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("imgimport: decoding %s: %w", path, err)
	}
	return FromImage(img, m, set, activePalette, kangaroo)
}

// paintableColors resolves the mode's color list into concrete RGBA
// candidates. Entries that draw nothing at all are skipped; two-part
// entries average their sides, which is how they blend at 320-mode dot
// pitch anyway.
func paintableColors(m mode.DisplayMode, set *palette.Set, activePalette int, kangaroo bool) []candidate {
	var out []candidate
	for i, mc := range m.Colors(set, activePalette, kangaroo) {
		if rgba, ok := mc.RGBA(set); ok {
			out = append(out, candidate{index: i, rgba: rgba})
		}
	}
	return out
}

// quantized reduces the image to at most n colors with the median-cut
// quantizer, keeping alpha intact.
func quantized(img image.Image, n int) *image.Paletted {
	q := quantize.MedianCutQuantizer{AddTransparent: true}
	pm := image.NewPaletted(img.Bounds(), q.Quantize(make(color.Palette, 0, n+1), img))
	draw.Draw(pm, img.Bounds(), img, img.Bounds().Min, draw.Src)
	return pm
}

// nearest picks the candidate with the smallest squared RGB distance.
func nearest(candidates []candidate, c color.Color) int {
	r, g, b, _ := c.RGBA()
	best, bestDist := candidates[0].index, 1<<62
	for _, cand := range candidates {
		dr := int(r>>8) - int(cand.rgba.R)
		dg := int(g>>8) - int(cand.rgba.G)
		db := int(b>>8) - int(cand.rgba.B)
		if d := dr*dr + dg*dg + db*db; d < bestDist {
			best, bestDist = cand.index, d
		}
	}
	return best
}

// ExportPNG renders the grid's resolved colors back out as a PNG, one
// image pixel per cell. Empty and unresolvable cells come out fully
// transparent.
func ExportPNG(path string, g *pixel.Grid) error {
	img := image.NewRGBA(image.Rect(0, 0, g.Width(), g.Height()))
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			mc := g.ColorAt(pixel.Point{X: x, Y: y})
			if mc == nil {
				continue
			}
			if rgba, ok := mc.RGBA(g.PaletteSet()); ok {
				img.SetRGBA(x, y, rgba)
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imgimport: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("imgimport: encoding %s: %w", path, err)
	}
	return f.Close()
}
