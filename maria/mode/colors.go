package mode

import (
	"fmt"
	"image/color"

	"github.com/mpalumbo/go-maria/maria/palette"
)

// PartKind distinguishes what one color slot of a resolved mode color
// actually draws.
type PartKind int

const (
	// Transparent draws nothing.
	Transparent PartKind = iota
	// Background draws the palette-set's shared background color.
	Background
	// PaletteSlot draws a specific palette's color slot.
	PaletteSlot
)

// ColorPart is one slot of a resolved mode color: a label for UI display
// plus the reference it draws. Palette and Slot are meaningful only when
// Kind is PaletteSlot.
type ColorPart struct {
	Label   string
	Kind    PartKind
	Palette int
	Slot    int
}

// ModeColor is the resolved meaning of one mode-color-index: one part per
// PartsPerPixel, in left-to-right order.
type ModeColor []ColorPart

func transparentPart() ColorPart { return ColorPart{Label: "T", Kind: Transparent} }
func backgroundPart() ColorPart  { return ColorPart{Label: "BG", Kind: Background} }

func slotPart(pal, slot int) ColorPart {
	return ColorPart{
		Label:   fmt.Sprintf("P%dC%d", pal, slot),
		Kind:    PaletteSlot,
		Palette: pal,
		Slot:    slot,
	}
}

// offPart is the "pixel not set" part: transparent normally, background
// when kangaroo mode disables transparency.
func offPart(kangaroo bool) ColorPart {
	if kangaroo {
		return backgroundPart()
	}
	return transparentPart()
}

// maskedGroup returns the first palette index of the four-palette group the
// active palette belongs to. MARIA splits the eight palettes into two
// groups of four selected by the palette index's high bit.
func maskedGroup(activePalette int) int {
	return activePalette & 0x4
}

// Colors resolves the ordered selectable color list for the mode. The
// list's index is the mode-color-index stored in grid cells, so the
// construction order is part of the persisted format and must not change.
func (m DisplayMode) Colors(set *palette.Set, activePalette int, kangaroo bool) []ModeColor {
	if !m.SupportsKangarooMode() {
		kangaroo = false
	}
	off := offPart(kangaroo)

	switch m {
	case None:
		// Background first, then every color of every palette in slot
		// order. No active-palette concept at all.
		colors := []ModeColor{{backgroundPart()}}
		for pal := range set.Palettes() {
			for slot := 0; slot < palette.SlotsPerPalette; slot++ {
				colors = append(colors, ModeColor{slotPart(pal, slot)})
			}
		}
		return colors

	case Mode160A:
		colors := []ModeColor{{off}}
		for slot := 0; slot < palette.SlotsPerPalette; slot++ {
			colors = append(colors, ModeColor{slotPart(activePalette, slot)})
		}
		return colors

	case Mode160B:
		base := maskedGroup(activePalette)
		colors := []ModeColor{{off}}
		for group := 0; group < 4; group++ {
			for slot := 0; slot < palette.SlotsPerPalette; slot++ {
				colors = append(colors, ModeColor{slotPart(base+group, slot)})
			}
		}
		return colors

	case Mode320A:
		// Two one-bit pixels per cell; a set bit draws the active
		// palette's slot 2.
		on := slotPart(activePalette, 2)
		return pairTable(off, off, on)

	case Mode320D:
		// Like 320A, but the active palette's low two bits leak into the
		// cleared pixels: a set low bit turns that side's off state into
		// background.
		leftOff, rightOff := off, off
		if activePalette&0x2 != 0 {
			leftOff = backgroundPart()
		}
		if activePalette&0x1 != 0 {
			rightOff = backgroundPart()
		}
		on := slotPart(activePalette, 2)
		return pairTable(leftOff, rightOff, on)

	case Mode320B:
		// Each 160B index reinterpreted as two two-bit pixels: the color
		// bits supply the pixels' high bits and the palette-group bits
		// the low bits. Pixel value 0 is off, 1..3 select a slot of the
		// group's base palette.
		base := maskedGroup(activePalette)
		part := func(v int) ColorPart {
			if v == 0 {
				return off
			}
			return slotPart(base, v-1)
		}
		colors := []ModeColor{{off, off}}
		for i := 1; i <= 12; i++ {
			c := (i-1)%3 + 1
			g := (i - 1) / 3
			left := ((c>>1)&1)<<1 | (g>>1)&1
			right := (c&1)<<1 | g&1
			colors = append(colors, ModeColor{part(left), part(right)})
		}
		return colors

	case Mode320C:
		// No transparent entries: each masked-group palette contributes
		// its slot 1 paired against background on either side.
		base := maskedGroup(activePalette)
		colors := make([]ModeColor, 0, 12)
		for group := 0; group < 4; group++ {
			on := slotPart(base+group, 1)
			colors = append(colors,
				ModeColor{on, on},
				ModeColor{on, backgroundPart()},
				ModeColor{backgroundPart(), on})
		}
		return colors
	}
	panic(unreachable(m))
}

// pairTable builds the four-entry two-part table shared by 320A and 320D:
// entry index bits select which side draws the on part.
func pairTable(leftOff, rightOff, on ColorPart) []ModeColor {
	colors := make([]ModeColor, 0, 4)
	for i := 0; i < 4; i++ {
		left, right := leftOff, rightOff
		if i&0x2 != 0 {
			left = on
		}
		if i&0x1 != 0 {
			right = on
		}
		colors = append(colors, ModeColor{left, right})
	}
	return colors
}

// RGBA resolves the mode color to one displayable color against the set,
// averaging two-part entries the way they blend at 320-mode dot pitch.
// Returns false when every part is transparent.
func (mc ModeColor) RGBA(set *palette.Set) (color.RGBA, bool) {
	var r, g, b, n int
	for _, part := range mc {
		var c palette.Color
		switch part.Kind {
		case Transparent:
			continue
		case Background:
			c = set.Background()
		case PaletteSlot:
			pal, ok := set.Palette(part.Palette)
			if !ok {
				continue
			}
			slot, err := pal.Color(part.Slot)
			if err != nil {
				continue
			}
			c = slot
		}
		rgba := c.RGBA()
		r += int(rgba.R)
		g += int(rgba.G)
		b += int(rgba.B)
		n++
	}
	if n == 0 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(r / n), G: uint8(g / n), B: uint8(b / n), A: 0xFF}, true
}

// ColorAt looks up one mode color by index. Out-of-range indexes resolve to
// nil: stale indexes are routine after a mode switch and the caller is
// expected to skip rendering, not crash.
func (m DisplayMode) ColorAt(set *palette.Set, activePalette, index int, kangaroo bool) ModeColor {
	colors := m.Colors(set, activePalette, kangaroo)
	if index < 0 || index >= len(colors) {
		return nil
	}
	return colors[index]
}
