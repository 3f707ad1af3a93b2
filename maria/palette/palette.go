// Package palette models MARIA palette sets: up to eight palettes of three
// color slots each, sharing a single background color. Colors are raw 7800
// color bytes (hue in the high nibble, luminance in the low nibble).
package palette

import (
	"fmt"
	"image/color"
	"math"
)

const (
	// MaxPalettes is the number of palettes a set can hold.
	MaxPalettes = 8
	// SlotsPerPalette is the number of selectable colors per palette.
	// Slot indexes are 0..2; slot 0 maps to hardware color 1.
	SlotsPerPalette = 3
)

// Color is a MARIA color byte.
type Color byte

// Hue returns the high-nibble hue (0 = grey).
func (c Color) Hue() int { return int(c >> 4) }

// Luminance returns the low-nibble luminance.
func (c Color) Luminance() int { return int(c & 0x0F) }

// RGBA converts the color byte to a displayable color using an NTSC
// phase approximation. Not cycle-exact against any particular CRT profile,
// but monotonic in luminance and stable across the sixteen hues.
func (c Color) RGBA() color.RGBA {
	y := float64(c.Luminance()) / 15.0

	var i, q float64
	if hue := c.Hue(); hue > 0 {
		// hues 1..15 sweep the chroma circle, starting near gold
		phase := (float64(hue-1)*24.0 - 58.0) * math.Pi / 180.0
		const saturation = 0.28
		i = saturation * math.Cos(phase)
		q = saturation * math.Sin(phase)
	}

	clamp := func(v float64) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v * 255)
	}

	return color.RGBA{
		R: clamp(y + 0.956*i + 0.621*q),
		G: clamp(y - 0.272*i - 0.647*q),
		B: clamp(y - 1.106*i + 1.703*q),
		A: 0xFF,
	}
}

// Palette holds the three selectable color slots of one MARIA palette.
type Palette struct {
	slots [SlotsPerPalette]Color
}

// NewPalette builds a palette from its three slot colors.
func NewPalette(c0, c1, c2 Color) Palette {
	return Palette{slots: [SlotsPerPalette]Color{c0, c1, c2}}
}

// Color returns the color in the given slot (0..2).
func (p Palette) Color(slot int) (Color, error) {
	if slot < 0 || slot >= SlotsPerPalette {
		return 0, fmt.Errorf("palette: no such color slot %d", slot)
	}
	return p.slots[slot], nil
}

// SetColor replaces the color in the given slot.
func (p *Palette) SetColor(slot int, c Color) error {
	if slot < 0 || slot >= SlotsPerPalette {
		return fmt.Errorf("palette: no such color slot %d", slot)
	}
	p.slots[slot] = c
	return nil
}

// Set is a palette-set: an ordered list of palettes plus the shared
// background color. The editor core only ever reads from a Set.
type Set struct {
	background Color
	palettes   []Palette
}

// NewSet builds a palette-set. At most MaxPalettes palettes are accepted.
func NewSet(background Color, palettes ...Palette) (*Set, error) {
	if len(palettes) > MaxPalettes {
		return nil, fmt.Errorf("palette: set holds at most %d palettes, got %d", MaxPalettes, len(palettes))
	}
	s := &Set{background: background}
	s.palettes = append(s.palettes, palettes...)
	return s, nil
}

// Background returns the set's shared background color.
func (s *Set) Background() Color { return s.background }

// SetBackground replaces the shared background color.
func (s *Set) SetBackground(c Color) { s.background = c }

// Palettes returns the ordered palettes. The slice must not be mutated.
func (s *Set) Palettes() []Palette { return s.palettes }

// Palette returns the palette at index i, reporting whether it exists.
func (s *Set) Palette(i int) (Palette, bool) {
	if i < 0 || i >= len(s.palettes) {
		return Palette{}, false
	}
	return s.palettes[i], true
}

// DefaultSet returns a full eight-palette set with a spread of hues,
// suitable as a starting point for a new project.
func DefaultSet() *Set {
	palettes := make([]Palette, MaxPalettes)
	for i := range palettes {
		hue := Color(i+1) << 4
		palettes[i] = NewPalette(hue|0x04, hue|0x08, hue|0x0C)
	}
	s, err := NewSet(0x00, palettes...)
	if err != nil {
		panic(err)
	}
	return s
}
