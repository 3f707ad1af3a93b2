package mode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpalumbo/go-maria/maria/palette"
)

func fullSet(t *testing.T) *palette.Set {
	t.Helper()
	return palette.DefaultSet()
}

func TestColors_Arity(t *testing.T) {
	set := fullSet(t)

	tests := []struct {
		mode  DisplayMode
		arity int
	}{
		{None, 1 + 8*3},
		{Mode160A, 4},
		{Mode160B, 13},
		{Mode320A, 4},
		{Mode320B, 13},
		{Mode320C, 12},
		{Mode320D, 4},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			colors := tt.mode.Colors(set, 0, false)
			assert.Len(t, colors, tt.arity)
			for i, c := range colors {
				assert.Len(t, []ColorPart(c), tt.mode.PartsPerPixel(), "entry %d", i)
			}
		})
	}
}

func TestColors_160A(t *testing.T) {
	set := fullSet(t)
	colors := Mode160A.Colors(set, 5, false)

	require.Len(t, colors, 4)
	assert.Equal(t, Transparent, colors[0][0].Kind)
	for slot := 0; slot < 3; slot++ {
		part := colors[1+slot][0]
		assert.Equal(t, PaletteSlot, part.Kind)
		assert.Equal(t, 5, part.Palette)
		assert.Equal(t, slot, part.Slot)
	}
}

func TestColors_160B_MaskedGroup(t *testing.T) {
	set := fullSet(t)

	// active palettes 0..3 resolve against palettes 0..3, 4..7 against 4..7
	for _, tt := range []struct {
		active   int
		basePal  int
	}{
		{0, 0}, {3, 0}, {4, 4}, {7, 4},
	} {
		colors := Mode160B.Colors(set, tt.active, false)
		require.Len(t, colors, 13)
		assert.Equal(t, Transparent, colors[0][0].Kind)
		for i := 1; i <= 12; i++ {
			part := colors[i][0]
			assert.Equal(t, PaletteSlot, part.Kind)
			assert.Equal(t, tt.basePal+(i-1)/3, part.Palette, "active %d entry %d", tt.active, i)
			assert.Equal(t, (i-1)%3, part.Slot)
		}
	}
}

func TestColors_320A_PairTable(t *testing.T) {
	set := fullSet(t)
	colors := Mode320A.Colors(set, 2, false)

	require.Len(t, colors, 4)
	for i, want := range []struct{ left, right PartKind }{
		{Transparent, Transparent},
		{Transparent, PaletteSlot},
		{PaletteSlot, Transparent},
		{PaletteSlot, PaletteSlot},
	} {
		assert.Equal(t, want.left, colors[i][0].Kind, "entry %d left", i)
		assert.Equal(t, want.right, colors[i][1].Kind, "entry %d right", i)
	}
	assert.Equal(t, 2, colors[3][0].Palette)
	assert.Equal(t, 2, colors[3][0].Slot)
}

func TestColors_320D_QuadrantTables(t *testing.T) {
	set := fullSet(t)

	// the active palette's low two bits decide which sides fall back to
	// background instead of transparent
	for _, tt := range []struct {
		active      int
		leftOff     PartKind
		rightOff    PartKind
	}{
		{4, Transparent, Transparent},
		{5, Transparent, Background},
		{6, Background, Transparent},
		{7, Background, Background},
	} {
		colors := Mode320D.Colors(set, tt.active, false)
		require.Len(t, colors, 4)
		assert.Equal(t, tt.leftOff, colors[0][0].Kind, "active %d", tt.active)
		assert.Equal(t, tt.rightOff, colors[0][1].Kind, "active %d", tt.active)
	}
}

func TestColors_320C_NoTransparent(t *testing.T) {
	set := fullSet(t)
	colors := Mode320C.Colors(set, 0, false)

	require.Len(t, colors, 12)
	for i, c := range colors {
		for j, part := range c {
			assert.NotEqual(t, Transparent, part.Kind, "entry %d part %d", i, j)
			if part.Kind == PaletteSlot {
				assert.Equal(t, 1, part.Slot)
			}
		}
	}
}

func TestColors_None_WholeSet(t *testing.T) {
	set := fullSet(t)
	colors := None.Colors(set, 6, false)

	require.Len(t, colors, 25)
	assert.Equal(t, Background, colors[0][0].Kind)
	// active palette is ignored entirely; entries walk the set in order
	for pal := 0; pal < 8; pal++ {
		for slot := 0; slot < 3; slot++ {
			part := colors[1+pal*3+slot][0]
			assert.Equal(t, pal, part.Palette)
			assert.Equal(t, slot, part.Slot)
		}
	}
}

func TestColors_KangarooReplacesTransparent(t *testing.T) {
	set := fullSet(t)

	for _, m := range []DisplayMode{Mode160A, Mode160B, Mode320A, Mode320B, Mode320D} {
		for i, c := range m.Colors(set, 0, true) {
			for j, part := range c {
				assert.NotEqual(t, Transparent, part.Kind,
					"%s entry %d part %d should be background under kangaroo", m, i, j)
			}
		}
	}
}

func TestColorAt_OutOfRange(t *testing.T) {
	set := fullSet(t)

	assert.Nil(t, Mode160A.ColorAt(set, 0, -1, false))
	assert.Nil(t, Mode160A.ColorAt(set, 0, 4, false))
	assert.NotNil(t, Mode160A.ColorAt(set, 0, 3, false))
}
