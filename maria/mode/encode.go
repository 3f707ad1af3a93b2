package mode

import (
	"errors"
	"fmt"
)

var (
	// ErrRowSize reports a pixel row whose length is not a whole number
	// of packed bytes.
	ErrRowSize = errors.New("mode: row length is not a multiple of pixels per byte")
	// ErrPackingUnsupported reports a mode without a byte packer.
	ErrPackingUnsupported = errors.New("mode: byte packing not supported yet")
)

// NoInk is the cell value for "nothing drawn". Packers encode it as zero.
const NoInk = -1

// PackRow packs a row of mode-color-indexes into hardware bytes,
// PixelsPerByte cells per byte in left-to-right order. The row length must
// be an exact multiple of PixelsPerByte; a short or ragged row means the
// caller's grid is corrupt, so that is an error rather than padding.
func (m DisplayMode) PackRow(row []int) ([]byte, error) {
	perByte := m.PixelsPerByte()
	if len(row)%perByte != 0 {
		return nil, fmt.Errorf("%w: mode %s packs %d pixels per byte, row has %d",
			ErrRowSize, m, perByte, len(row))
	}

	switch m {
	case Mode160A, Mode320A:
		return packTwoBit(row), nil
	case Mode160B:
		return packNibbles(row), nil
	case None, Mode320B, Mode320C, Mode320D:
		return nil, fmt.Errorf("%w: mode %s", ErrPackingUnsupported, m)
	}
	panic(unreachable(m))
}

// packTwoBit places each cell's index (mod 4) into a two-bit field, most
// significant field first: index << (6 - 2*slot).
func packTwoBit(row []int) []byte {
	out := make([]byte, 0, len(row)/4)
	for i := 0; i < len(row); i += 4 {
		var b byte
		for slot := 0; slot < 4; slot++ {
			index := row[i+slot]
			if index <= NoInk {
				continue
			}
			b |= byte(index%4) << (6 - 2*slot)
		}
		out = append(out, b)
	}
	return out
}

// packNibbles encodes 160B: index 0 stays zero (transparent); higher
// indexes split into a color field 1..3 and a palette-group field, packed
// as group<<2|color into the high or low nibble by slot position.
func packNibbles(row []int) []byte {
	nibble := func(index int) byte {
		if index <= 0 {
			return 0
		}
		color := (index-1)%3 + 1
		group := (index - 1) / 3
		return byte(group<<2 | color)
	}

	out := make([]byte, 0, len(row)/2)
	for i := 0; i < len(row); i += 2 {
		out = append(out, nibble(row[i])<<4|nibble(row[i+1]))
	}
	return out
}
