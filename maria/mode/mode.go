// Package mode implements the MARIA display modes: the constants derived
// from each mode name, the resolution of mode-color-indexes into concrete
// palette references, and the packing of pixel rows into hardware bytes.
package mode

import "fmt"

// DisplayMode identifies one of the MARIA bitmap encodings. It is a closed
// set; every switch over it carries an unreachable default so an impossible
// value fails fast instead of producing wrong bytes.
type DisplayMode int

const (
	// None is the unrestricted mode: no hardware palette grouping, every
	// color of the set selectable at once. Used for free-form sketching
	// before committing to a hardware mode.
	None DisplayMode = iota
	Mode160A
	Mode160B
	Mode320A
	Mode320B
	Mode320C
	Mode320D
)

// Modes lists every display mode in declaration order.
var Modes = []DisplayMode{None, Mode160A, Mode160B, Mode320A, Mode320B, Mode320C, Mode320D}

// String returns the mode's canonical name.
func (m DisplayMode) String() string {
	switch m {
	case None:
		return "none"
	case Mode160A:
		return "160A"
	case Mode160B:
		return "160B"
	case Mode320A:
		return "320A"
	case Mode320B:
		return "320B"
	case Mode320C:
		return "320C"
	case Mode320D:
		return "320D"
	}
	panic(unreachable(m))
}

// Parse resolves a mode name to its DisplayMode. Unknown names are an
// error: mode names only ever come from trusted persisted data or the UI,
// so a miss means corruption.
func Parse(name string) (DisplayMode, error) {
	for _, m := range Modes {
		if m.String() == name {
			return m, nil
		}
	}
	return None, fmt.Errorf("mode: unknown display mode %q", name)
}

// PixelsPerByte returns how many grid cells one packed byte encodes.
func (m DisplayMode) PixelsPerByte() int {
	switch m {
	case None:
		return 1
	case Mode160A, Mode320A, Mode320D:
		return 4
	case Mode160B, Mode320B, Mode320C:
		return 2
	}
	panic(unreachable(m))
}

// PartsPerPixel returns how many color slots one visual cell occupies.
// The 320 modes interleave two logical pixels per cell.
func (m DisplayMode) PartsPerPixel() int {
	switch m {
	case None, Mode160A, Mode160B:
		return 1
	case Mode320A, Mode320B, Mode320C, Mode320D:
		return 2
	}
	panic(unreachable(m))
}

// MaxWidth returns the hard width ceiling in cells. Zero means no ceiling,
// which only None has.
func (m DisplayMode) MaxWidth() int {
	switch m {
	case None:
		return 0
	case Mode160A, Mode160B, Mode320A, Mode320B, Mode320C, Mode320D:
		return 160
	}
	panic(unreachable(m))
}

// HasSinglePalette reports whether a pixel's colors come from exactly one
// palette, as opposed to spanning a masked group or the whole set.
func (m DisplayMode) HasSinglePalette() bool {
	switch m {
	case Mode160A, Mode320A, Mode320D:
		return true
	case None, Mode160B, Mode320B, Mode320C:
		return false
	}
	panic(unreachable(m))
}

// SupportsKangarooMode reports whether the mode offers transparent entries
// that kangaroo mode converts to background.
func (m DisplayMode) SupportsKangarooMode() bool {
	switch m {
	case Mode160A, Mode160B, Mode320A, Mode320B, Mode320D:
		return true
	case None, Mode320C:
		return false
	}
	panic(unreachable(m))
}

// CanExportToASM reports whether byte packing is implemented for the mode.
func (m DisplayMode) CanExportToASM() bool {
	switch m {
	case Mode160A, Mode160B, Mode320A:
		return true
	case None, Mode320B, Mode320C, Mode320D:
		return false
	}
	panic(unreachable(m))
}

func unreachable(m DisplayMode) string {
	return fmt.Sprintf("mode: impossible display mode %d", int(m))
}
