// Package asm turns finalized pixel grids into assembly-ready byte lines,
// laid out the way MARIA fetches them: one shared scan line at a time,
// bottom row first.
package asm

import (
	"fmt"
	"strings"
)

// Radix selects the textual base for one numeric field.
type Radix int

const (
	// Hex prints $-prefixed uppercase hexadecimal.
	Hex Radix = iota
	// Binary prints %-prefixed bits, zero padded to whole nibbles.
	Binary
	// Decimal prints plain base ten.
	Decimal
)

// ParseRadix resolves a CLI radix name.
func ParseRadix(name string) (Radix, error) {
	switch strings.ToLower(name) {
	case "hex":
		return Hex, nil
	case "bin", "binary":
		return Binary, nil
	case "dec", "decimal":
		return Decimal, nil
	}
	return Hex, fmt.Errorf("asm: unknown radix %q", name)
}

// FormatNumber renders v in the radix, padded to at least nibbles*4 bits
// of significance (hex digits, binary bits; decimal ignores padding).
func FormatNumber(v int, r Radix, nibbles int) string {
	switch r {
	case Hex:
		return fmt.Sprintf("$%0*X", nibbles, v)
	case Binary:
		return fmt.Sprintf("%%%0*b", nibbles*4, v)
	case Decimal:
		return fmt.Sprintf("%d", v)
	}
	panic(fmt.Sprintf("asm: impossible radix %d", int(r)))
}

// FormatByte renders one packed byte.
func FormatByte(b byte, r Radix) string {
	return FormatNumber(int(b), r, 2)
}

// FormatAddress renders a 16-bit address.
func FormatAddress(addr int, r Radix) string {
	return FormatNumber(addr, r, 4)
}
