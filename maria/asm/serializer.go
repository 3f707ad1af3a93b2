package asm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/pixel"
)

// ScanlineByteBudget is the most packed bytes MARIA can fetch per display
// line.
const ScanlineByteBudget = 0x100

// RowStride is the address distance between consecutive scan lines of
// graphics data.
const RowStride = 0x100

var (
	// ErrNoGrids reports an empty batch.
	ErrNoGrids = errors.New("asm: nothing to serialize")
	// ErrModeMismatch reports grids that do not share one display mode.
	ErrModeMismatch = errors.New("asm: grids in a batch must share a display mode")
)

// Labeling selects how each row's address directive is expressed:
// a symbolic per-row label, or the literal computed address. Never both.
type Labeling int

const (
	LabelLiteral Labeling = iota
	LabelSymbolic
)

// CommentLevel controls how chatty the generated text is.
type CommentLevel int

const (
	// CommentsNone emits bare directives.
	CommentsNone CommentLevel = iota
	// CommentsAddresses annotates only the ORG lines.
	CommentsAddresses
	// CommentsFull annotates every line.
	CommentsFull
)

// Config is the output shape of one serialization run.
type Config struct {
	Indent       string
	ByteRadix    Radix
	AddressRadix Radix
	Labeling     Labeling
	Label        string // base symbol, symbolic labeling only
	BaseAddress  int
	Comments     CommentLevel
}

// DefaultConfig matches the output most 7800 toolchains expect.
func DefaultConfig() Config {
	return Config{
		Indent:       "    ",
		ByteRadix:    Hex,
		AddressRadix: Hex,
		Labeling:     LabelLiteral,
		Label:        "GFX",
		BaseAddress:  0x1800,
		Comments:     CommentsAddresses,
	}
}

// Warning records a scan line whose combined byte width exceeds the
// hardware fetch budget. Serialization still completes; the caller decides
// whether to block on it.
type Warning struct {
	RowsFromBottom int
	Bytes          int
}

func (w Warning) String() string {
	return fmt.Sprintf("scan line %d holds %d bytes, budget is %d", w.RowsFromBottom, w.Bytes, ScanlineByteBudget)
}

// Result is the generated text plus any capacity warnings.
type Result struct {
	Lines    []string
	Warnings []Warning
}

// Text joins the generated lines.
func (r Result) Text() string {
	return strings.Join(r.Lines, "\n") + "\n"
}

// Serialize packs every grid in the batch and emits the interleaved byte
// lines. All grids must share one export-capable display mode. Shorter
// grids are padded up to the tallest with fully transparent rows at the
// top, so the batch aligns on shared scan lines.
func Serialize(cfg Config, grids ...*pixel.Grid) (Result, error) {
	if len(grids) == 0 {
		return Result{}, ErrNoGrids
	}

	m := grids[0].DisplayMode()
	tallest := 0
	for _, g := range grids {
		if g.DisplayMode() != m {
			return Result{}, fmt.Errorf("%w: %s vs %s", ErrModeMismatch, m, g.DisplayMode())
		}
		if g.Height() > tallest {
			tallest = g.Height()
		}
	}
	if !m.CanExportToASM() {
		return Result{}, fmt.Errorf("%w: mode %s", mode.ErrPackingUnsupported, m)
	}

	packed, err := packBatch(m, grids, tallest)
	if err != nil {
		return Result{}, err
	}

	var res Result
	warned := false
	for fromBottom := 0; fromBottom < tallest; fromBottom++ {
		row := tallest - 1 - fromBottom
		res.Lines = append(res.Lines, cfg.orgLine(fromBottom))

		total := 0
		for i := range grids {
			bytes := packed[i][row]
			total += len(bytes)
			res.Lines = append(res.Lines, cfg.byteLine(bytes, i, fromBottom))
		}

		// only the first offending row is recorded
		if total > ScanlineByteBudget && !warned {
			warned = true
			res.Warnings = append(res.Warnings, Warning{RowsFromBottom: fromBottom, Bytes: total})
		}
	}
	return res, nil
}

// packBatch packs every row of every grid up front so structural errors
// surface before any text is produced. Rows above a short grid's top are
// synthesized as fully transparent.
func packBatch(m mode.DisplayMode, grids []*pixel.Grid, tallest int) ([][][]byte, error) {
	packed := make([][][]byte, len(grids))
	for i, g := range grids {
		pad := tallest - g.Height()
		rows := make([][]byte, tallest)
		for row := 0; row < tallest; row++ {
			var indexes []int
			if row < pad {
				indexes = emptyRow(g.Width())
			} else {
				indexes = g.RowIndexes(row - pad)
			}
			bytes, err := m.PackRow(indexes)
			if err != nil {
				return nil, fmt.Errorf("asm: grid %d row %d: %w", i, row, err)
			}
			rows[row] = bytes
		}
		packed[i] = rows
	}
	return packed, nil
}

func emptyRow(width int) []int {
	row := make([]int, width)
	for i := range row {
		row[i] = mode.NoInk
	}
	return row
}

// orgLine emits the address directive for one shared scan line.
func (c Config) orgLine(fromBottom int) string {
	var addr string
	if c.Labeling == LabelSymbolic {
		addr = fmt.Sprintf("%s_%d", c.Label, fromBottom)
	} else {
		addr = FormatAddress(c.BaseAddress+RowStride*fromBottom, c.AddressRadix)
	}

	line := fmt.Sprintf("%sORG %s", c.Indent, addr)
	if c.Comments >= CommentsAddresses {
		line += fmt.Sprintf(" ; line %d", fromBottom)
	}
	return line
}

// byteLine emits one grid's bytes for one scan line.
func (c Config) byteLine(bytes []byte, grid, fromBottom int) string {
	nums := make([]string, len(bytes))
	for i, b := range bytes {
		nums[i] = FormatByte(b, c.ByteRadix)
	}

	line := fmt.Sprintf("%s.byte %s", c.Indent, strings.Join(nums, ","))
	if c.Comments >= CommentsFull {
		line += fmt.Sprintf(" ; object %d line %d", grid, fromBottom)
	}
	return line
}
