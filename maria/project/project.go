// Package project reads and writes the persisted grid format. Loading is
// deliberately strict: anything that is not exactly the documented shape
// is a structural error, never silently defaulted, because a malformed
// file means the data is corrupt.
package project

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mpalumbo/go-maria/maria/mode"
	"github.com/mpalumbo/go-maria/maria/palette"
	"github.com/mpalumbo/go-maria/maria/pixel"
)

// gridFile is the wire shape of one persisted grid.
type gridFile struct {
	Width           int                 `json:"width"`
	Height          int                 `json:"height"`
	PixelWidth      int                 `json:"pixelWidth"`
	PixelHeight     int                 `json:"pixelHeight"`
	DisplayModeName string              `json:"displayModeName"`
	PaletteID       int                 `json:"paletteId"`
	ActiveColor     int                 `json:"activeColor"`
	PixelData       [][]pixel.PixelInfo `json:"pixelData"`
}

var requiredKeys = []string{
	"width", "height", "pixelWidth", "pixelHeight",
	"displayModeName", "paletteId", "activeColor", "pixelData",
}

// Save writes the grid to w in the persisted format.
func Save(w io.Writer, g *pixel.Grid) error {
	pw, ph := g.PixelSize()
	data := make([][]pixel.PixelInfo, g.Height())
	for y := range data {
		row := make([]pixel.PixelInfo, g.Width())
		for x := range row {
			row[x], _ = g.Cell(pixel.Point{X: x, Y: y})
		}
		data[y] = row
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(gridFile{
		Width:           g.Width(),
		Height:          g.Height(),
		PixelWidth:      pw,
		PixelHeight:     ph,
		DisplayModeName: g.DisplayMode().String(),
		PaletteID:       g.ActivePalette(),
		ActiveColor:     int(g.ActiveColor()),
		PixelData:       data,
	})
}

// SaveFile writes the grid to path.
func SaveFile(path string, g *pixel.Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("project: %w", err)
	}
	defer f.Close()

	if err := Save(f, g); err != nil {
		return err
	}
	return f.Close()
}

// Load reads one persisted grid and rebuilds it against the given palette
// set.
func Load(r io.Reader, set *palette.Set) (*pixel.Grid, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	return Decode(raw, set)
}

// LoadFile reads a persisted grid from path.
func LoadFile(path string, set *palette.Set) (*pixel.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	defer f.Close()
	return Load(f, set)
}

// Decode validates and rebuilds one persisted grid.
func Decode(data []byte, set *palette.Set) (*pixel.Grid, error) {
	// every documented key must be present before types are checked;
	// encoding/json would happily zero-fill a missing field
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("project: not a JSON object: %w", err)
	}
	for _, k := range requiredKeys {
		if _, ok := keys[k]; !ok {
			return nil, fmt.Errorf("project: missing field %q", k)
		}
	}

	var file gridFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}

	m, err := mode.Parse(file.DisplayModeName)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	if file.PixelWidth <= 0 || file.PixelHeight <= 0 {
		return nil, fmt.Errorf("project: pixel size %dx%d is not positive", file.PixelWidth, file.PixelHeight)
	}
	if file.PaletteID < 0 || file.PaletteID >= palette.MaxPalettes {
		return nil, fmt.Errorf("project: paletteId %d out of range", file.PaletteID)
	}
	if file.ActiveColor < int(pixel.NoInk) {
		return nil, fmt.Errorf("project: activeColor %d out of range", file.ActiveColor)
	}
	if len(file.PixelData) != file.Height {
		return nil, fmt.Errorf("project: pixelData has %d rows, header says %d", len(file.PixelData), file.Height)
	}
	for y, row := range file.PixelData {
		if len(row) != file.Width {
			return nil, fmt.Errorf("project: pixelData row %d has %d cells, header says %d", y, len(row), file.Width)
		}
	}

	g, err := pixel.New(file.Width, file.Height, m, set)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	g.SetPixelSize(file.PixelWidth, file.PixelHeight)
	g.SetActivePalette(file.PaletteID)
	g.SetActiveColor(pixel.ColorIndex(file.ActiveColor))
	g.LoadCells(file.PixelData)
	return g, nil
}
