package tilemap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dyvoker/isomap/internal/iso"
)

var (
	ErrEmptyMap     = errors.New("tilemap: empty map")
	ErrRaggedRow    = errors.New("tilemap: ragged row")
	ErrUnknownGlyph = errors.New("tilemap: unknown glyph")
)

// Glyphs used by Parse and Format, one rune per terrain.
var terrainGlyphs = [terrainCount]rune{
	TerrainGrass:     '.',
	TerrainForest:    'T',
	TerrainSand:      ':',
	TerrainWater:     '~',
	TerrainDeepWater: 'W',
	TerrainRoad:      '#',
	TerrainRock:      '^',
}

func glyphTerrain(r rune) (Terrain, bool) {
	for t, g := range terrainGlyphs {
		if g == r {
			return Terrain(t), true
		}
	}
	return 0, false
}

// Parse reads a map drawn one row per line. Blank lines and lines starting
// with '!' are skipped; every other line must have the same length.
func Parse(r io.Reader) (*TileMap, error) {
	var rows [][]Terrain
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), " \t\r")
		if text == "" || strings.HasPrefix(text, "!") {
			continue
		}
		row := make([]Terrain, 0, len(text))
		for col, g := range []rune(text) {
			t, ok := glyphTerrain(g)
			if !ok {
				return nil, fmt.Errorf("line %d col %d %q: %w", line, col, g, ErrUnknownGlyph)
			}
			row = append(row, t)
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("line %d has %d cells, want %d: %w", line, len(row), len(rows[0]), ErrRaggedRow)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyMap
	}

	tm := New(len(rows[0]), len(rows))
	for y, row := range rows {
		for x, t := range row {
			tm.SetTerrain(iso.GridCoord{Col: x, Row: y}, t)
		}
	}
	return tm, nil
}

// Format renders the map in the same text form Parse reads.
func (tm *TileMap) Format() string {
	var sb strings.Builder
	for row := 0; row < tm.Rows; row++ {
		for col := 0; col < tm.Cols; col++ {
			sb.WriteRune(terrainGlyphs[tm.Cells[row*tm.Cols+col].Terrain])
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
