// Package tilemap is the grid of terrain cells shown by the isometric view.
package tilemap

import "github.com/dyvoker/isomap/internal/iso"

// Terrain identifies the base surface of a cell.
type Terrain uint8

const (
	TerrainGrass     Terrain = iota // Default open ground
	TerrainForest                   // Dense trees
	TerrainSand                     // Beach / desert
	TerrainWater                    // Shallow water
	TerrainDeepWater                // Impassable water
	TerrainRoad                     // Paved road
	TerrainRock                     // Bare rock / mountain
	terrainCount                    // sentinel
)

var terrainNames = [terrainCount]string{
	TerrainGrass:     "grass",
	TerrainForest:    "forest",
	TerrainSand:      "sand",
	TerrainWater:     "water",
	TerrainDeepWater: "deep_water",
	TerrainRoad:      "road",
	TerrainRock:      "rock",
}

func (t Terrain) String() string {
	if t < terrainCount {
		return terrainNames[t]
	}
	return "unknown"
}

// terrainElevation returns the default raised height of a terrain type.
func terrainElevation(t Terrain) int8 {
	switch t {
	case TerrainDeepWater:
		return -1
	case TerrainForest:
		return 1
	case TerrainRock:
		return 2
	default:
		return 0
	}
}

// Cell represents one tile of the map.
type Cell struct {
	Terrain   Terrain
	Elevation int8 // relative height (0 = ground, -1 = sunken, +1 = raised)
}

// TileMap is a fixed-size grid of cells.
type TileMap struct {
	Cols  int
	Rows  int
	Cells []Cell // row-major: index = row*Cols + col
}

// New creates a tile map filled with grass.
func New(cols, rows int) *TileMap {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	return &TileMap{Cols: cols, Rows: rows, Cells: make([]Cell, cols*rows)}
}

// Width returns the number of columns.
func (tm *TileMap) Width() int { return tm.Cols }

// Height returns the number of rows.
func (tm *TileMap) Height() int { return tm.Rows }

// InBounds returns true if c is within the tile map.
func (tm *TileMap) InBounds(c iso.GridCoord) bool {
	return c.Col >= 0 && c.Col < tm.Cols && c.Row >= 0 && c.Row < tm.Rows
}

// At returns a pointer to the cell at c, or nil if out of bounds.
func (tm *TileMap) At(c iso.GridCoord) *Cell {
	if !tm.InBounds(c) {
		return nil
	}
	return &tm.Cells[c.Row*tm.Cols+c.Col]
}

// CellAt returns a copy of the cell at c. ok is false out of bounds.
func (tm *TileMap) CellAt(c iso.GridCoord) (cell Cell, ok bool) {
	p := tm.At(c)
	if p == nil {
		return Cell{}, false
	}
	return *p, true
}

// SetTerrain changes the terrain at c and resets its elevation to the
// terrain default. Out-of-bounds writes are ignored.
func (tm *TileMap) SetTerrain(c iso.GridCoord, t Terrain) {
	if p := tm.At(c); p != nil {
		p.Terrain = t
		p.Elevation = terrainElevation(t)
	}
}

// Count returns how many cells have the given terrain.
func (tm *TileMap) Count(t Terrain) int {
	n := 0
	for _, c := range tm.Cells {
		if c.Terrain == t {
			n++
		}
	}
	return n
}
