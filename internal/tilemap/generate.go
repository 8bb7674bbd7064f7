package tilemap

import (
	"math/rand"

	"github.com/dyvoker/isomap/internal/iso"
)

// blob is a roughly circular terrain patch scattered by Generate.
type blob struct {
	terrain Terrain
	count   int     // patches per 100 cells
	radius  float64 // in cells
}

var generatorBlobs = []blob{
	{TerrainWater, 2, 2.2},
	{TerrainForest, 3, 1.8},
	{TerrainRock, 1, 1.3},
	{TerrainSand, 1, 1.5},
}

// Generate builds a deterministic cols x rows map from seed: grass with
// scattered patches, deep water in the middle of large lakes and one road
// running across the map.
func Generate(cols, rows int, seed int64) *TileMap {
	tm := New(cols, rows)
	if cols == 0 || rows == 0 {
		return tm
	}
	rng := rand.New(rand.NewSource(seed)) // #nosec G404 -- map layout only

	area := cols * rows
	for _, b := range generatorBlobs {
		n := b.count * area / 100
		if n == 0 {
			n = 1
		}
		for i := 0; i < n; i++ {
			cx := rng.Float64() * float64(cols)
			cy := rng.Float64() * float64(rows)
			r := b.radius * (0.6 + rng.Float64()*0.8)
			tm.paintDisc(cx, cy, r, b.terrain)
			if b.terrain == TerrainWater && r > 2 {
				tm.paintDisc(cx, cy, r-1.5, TerrainDeepWater)
			}
		}
	}

	// Road: a horizontal run that drifts one row at a time.
	row := rng.Intn(rows)
	for col := 0; col < cols; col++ {
		c := iso.GridCoord{Col: col, Row: row}
		if cell, _ := tm.CellAt(c); cell.Terrain != TerrainDeepWater {
			tm.SetTerrain(c, TerrainRoad)
		}
		switch rng.Intn(6) {
		case 0:
			if row > 0 {
				row--
			}
		case 1:
			if row < rows-1 {
				row++
			}
		}
	}
	return tm
}

func (tm *TileMap) paintDisc(cx, cy, r float64, t Terrain) {
	r2 := r * r
	for row := int(cy - r); row <= int(cy+r); row++ {
		for col := int(cx - r); col <= int(cx+r); col++ {
			dx := float64(col) + 0.5 - cx
			dy := float64(row) + 0.5 - cy
			if dx*dx+dy*dy <= r2 {
				tm.SetTerrain(iso.GridCoord{Col: col, Row: row}, t)
			}
		}
	}
}
