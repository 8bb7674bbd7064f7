// Package iso maps between grid coordinates and local pixel space for a
// diamond-tiled isometric grid.
package iso

import "math"

// Default tile dimensions in local pixels. Diamonds are twice as wide as tall.
const (
	DefaultTileWidth  = 128.0
	DefaultTileHeight = 64.0
)

// GridCoord identifies one cell of the grid. Compared by value.
type GridCoord struct {
	Col int
	Row int
}

// Point is a 2D pixel position, used for both screen and local space.
type Point struct {
	X float64
	Y float64
}

// Add returns p + o.
func (p Point) Add(o Point) Point { return Point{X: p.X + o.X, Y: p.Y + o.Y} }

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Mul returns p scaled by k.
func (p Point) Mul(k float64) Point { return Point{X: p.X * k, Y: p.Y * k} }

// Transform holds the tile geometry. The zero Origin places cell (0,0) at
// local (0,0); columns run down-right and rows run down-left.
type Transform struct {
	TileWidth  float64
	TileHeight float64
	Origin     Point // local position of cell (0,0)'s center
}

// Default is the standard 128x64 tile transform.
var Default = Transform{TileWidth: DefaultTileWidth, TileHeight: DefaultTileHeight}

func (t Transform) half() (hw, hh float64) {
	return t.TileWidth / 2, t.TileHeight / 2
}

// CellToLocal returns the local-space center of the cell's diamond.
func (t Transform) CellToLocal(c GridCoord) Point {
	hw, hh := t.half()
	return Point{
		X: t.Origin.X + float64(c.Col-c.Row)*hw,
		Y: t.Origin.Y + float64(c.Col+c.Row)*hh,
	}
}

// IsPointInCell reports whether p lies inside the cell's diamond footprint.
//
// The test runs in the rotated basis of the grid axes: u grows along the
// column axis and v along the row axis, both scaled so the diamond spans
// (-hw*hh, hw*hh]. The interval is half-open so a shared edge belongs to
// exactly one cell: the lower-index one.
func (t Transform) IsPointInCell(c GridCoord, p Point) bool {
	hw, hh := t.half()
	if hw <= 0 || hh <= 0 {
		return false
	}
	center := t.CellToLocal(c)
	dx := p.X - center.X
	dy := p.Y - center.Y
	bound := hw * hh
	u := dx*hh + dy*hw
	v := dy*hw - dx*hh
	return u > -bound && u <= bound && v > -bound && v <= bound
}

// LocalToCell returns the cell whose footprint contains p. The result is not
// clamped to any grid bounds and follows the same tie-break as IsPointInCell.
func (t Transform) LocalToCell(p Point) GridCoord {
	hw, hh := t.half()
	if hw <= 0 || hh <= 0 {
		return GridCoord{}
	}
	dx := (p.X - t.Origin.X) / hw
	dy := (p.Y - t.Origin.Y) / hh
	// dy+dx == 2*col and dy-dx == 2*row at cell centers. col is the one
	// integer k with dy+dx-2k in (-1, 1]; likewise for row.
	col := math.Ceil((dy + dx - 1) / 2)
	row := math.Ceil((dy - dx - 1) / 2)
	return GridCoord{Col: int(col), Row: int(row)}
}

// Footprint returns the diamond vertices: top, right, bottom, left.
func (t Transform) Footprint(c GridCoord) [4]Point {
	hw, hh := t.half()
	ctr := t.CellToLocal(c)
	return [4]Point{
		{X: ctr.X, Y: ctr.Y - hh},
		{X: ctr.X + hw, Y: ctr.Y},
		{X: ctr.X, Y: ctr.Y + hh},
		{X: ctr.X - hw, Y: ctr.Y},
	}
}

// GridCenter returns the local center of a cols x rows grid. An empty grid
// centers on the origin.
func (t Transform) GridCenter(cols, rows int) Point {
	if cols <= 0 || rows <= 0 {
		return t.Origin
	}
	hw, hh := t.half()
	mc := float64(cols-1) / 2
	mr := float64(rows-1) / 2
	return Point{
		X: t.Origin.X + (mc-mr)*hw,
		Y: t.Origin.Y + (mc+mr)*hh,
	}
}

// CenteredOn returns a copy of t shifted so that c sits at local (0,0).
func (t Transform) CenteredOn(c GridCoord) Transform {
	out := t
	out.Origin = Point{}
	out.Origin = Point{}.Sub(out.CellToLocal(c))
	return out
}
