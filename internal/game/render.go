package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dyvoker/isomap/internal/camera"
	"github.com/dyvoker/isomap/internal/iso"
	"github.com/dyvoker/isomap/internal/tilemap"
)

var (
	backgroundColor = color.RGBA{R: 0xaf, G: 0xe4, B: 0xf4, A: 255}
	outlineColor    = color.RGBA{R: 20, G: 30, B: 20, A: 90}
	selectColor     = color.RGBA{R: 255, G: 220, B: 0, A: 255}
	labelColor      = color.RGBA{R: 20, G: 20, B: 30, A: 200}
)

// terrainColour returns the fill colour of a terrain type.
func terrainColour(t tilemap.Terrain) color.RGBA {
	switch t {
	case tilemap.TerrainGrass:
		return color.RGBA{R: 96, G: 160, B: 72, A: 255}
	case tilemap.TerrainForest:
		return color.RGBA{R: 40, G: 100, B: 48, A: 255}
	case tilemap.TerrainSand:
		return color.RGBA{R: 220, G: 200, B: 140, A: 255}
	case tilemap.TerrainWater:
		return color.RGBA{R: 70, G: 140, B: 210, A: 255}
	case tilemap.TerrainDeepWater:
		return color.RGBA{R: 30, G: 80, B: 160, A: 255}
	case tilemap.TerrainRoad:
		return color.RGBA{R: 120, G: 110, B: 100, A: 255}
	case tilemap.TerrainRock:
		return color.RGBA{R: 140, G: 140, B: 150, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 255, A: 255}
	}
}

// shade brightens raised cells and darkens sunken ones.
func shade(c color.RGBA, elevation int8) color.RGBA {
	k := 1 + 0.08*float64(elevation)
	ch := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*k)))
	}
	return color.RGBA{R: ch(c.R), G: ch(c.G), B: ch(c.B), A: c.A}
}

// localBounds returns the top-left local point and pixel size of the
// rectangle covering every footprint of a cols x rows grid.
func localBounds(t iso.Transform, cols, rows int) (topLeft iso.Point, w, h int) {
	if cols <= 0 || rows <= 0 {
		return t.Origin, 0, 0
	}
	hw, hh := t.TileWidth/2, t.TileHeight/2
	topLeft = iso.Point{
		X: t.Origin.X - float64(rows)*hw,
		Y: t.Origin.Y - hh,
	}
	w = int(math.Ceil(float64(cols+rows) * hw))
	h = int(math.Ceil(float64(cols+rows) * hh))
	return topLeft, w, h
}

// cameraGeoM returns the ebiten matrix for cam's forward transform.
func cameraGeoM(cam camera.Camera) ebiten.GeoM {
	cam = cam.Normalized()
	var m ebiten.GeoM
	m.Translate(cam.Pan.X-cam.Focus.X, cam.Pan.Y-cam.Focus.Y)
	m.Scale(cam.Scale, cam.Scale)
	m.Translate(cam.Focus.X, cam.Focus.Y)
	return m
}

// mapRenderer draws the tile map. Tiles are pre-rendered once per map into
// a local-space image; the camera transform is applied on blit.
type mapRenderer struct {
	transform iso.Transform
	tiles     *tilemap.TileMap
	mapImage  *ebiten.Image
	mapMin    iso.Point
	face      text.Face
	antiAlias bool
}

func newMapRenderer(t iso.Transform, face text.Face, antiAlias bool) *mapRenderer {
	return &mapRenderer{transform: t, face: face, antiAlias: antiAlias}
}

// setMap rebuilds the cached map image.
func (r *mapRenderer) setMap(tm *tilemap.TileMap) {
	if r.mapImage != nil {
		r.mapImage.Deallocate()
		r.mapImage = nil
	}
	r.tiles = tm
	if tm == nil {
		return
	}
	topLeft, w, h := localBounds(r.transform, tm.Width(), tm.Height())
	if w == 0 || h == 0 {
		return
	}
	r.mapMin = topLeft
	r.mapImage = ebiten.NewImage(w, h)

	for row := 0; row < tm.Height(); row++ {
		for col := 0; col < tm.Width(); col++ {
			c := iso.GridCoord{Col: col, Row: row}
			cell, _ := tm.CellAt(c)
			r.drawCell(r.mapImage, c, shade(terrainColour(cell.Terrain), cell.Elevation))
		}
	}
}

func (r *mapRenderer) drawCell(dst *ebiten.Image, c iso.GridCoord, fill color.RGBA) {
	fp := r.transform.Footprint(c)
	var path vector.Path
	for i, p := range fp {
		x := float32(p.X - r.mapMin.X)
		y := float32(p.Y - r.mapMin.Y)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: r.antiAlias}
	op.ColorScale.ScaleWithColor(fill)
	vector.FillPath(dst, &path, &vector.FillOptions{}, op)

	for i := range fp {
		a, b := fp[i], fp[(i+1)%len(fp)]
		vector.StrokeLine(dst,
			float32(a.X-r.mapMin.X), float32(a.Y-r.mapMin.Y),
			float32(b.X-r.mapMin.X), float32(b.Y-r.mapMin.Y),
			1.0, outlineColor, r.antiAlias)
	}
}

// draw blits the map through cam and overlays the selection and labels.
func (r *mapRenderer) draw(dst *ebiten.Image, cam camera.Camera, sel iso.GridCoord, selOK, labels bool) {
	dst.Fill(backgroundColor)
	if r.mapImage == nil {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(r.mapMin.X, r.mapMin.Y)
	op.GeoM.Concat(cameraGeoM(cam))
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(r.mapImage, &op)

	if labels && cam.Scale >= 1 {
		r.drawLabels(dst, cam)
	}
	if selOK {
		r.drawSelection(dst, cam, sel)
	}
}

func (r *mapRenderer) drawSelection(dst *ebiten.Image, cam camera.Camera, c iso.GridCoord) {
	fp := r.transform.Footprint(c)
	for i := range fp {
		a := cam.ToScreen(fp[i])
		b := cam.ToScreen(fp[(i+1)%len(fp)])
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 3.0, selectColor, r.antiAlias)
	}
	ctr := cam.ToScreen(r.transform.CellToLocal(c))
	vector.FillCircle(dst, float32(ctr.X), float32(ctr.Y), float32(10*cam.Scale), color.Black, r.antiAlias)
}

func (r *mapRenderer) drawLabels(dst *ebiten.Image, cam camera.Camera) {
	bw, bh := float64(dst.Bounds().Dx()), float64(dst.Bounds().Dy())
	for row := 0; row < r.tiles.Height(); row++ {
		for col := 0; col < r.tiles.Width(); col++ {
			c := iso.GridCoord{Col: col, Row: row}
			p := cam.ToScreen(r.transform.CellToLocal(c))
			if p.X < -40 || p.Y < -20 || p.X > bw+40 || p.Y > bh+20 {
				continue
			}
			label := fmt.Sprintf("%d,%d", col, row)
			w, h := text.Measure(label, r.face, 0)
			op := &text.DrawOptions{}
			op.GeoM.Translate(p.X-w/2, p.Y-h/2)
			op.ColorScale.ScaleWithColor(labelColor)
			text.Draw(dst, label, r.face, op)
		}
	}
}
