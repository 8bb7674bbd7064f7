package game

import (
	"math"
	"testing"

	"github.com/dyvoker/isomap/internal/camera"
	"github.com/dyvoker/isomap/internal/iso"
	"github.com/dyvoker/isomap/internal/tilemap"
)

func TestCameraGeoM_MatchesCamera(t *testing.T) {
	cams := []camera.Camera{
		camera.New(),
		{Pan: iso.Point{X: 30, Y: -20}, Scale: 2, Focus: iso.Point{X: 100, Y: 50}},
		{Pan: iso.Point{X: -7, Y: 3}, Scale: 0.5, Focus: iso.Point{X: 0, Y: 0}},
		{Pan: iso.Point{X: 12, Y: 1}},
	}
	pts := []iso.Point{{0, 0}, {64, 32}, {-150, 400}}
	for _, cam := range cams {
		m := cameraGeoM(cam)
		for _, p := range pts {
			want := cam.ToScreen(p)
			x, y := m.Apply(p.X, p.Y)
			if math.Abs(x-want.X) > 1e-9 || math.Abs(y-want.Y) > 1e-9 {
				t.Fatalf("cam %+v: GeoM maps %v to (%v,%v), want %v", cam, p, x, y, want)
			}
		}
	}
}

func TestLocalBounds_CoversEveryFootprint(t *testing.T) {
	tr := iso.Default
	tr.Origin = iso.Point{X: 5, Y: 9}
	cols, rows := 4, 3
	topLeft, w, h := localBounds(tr, cols, rows)
	if w != 7*64 || h != 7*32 {
		t.Fatalf("size = %dx%d, want %dx%d", w, h, 7*64, 7*32)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			for _, v := range tr.Footprint(iso.GridCoord{Col: col, Row: row}) {
				if v.X < topLeft.X || v.Y < topLeft.Y || v.X > topLeft.X+float64(w) || v.Y > topLeft.Y+float64(h) {
					t.Fatalf("vertex %v of (%d,%d) outside bounds %v %dx%d", v, col, row, topLeft, w, h)
				}
			}
		}
	}
}

func TestLocalBounds_Empty(t *testing.T) {
	if _, w, h := localBounds(iso.Default, 0, 3); w != 0 || h != 0 {
		t.Fatalf("empty grid size = %dx%d, want 0x0", w, h)
	}
}

func TestShade_ClampsChannels(t *testing.T) {
	c := terrainColour(tilemap.TerrainSand)
	up := shade(c, 2)
	if up.R < c.R || up.G < c.G {
		t.Fatalf("raised colour %v should be brighter than %v", up, c)
	}
	down := shade(c, -1)
	if down.R > c.R {
		t.Fatalf("sunken colour %v should be darker than %v", down, c)
	}
	if shade(c, 100).R != 255 {
		t.Fatal("channel should clamp at 255")
	}
}
