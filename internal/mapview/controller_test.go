package mapview

import (
	"testing"

	"github.com/dyvoker/isomap/internal/camera"
	"github.com/dyvoker/isomap/internal/iso"
)

type gridStub struct{ w, h int }

func (g gridStub) Width() int  { return g.w }
func (g gridStub) Height() int { return g.h }

// centeredTransform puts the middle cell of a 3x3 grid at local (0,0).
func centeredTransform() iso.Transform {
	return iso.Default.CenteredOn(iso.GridCoord{Col: 1, Row: 1})
}

// scanNaive resolves a tap with the uncorrected inverse (screen-pan)/scale,
// which ignores the scale focus.
func scanNaive(t iso.Transform, cam camera.Camera, w, h int, screen iso.Point) (iso.GridCoord, bool) {
	local := screen.Sub(cam.Pan).Mul(1 / cam.Scale)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			c := iso.GridCoord{Col: col, Row: row}
			if t.IsPointInCell(c, local) {
				return c, true
			}
		}
	}
	return iso.GridCoord{}, false
}

func TestResolveTap_CenterCellAtOrigin(t *testing.T) {
	c := New(centeredTransform())
	c.SetMap(gridStub{3, 3})
	got, ok := c.ResolveTap(0, 0)
	if !ok || got != (iso.GridCoord{Col: 1, Row: 1}) {
		t.Fatalf("tap (0,0) = %v,%v, want (1,1)", got, ok)
	}
	if sel, ok := c.SelectedCell(); !ok || sel != got {
		t.Fatalf("selection = %v,%v, want %v", sel, ok, got)
	}
}

func TestResolveTap_ScaledAboutOrigin(t *testing.T) {
	c := New(centeredTransform(), WithCamera(camera.Camera{Scale: 2}))
	c.SetMap(gridStub{3, 3})
	cam := c.Camera()
	if cam.Pan != (iso.Point{}) || cam.Focus != (iso.Point{}) {
		t.Fatalf("expected zero pan and focus, got %+v", cam)
	}
	screen := cam.ToScreen(iso.Point{})
	got, ok := c.ResolveTap(screen.X, screen.Y)
	if !ok || got != (iso.GridCoord{Col: 1, Row: 1}) {
		t.Fatalf("tap %v = %v,%v, want (1,1)", screen, got, ok)
	}
	// With focus at the origin the naive inverse happens to agree.
	naive, ok := scanNaive(c.Transform(), cam, 3, 3, screen)
	if !ok || naive != got {
		t.Fatalf("naive inverse = %v,%v, want %v", naive, ok, got)
	}
}

// The inverse undoes the scale around the focus before undoing the pan.
// Dividing (screen-pan) by scale alone picks the wrong cell once the pinch
// focus moves off the origin.
func TestResolveTap_ScaledAboutFocusUsesCorrectedInverse(t *testing.T) {
	c := New(centeredTransform())
	c.SetMap(gridStub{3, 3})
	c.OnScale(2, 100, 50)

	cam := c.Camera()
	screen := cam.ToScreen(iso.Point{})
	if screen != (iso.Point{X: -100, Y: -50}) {
		t.Fatalf("local origin drawn at %v, want (-100,-50)", screen)
	}

	got, ok := c.ResolveTap(screen.X, screen.Y)
	if !ok || got != (iso.GridCoord{Col: 1, Row: 1}) {
		t.Fatalf("tap %v = %v,%v, want (1,1)", screen, got, ok)
	}

	naive, ok := scanNaive(c.Transform(), cam, 3, 3, screen)
	if !ok || naive != (iso.GridCoord{Col: 0, Row: 1}) {
		t.Fatalf("naive inverse = %v,%v, want (0,1)", naive, ok)
	}
}

func TestResolveTap_MissClearsSelection(t *testing.T) {
	var events []Selection
	c := New(centeredTransform(), WithOnSelect(func(s Selection) { events = append(events, s) }))
	c.SetMap(gridStub{3, 3})

	if _, ok := c.ResolveTap(0, 0); !ok {
		t.Fatal("expected hit at origin")
	}
	if _, ok := c.ResolveTap(10000, 10000); ok {
		t.Fatal("expected miss far outside the grid")
	}
	if _, ok := c.SelectedCell(); ok {
		t.Fatal("miss should clear the selection")
	}
	if len(events) != 2 || !events[0].Valid || events[1].Valid {
		t.Fatalf("selection events = %+v, want [set, clear]", events)
	}
}

func TestResolveTap_SameCellFiresOnce(t *testing.T) {
	calls := 0
	c := New(centeredTransform(), WithOnSelect(func(Selection) { calls++ }))
	c.SetMap(gridStub{3, 3})
	c.ResolveTap(0, 0)
	c.ResolveTap(5, 5)
	if calls != 1 {
		t.Fatalf("onSelect called %d times, want 1", calls)
	}
}

func TestResolveTap_SharedEdgePicksLowerIndex(t *testing.T) {
	c := New(iso.Default)
	c.SetMap(gridStub{3, 3})
	// SetMap with no view size leaves the grid center at the screen origin,
	// so move it back to identity pan for easy local coordinates.
	cam := c.Camera()
	c.OnPan(-cam.Pan.X, -cam.Pan.Y)

	got, ok := c.ResolveTap(32, 16) // edge between (0,0) and (1,0)
	if !ok || got != (iso.GridCoord{Col: 0, Row: 0}) {
		t.Fatalf("edge tap = %v,%v, want (0,0)", got, ok)
	}
}

func TestResolveTap_NoMapReturnsEmpty(t *testing.T) {
	c := New(iso.Default)
	if _, ok := c.ResolveTap(0, 0); ok {
		t.Fatal("no map bound: tap should miss")
	}
	c.SetMap(gridStub{0, 5})
	if _, ok := c.ResolveTap(0, 0); ok {
		t.Fatal("empty grid: tap should miss")
	}
}

func TestResolveTap_FollowsPan(t *testing.T) {
	c := New(iso.Default)
	c.OnResize(800, 600)
	c.SetMap(gridStub{3, 3})
	if got, ok := c.ResolveTap(400, 300); !ok || got != (iso.GridCoord{Col: 1, Row: 1}) {
		t.Fatalf("view center = %v,%v, want (1,1)", got, ok)
	}
	// Shift the map by one column step; the same cell follows.
	c.OnPan(64, 32)
	if got, ok := c.ResolveTap(464, 332); !ok || got != (iso.GridCoord{Col: 1, Row: 1}) {
		t.Fatalf("panned center = %v,%v, want (1,1)", got, ok)
	}
	if got, ok := c.ResolveTap(400, 300); !ok || got != (iso.GridCoord{Col: 0, Row: 1}) {
		t.Fatalf("old center after pan = %v,%v, want (0,1)", got, ok)
	}
}

func TestOnResize_CentersAndIsIdempotent(t *testing.T) {
	c := New(iso.Default)
	c.SetMap(gridStub{3, 3})
	c.OnResize(800, 600)
	first := c.Camera()
	if first.Pan != (iso.Point{X: 400, Y: 236}) {
		t.Fatalf("pan = %v, want (400,236)", first.Pan)
	}
	c.OnResize(800, 600)
	if c.Camera() != first {
		t.Fatalf("second resize changed camera: %+v -> %+v", first, c.Camera())
	}
}

func TestOnResize_NoMapCentersOrigin(t *testing.T) {
	c := New(iso.Default)
	c.OnResize(800, 600)
	if c.Camera().Pan != (iso.Point{X: 400, Y: 300}) {
		t.Fatalf("pan = %v, want (400,300)", c.Camera().Pan)
	}
}

func TestSetMap_ClearsSelectionAndRecenters(t *testing.T) {
	c := New(iso.Default)
	c.OnResize(800, 600)
	c.SetMap(gridStub{3, 3})
	c.ResolveTap(400, 300)
	c.OnPan(500, 500)

	c.SetMap(gridStub{5, 5})
	if _, ok := c.SelectedCell(); ok {
		t.Fatal("SetMap should clear the selection")
	}
	want := iso.Point{X: 400, Y: 300}.Sub(iso.Default.GridCenter(5, 5))
	if c.Camera().Pan != want {
		t.Fatalf("pan = %v, want %v", c.Camera().Pan, want)
	}
}

func TestOnScale_ClampsAndKeepsFocus(t *testing.T) {
	c := New(iso.Default)
	for i := 0; i < 10; i++ {
		c.OnScale(1.5, 10, 20)
	}
	cam := c.Camera()
	if cam.Scale != camera.MaxScale {
		t.Fatalf("scale = %v, want %v", cam.Scale, camera.MaxScale)
	}
	if cam.Focus != (iso.Point{X: 10, Y: 20}) {
		t.Fatalf("focus = %v, want (10,20)", cam.Focus)
	}
}

func TestWithCamera_ClampsScale(t *testing.T) {
	c := New(iso.Default, WithCamera(camera.Camera{Scale: 5}))
	if got := c.Camera().Scale; got != camera.MaxScale {
		t.Fatalf("scale = %v, want %v", got, camera.MaxScale)
	}
	c.OnScale(1, 0, 0)
	if got := c.Camera().Scale; got != camera.MaxScale {
		t.Fatalf("identity scale moved scale to %v", got)
	}

	c = New(iso.Default, WithCamera(camera.Camera{Pan: iso.Point{X: 7, Y: 9}}))
	if cam := c.Camera(); cam.Scale != 1 || cam.Pan != (iso.Point{X: 7, Y: 9}) {
		t.Fatalf("camera = %+v, want scale 1 and pan (7,9)", cam)
	}
}

func TestResolveTap_AgreesWithLocalToCell(t *testing.T) {
	const cols, rows = 6, 5
	c := New(iso.Default)
	c.OnResize(800, 600)
	c.SetMap(gridStub{cols, rows})
	c.OnScale(1.3, 250, 180)
	c.OnPan(-17, 11)

	for y := 0.0; y <= 600; y += 8 {
		for x := 0.0; x <= 800; x += 8 {
			want := c.Transform().LocalToCell(c.ToLocal(x, y))
			inGrid := want.Col >= 0 && want.Col < cols && want.Row >= 0 && want.Row < rows
			got, ok := c.ResolveTap(x, y)
			if ok != inGrid {
				t.Fatalf("tap (%v,%v): hit=%v, direct lookup %v in grid=%v", x, y, ok, want, inGrid)
			}
			if ok && got != want {
				t.Fatalf("tap (%v,%v) = %v, direct lookup %v", x, y, got, want)
			}
		}
	}
}

func TestRedraw_RequestedByEveryMutation(t *testing.T) {
	var dirty DirtyFlag
	c := New(iso.Default, WithRedrawer(&dirty))

	steps := []struct {
		name string
		fn   func()
	}{
		{"SetMap", func() { c.SetMap(gridStub{2, 2}) }},
		{"OnResize", func() { c.OnResize(100, 100) }},
		{"OnPan", func() { c.OnPan(1, 1) }},
		{"OnScale", func() { c.OnScale(1.1, 0, 0) }},
		{"ResolveTap", func() { c.ResolveTap(50, 50) }},
	}
	for _, s := range steps {
		s.fn()
		if !dirty.Take() {
			t.Fatalf("%s did not request a redraw", s.name)
		}
	}
}

func TestDirtyFlag_Deduplicates(t *testing.T) {
	var d DirtyFlag
	if d.Take() {
		t.Fatal("fresh flag should not be dirty")
	}
	d.RequestRedraw()
	d.RequestRedraw()
	d.RequestRedraw()
	if !d.Pending() {
		t.Fatal("expected pending redraw")
	}
	if !d.Take() {
		t.Fatal("expected one redraw")
	}
	if d.Take() {
		t.Fatal("requests should collapse into a single redraw")
	}
}

func TestEventLog_RecordsTapsAndSelection(t *testing.T) {
	el := NewEventLog(true)
	c := New(centeredTransform(), WithLog(el))
	c.SetMap(gridStub{3, 3})
	c.OnPan(0, 0)
	c.OnScale(1, 0, 0)
	c.ResolveTap(0, 0)
	c.ResolveTap(9999, 9999)

	if n := el.Count(CategoryTap, "hit"); n != 1 {
		t.Fatalf("tap hits = %d, want 1\n%s", n, el.Format())
	}
	if n := el.Count(CategoryTap, "miss"); n != 1 {
		t.Fatalf("tap misses = %d, want 1\n%s", n, el.Format())
	}
	if n := el.Count(CategoryCamera, ""); n != 2 {
		t.Fatalf("camera events = %d, want 2\n%s", n, el.Format())
	}
	last, ok := el.LastOf(CategorySelect, "")
	if !ok || last.Key != "clear" {
		t.Fatalf("last selection event = %+v, want clear", last)
	}
	set, ok := el.LastOf(CategorySelect, "set")
	if !ok || set.Value != "(1,1)" {
		t.Fatalf("select set = %+v, want (1,1)", set)
	}
}

func TestEventLog_QuietSkipsCamera(t *testing.T) {
	el := NewEventLog(false)
	c := New(iso.Default, WithLog(el))
	c.OnPan(5, 5)
	c.OnScale(2, 0, 0)
	if n := el.Count(CategoryCamera, ""); n != 0 {
		t.Fatalf("quiet log recorded %d camera events", n)
	}
}
