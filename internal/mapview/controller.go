// Package mapview turns pan, pinch and tap events into camera updates and
// cell selection for an isometric map.
package mapview

import (
	"fmt"

	"github.com/dyvoker/isomap/internal/camera"
	"github.com/dyvoker/isomap/internal/iso"
)

// Map is the grid the controller hit-tests against. The controller only
// asks for its dimensions.
type Map interface {
	Width() int
	Height() int
}

// Selection is the currently selected cell, if any.
type Selection struct {
	Cell  iso.GridCoord
	Valid bool
}

// Controller owns the live camera and the selection. All methods must be
// called from the single goroutine that drives the view.
type Controller struct {
	transform iso.Transform
	cam       camera.Camera
	grid      Map
	selection Selection

	viewW, viewH float64

	redraw   Redrawer
	onSelect func(Selection)
	log      *EventLog
}

// Option configures a Controller.
type Option func(*Controller)

// WithRedrawer sets the repaint target. Defaults to a no-op.
func WithRedrawer(r Redrawer) Option {
	return func(c *Controller) { c.redraw = r }
}

// WithOnSelect registers a callback fired whenever the selection changes.
func WithOnSelect(fn func(Selection)) Option {
	return func(c *Controller) { c.onSelect = fn }
}

// WithLog records controller events into el.
func WithLog(el *EventLog) Option {
	return func(c *Controller) { c.log = el }
}

// WithCamera overrides the initial camera state. Scale is clamped into
// range.
func WithCamera(cam camera.Camera) Option {
	return func(c *Controller) { c.cam = cam.Normalized() }
}

// New creates a controller with no map bound.
func New(t iso.Transform, opts ...Option) *Controller {
	c := &Controller{
		transform: t,
		cam:       camera.New(),
		redraw:    nopRedrawer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetMap binds m (nil unbinds), recenters the camera on it and clears the
// selection.
func (c *Controller) SetMap(m Map) {
	c.grid = m
	w, h := c.gridSize()
	c.record(CategoryMap, "set", fmt.Sprintf("%dx%d", w, h), float64(w*h))
	c.center()
	c.setSelection(Selection{})
	c.redraw.RequestRedraw()
}

// OnResize records the view size and centers the grid in it. Repeated calls
// with the same size leave the camera unchanged.
func (c *Controller) OnResize(viewW, viewH float64) {
	c.viewW, c.viewH = viewW, viewH
	c.record(CategoryView, "resize", fmt.Sprintf("%.0fx%.0f", viewW, viewH), 0)
	c.center()
	c.redraw.RequestRedraw()
}

// OnPan adds a screen-space delta to the camera pan.
func (c *Controller) OnPan(dx, dy float64) {
	c.cam.PanBy(dx, dy)
	c.recordVerbose(CategoryCamera, "pan", fmt.Sprintf("(%.1f,%.1f) -> pan (%.1f,%.1f)", dx, dy, c.cam.Pan.X, c.cam.Pan.Y), 0)
	c.redraw.RequestRedraw()
}

// OnScale multiplies the camera scale by factor around the given screen focus.
func (c *Controller) OnScale(factor, focusX, focusY float64) {
	c.cam.ScaleBy(factor, iso.Point{X: focusX, Y: focusY})
	c.recordVerbose(CategoryCamera, "scale", fmt.Sprintf("x%.3f at (%.1f,%.1f) -> %.3f", factor, focusX, focusY, c.cam.Scale), c.cam.Scale)
	c.redraw.RequestRedraw()
}

// ResolveTap converts a screen point to local space and returns the first
// cell, scanning rows then columns, whose footprint contains it. A miss
// clears the selection.
func (c *Controller) ResolveTap(x, y float64) (iso.GridCoord, bool) {
	local := c.cam.ToLocal(iso.Point{X: x, Y: y})
	hit, ok := c.hitTest(local)
	if ok {
		c.record(CategoryTap, "hit", fmt.Sprintf("(%d,%d) at local (%.1f,%.1f)", hit.Col, hit.Row, local.X, local.Y), 1)
	} else {
		c.record(CategoryTap, "miss", fmt.Sprintf("local (%.1f,%.1f)", local.X, local.Y), 0)
	}
	c.setSelection(Selection{Cell: hit, Valid: ok})
	c.redraw.RequestRedraw()
	return hit, ok
}

// SelectedCell returns the current selection.
func (c *Controller) SelectedCell() (iso.GridCoord, bool) {
	return c.selection.Cell, c.selection.Valid
}

// Camera returns a copy of the current camera state.
func (c *Controller) Camera() camera.Camera { return c.cam }

// Transform returns the tile geometry used for hit-testing.
func (c *Controller) Transform() iso.Transform { return c.transform }

// ToLocal maps a screen point to local map space under the current camera.
func (c *Controller) ToLocal(x, y float64) iso.Point {
	return c.cam.ToLocal(iso.Point{X: x, Y: y})
}

func (c *Controller) hitTest(local iso.Point) (iso.GridCoord, bool) {
	w, h := c.gridSize()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			cell := iso.GridCoord{Col: col, Row: row}
			if c.transform.IsPointInCell(cell, local) {
				return cell, true
			}
		}
	}
	return iso.GridCoord{}, false
}

func (c *Controller) center() {
	w, h := c.gridSize()
	c.cam.CenterOn(c.viewW, c.viewH, c.transform.GridCenter(w, h))
}

func (c *Controller) gridSize() (w, h int) {
	if c.grid == nil {
		return 0, 0
	}
	w, h = c.grid.Width(), c.grid.Height()
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	return w, h
}

func (c *Controller) setSelection(s Selection) {
	if !s.Valid {
		s.Cell = iso.GridCoord{}
	}
	if s == c.selection {
		return
	}
	c.selection = s
	if s.Valid {
		c.record(CategorySelect, "set", fmt.Sprintf("(%d,%d)", s.Cell.Col, s.Cell.Row), 1)
	} else {
		c.record(CategorySelect, "clear", "", 0)
	}
	if c.onSelect != nil {
		c.onSelect(s)
	}
}

func (c *Controller) record(category, key, value string, num float64) {
	if c.log != nil {
		c.log.Add(category, key, value, num)
	}
}

func (c *Controller) recordVerbose(category, key, value string, num float64) {
	if c.log != nil {
		c.log.AddVerbose(category, key, value, num)
	}
}
