// Package game hosts the isometric map view in an ebiten window: it feeds
// pointer input to the map controller and renders the map, the selection
// and an event panel.
package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/dyvoker/isomap/internal/iso"
	"github.com/dyvoker/isomap/internal/mapview"
	"github.com/dyvoker/isomap/internal/tilemap"
)

// keyPanStep is how far the arrow keys pan per frame, in screen pixels.
const keyPanStep = 8.0

// Config is process-wide render configuration, set once at startup.
type Config struct {
	Transform  iso.Transform
	ShowLabels bool
	AntiAlias  bool
	Verbose    bool // record every camera change in the event log
	Seed       int64
}

// Game implements ebiten.Game.
type Game struct {
	cfg    Config
	width  int
	height int

	ctrl     *mapview.Controller
	log      *mapview.EventLog
	dirty    mapview.DirtyFlag
	tiles    *tilemap.TileMap
	renderer *mapRenderer
	mapStale bool

	// Offscreen buffer for the map view; repainted only when dirty.
	viewBuf *ebiten.Image
	panel   *EventPanel

	tracker  gestureTracker
	touchIDs []ebiten.TouchID
	touchPts []iso.Point
	prevKeys map[ebiten.Key]bool
	showHUD  bool
}

// New creates a game showing tm.
func New(cfg Config, tm *tilemap.TileMap) *Game {
	if cfg.Transform.TileWidth == 0 || cfg.Transform.TileHeight == 0 {
		cfg.Transform = iso.Default
	}
	g := &Game{
		cfg:      cfg,
		log:      mapview.NewEventLog(cfg.Verbose),
		panel:    NewEventPanel(),
		prevKeys: make(map[ebiten.Key]bool),
		showHUD:  true,
		renderer: newMapRenderer(cfg.Transform, text.NewGoXFace(basicfont.Face7x13), cfg.AntiAlias),
	}
	g.ctrl = mapview.New(cfg.Transform,
		mapview.WithRedrawer(&g.dirty),
		mapview.WithLog(g.log),
	)
	g.setMap(tm)
	return g
}

func (g *Game) setMap(tm *tilemap.TileMap) {
	g.tiles = tm
	g.mapStale = true
	if tm == nil {
		g.ctrl.SetMap(nil)
		return
	}
	g.ctrl.SetMap(tm)
}

func (g *Game) viewWidth() int {
	if w := g.width - panelWidth; w > 1 {
		return w
	}
	return 1
}

// keyPressed reports a key transition from up to down this frame.
func (g *Game) keyPressed(cur map[ebiten.Key]bool, k ebiten.Key) bool {
	cur[k] = ebiten.IsKeyPressed(k)
	return cur[k] && !g.prevKeys[k]
}

func (g *Game) Update() error {
	currentKeys := make(map[ebiten.Key]bool)

	if g.keyPressed(currentKeys, ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(currentKeys, ebiten.KeyL) {
		g.cfg.ShowLabels = !g.cfg.ShowLabels
		g.dirty.RequestRedraw()
	}
	if g.keyPressed(currentKeys, ebiten.KeyR) {
		g.ctrl.OnResize(float64(g.viewWidth()), float64(g.height))
	}
	if g.keyPressed(currentKeys, ebiten.KeyG) && g.tiles != nil {
		g.cfg.Seed++
		g.setMap(tilemap.Generate(g.tiles.Width(), g.tiles.Height(), g.cfg.Seed))
	}
	if g.keyPressed(currentKeys, ebiten.KeyC) {
		sel, ok := g.ctrl.SelectedCell()
		if err := copySelection(sel, ok); err != nil {
			g.log.Add(mapview.CategorySelect, "copy_failed", err.Error(), 0)
		} else {
			g.log.Add(mapview.CategorySelect, "copied", selectionText(sel), 0)
		}
	}

	// Zoom keys pivot on the middle of the view.
	midX, midY := float64(g.viewWidth())/2, float64(g.height)/2
	if g.keyPressed(currentKeys, ebiten.KeyEqual) {
		g.ctrl.OnScale(keyZoomStep, midX, midY)
	}
	if g.keyPressed(currentKeys, ebiten.KeyMinus) {
		g.ctrl.OnScale(1/keyZoomStep, midX, midY)
	}

	// Arrow keys move the map.
	var dx, dy float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx += keyPanStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx -= keyPanStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy += keyPanStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy -= keyPanStep
	}
	if dx != 0 || dy != 0 {
		g.ctrl.OnPan(dx, dy)
	}

	var frame pointerFrame
	g.touchIDs, frame = pollPointers(g.touchIDs, g.touchPts)
	g.touchPts = frame.touches
	if len(frame.touches) == 0 && frame.mouse.X >= float64(g.viewWidth()) {
		// Pointer is over the event panel.
		frame.mouseOK = false
		frame.wheel = 0
	}
	g.tracker.step(frame, g.ctrl)

	g.panel.Sync(g.log)
	g.prevKeys = currentKeys
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	vw, vh := g.viewWidth(), g.height
	if vh < 1 {
		vh = 1
	}
	if g.viewBuf == nil || g.viewBuf.Bounds().Dx() != vw || g.viewBuf.Bounds().Dy() != vh {
		if g.viewBuf != nil {
			g.viewBuf.Deallocate()
		}
		g.viewBuf = ebiten.NewImage(vw, vh)
		g.dirty.RequestRedraw()
	}
	if g.mapStale {
		g.renderer.setMap(g.tiles)
		g.mapStale = false
		g.dirty.RequestRedraw()
	}
	if g.dirty.Take() {
		sel, ok := g.ctrl.SelectedCell()
		g.renderer.draw(g.viewBuf, g.ctrl.Camera(), sel, ok, g.cfg.ShowLabels)
	}
	screen.DrawImage(g.viewBuf, nil)

	if g.showHUD {
		g.drawHUD(screen)
	}
	g.panel.Draw(screen, vw, g.height)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	cam := g.ctrl.Camera()
	selText := "none"
	if sel, ok := g.ctrl.SelectedCell(); ok {
		selText = selectionText(sel)
		if g.tiles != nil {
			if cell, ok := g.tiles.CellAt(sel); ok {
				selText += " " + cell.Terrain.String()
			}
		}
	}
	lines := []string{
		fmt.Sprintf("zoom: %.2fx  pan: %.0f,%.0f", cam.Scale, cam.Pan.X, cam.Pan.Y),
		"selected: " + selText,
		"drag=pan  wheel/pinch/+-=zoom  tap=select",
		"C=copy  G=new map  L=labels  R=recenter  H=hide",
	}
	for i, l := range lines {
		ebitenutil.DebugPrintAt(screen, l, 8, 6+i*16)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.ctrl.OnResize(float64(g.viewWidth()), float64(g.height))
	}
	return outsideWidth, outsideHeight
}

// Controller exposes the map controller, mainly for tests and tools.
func (g *Game) Controller() *mapview.Controller { return g.ctrl }
