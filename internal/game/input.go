package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dyvoker/isomap/internal/iso"
)

const (
	dragDeadZone = 4.0  // pixels a pointer must travel before a press becomes a pan
	wheelStep    = 1.12 // scale factor per wheel notch
	keyZoomStep  = 1.25 // scale factor per =/- key press
)

// gestureSink receives recognised gestures. *mapview.Controller satisfies it.
type gestureSink interface {
	OnPan(dx, dy float64)
	OnScale(factor, focusX, focusY float64)
	ResolveTap(x, y float64) (iso.GridCoord, bool)
}

// pointerFrame is one frame of raw pointer state.
type pointerFrame struct {
	touches []iso.Point // active touch positions, in ID order
	mouse   iso.Point
	mouseOK bool // left button held
	wheel   float64
}

// active returns the pointers driving gestures this frame. Touch wins over
// the mouse when both are present.
func (f pointerFrame) active() []iso.Point {
	if len(f.touches) > 0 {
		return f.touches
	}
	if f.mouseOK {
		return []iso.Point{f.mouse}
	}
	return nil
}

// gestureTracker turns per-frame pointer samples into pan, pinch and tap
// events. One pointer dragging past the dead zone pans; two pointers pinch;
// a press released without dragging or pinching is a tap.
type gestureTracker struct {
	prevCount int
	start     iso.Point // where the current single-pointer press began
	last      iso.Point
	dragging  bool
	pinched   bool // two pointers seen since the press began
	prevDist  float64
}

func (gt *gestureTracker) step(f pointerFrame, sink gestureSink) {
	if f.wheel != 0 {
		sink.OnScale(math.Pow(wheelStep, f.wheel), f.mouse.X, f.mouse.Y)
	}

	pts := f.active()
	switch {
	case len(pts) == 0:
		if gt.prevCount == 1 && !gt.dragging && !gt.pinched {
			sink.ResolveTap(gt.last.X, gt.last.Y)
		}
		gt.dragging = false
		gt.pinched = false
		gt.prevDist = 0

	case len(pts) == 1:
		p := pts[0]
		if gt.prevCount != 1 {
			// New press, or one finger lifted out of a pinch.
			gt.start = p
			gt.last = p
			gt.prevDist = 0
			if gt.prevCount >= 2 {
				gt.pinched = true
			}
			break
		}
		if !gt.dragging {
			if math.Hypot(p.X-gt.start.X, p.Y-gt.start.Y) > dragDeadZone {
				gt.dragging = true
				sink.OnPan(p.X-gt.start.X, p.Y-gt.start.Y)
			}
		} else if p != gt.last {
			sink.OnPan(p.X-gt.last.X, p.Y-gt.last.Y)
		}
		gt.last = p

	default:
		a, b := pts[0], pts[1]
		dist := math.Hypot(b.X-a.X, b.Y-a.Y)
		mid := iso.Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		if gt.prevCount >= 2 && gt.prevDist > 0 && dist > 0 && dist != gt.prevDist {
			sink.OnScale(dist/gt.prevDist, mid.X, mid.Y)
		}
		gt.prevDist = dist
		gt.pinched = true
		gt.dragging = false
	}
	gt.prevCount = len(pts)
}

// pollPointers samples ebiten's mouse and touch state. touchBuf is reused
// between frames.
func pollPointers(touchBuf []ebiten.TouchID, pts []iso.Point) ([]ebiten.TouchID, pointerFrame) {
	touchBuf = ebiten.AppendTouchIDs(touchBuf[:0])
	pts = pts[:0]
	for _, id := range touchBuf {
		x, y := ebiten.TouchPosition(id)
		pts = append(pts, iso.Point{X: float64(x), Y: float64(y)})
	}
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	return touchBuf, pointerFrame{
		touches: pts,
		mouse:   iso.Point{X: float64(mx), Y: float64(my)},
		mouseOK: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		wheel:   wy,
	}
}
