// Package camera holds the pan/zoom state that sits between local map space
// and screen space.
package camera

import (
	"math"

	"github.com/dyvoker/isomap/internal/iso"
)

// Scale bounds. Scale is clamped to [MinScale, MaxScale] after every update.
const (
	MinScale = 0.5
	MaxScale = 2.0
)

// Camera is a translate-then-scale transform:
//
//	screen = (local + Pan - Focus) * Scale + Focus
//
// Focus is a screen-space pivot, so the screen point under the fingers stays
// fixed while a pinch changes Scale.
type Camera struct {
	Pan   iso.Point
	Scale float64
	Focus iso.Point
}

// New returns an identity camera.
func New() Camera {
	return Camera{Scale: 1}
}

// Normalized returns c with Scale in [MinScale, MaxScale]. A zero Scale
// reads as 1, the same as a zero-value Camera.
func (c Camera) Normalized() Camera {
	c.Scale = clamp(c.scale(), MinScale, MaxScale)
	return c
}

// PanBy accumulates a translation. Pan is unbounded.
func (c *Camera) PanBy(dx, dy float64) {
	c.Pan.X += dx
	c.Pan.Y += dy
}

// ScaleBy multiplies the current scale by factor, clamps it and records the
// new pivot. Non-finite or non-positive factors are ignored.
func (c *Camera) ScaleBy(factor float64, focus iso.Point) {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return
	}
	c.Scale = clamp(c.scale()*factor, MinScale, MaxScale)
	c.Focus = focus
}

// ToScreen maps a local point to screen space.
func (c Camera) ToScreen(local iso.Point) iso.Point {
	return local.Add(c.Pan).Sub(c.Focus).Mul(c.scale()).Add(c.Focus)
}

// ToLocal is the exact inverse of ToScreen: undo the scale around Focus
// first, then undo the pan.
func (c Camera) ToLocal(screen iso.Point) iso.Point {
	return screen.Sub(c.Focus).Mul(1 / c.scale()).Add(c.Focus).Sub(c.Pan)
}

// CenterOn sets Pan so that the local point target is drawn at the middle
// of a viewW x viewH view. Scale and Focus are left untouched.
func (c *Camera) CenterOn(viewW, viewH float64, target iso.Point) {
	mid := iso.Point{X: viewW / 2, Y: viewH / 2}
	c.Pan = mid.Sub(c.Focus).Mul(1 / c.scale()).Add(c.Focus).Sub(target)
}

// scale guards against a zero-value Camera.
func (c Camera) scale() float64 {
	if c.Scale == 0 {
		return 1
	}
	return c.Scale
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
