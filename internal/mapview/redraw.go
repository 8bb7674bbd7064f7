package mapview

// Redrawer receives fire-and-forget repaint requests.
type Redrawer interface {
	RequestRedraw()
}

// DirtyFlag is a Redrawer that collapses any number of requests into one
// pending repaint.
type DirtyFlag struct {
	dirty bool
}

// RequestRedraw marks the view dirty.
func (d *DirtyFlag) RequestRedraw() { d.dirty = true }

// Take reports whether a repaint is pending and clears the flag.
func (d *DirtyFlag) Take() bool {
	was := d.dirty
	d.dirty = false
	return was
}

// Pending reports whether a repaint is pending without clearing it.
func (d *DirtyFlag) Pending() bool { return d.dirty }

type nopRedrawer struct{}

func (nopRedrawer) RequestRedraw() {}
