package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/dyvoker/isomap/internal/mapview"
)

const (
	panelWidth      = 320
	panelMaxEntries = 60
	panelLineHeight = 16
)

// panelEntry is a single line in the event panel.
type panelEntry struct {
	Seq      int
	Category string
	Message  string
}

// EventPanel is a ring buffer of controller events rendered on-screen.
type EventPanel struct {
	entries []panelEntry
	head    int
	count   int
	synced  int // number of EventLog entries already copied in
}

// NewEventPanel creates an event panel with a fixed capacity.
func NewEventPanel() *EventPanel {
	return &EventPanel{
		entries: make([]panelEntry, panelMaxEntries),
	}
}

// Add appends an entry to the panel.
func (ep *EventPanel) Add(seq int, category, msg string) {
	ep.entries[ep.head] = panelEntry{
		Seq:      seq,
		Category: category,
		Message:  msg,
	}
	ep.head = (ep.head + 1) % panelMaxEntries
	if ep.count < panelMaxEntries {
		ep.count++
	}
}

// Sync copies entries recorded in el since the last call.
func (ep *EventPanel) Sync(el *mapview.EventLog) {
	all := el.Entries()
	if ep.synced > len(all) {
		ep.synced = 0
	}
	for _, e := range all[ep.synced:] {
		msg := e.Key
		if e.Value != "" {
			msg += " " + e.Value
		}
		ep.Add(e.Seq, e.Category, msg)
	}
	ep.synced = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (ep *EventPanel) Recent() []panelEntry {
	result := make([]panelEntry, ep.count)
	for i := 0; i < ep.count; i++ {
		idx := (ep.head - ep.count + i + panelMaxEntries) % panelMaxEntries
		result[i] = ep.entries[idx]
	}
	return result
}

func categoryColour(category string) color.RGBA {
	switch category {
	case mapview.CategoryTap:
		return color.RGBA{R: 210, G: 170, B: 70, A: 255}
	case mapview.CategorySelect:
		return color.RGBA{R: 255, G: 220, B: 0, A: 255}
	case mapview.CategoryCamera:
		return color.RGBA{R: 70, G: 110, B: 210, A: 255}
	default:
		return color.RGBA{R: 120, G: 120, B: 120, A: 255}
	}
}

// Draw renders the panel on the right side of the screen.
func (ep *EventPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 60, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(panelWidth), 16, color.RGBA{R: 20, G: 24, B: 34, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := ep.Recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	y := 20
	for i, e := range entries {
		if i >= len(entries)-3 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(panelWidth-4), float32(panelLineHeight), color.RGBA{R: 30, G: 34, B: 48, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+5), 3, 6, categoryColour(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%3d %s", e.Seq, e.Message), panelX+12, y)
		y += panelLineHeight
	}
}
