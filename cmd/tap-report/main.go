package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dyvoker/isomap/internal/iso"
	"github.com/dyvoker/isomap/internal/mapview"
	"github.com/dyvoker/isomap/internal/tilemap"
)

var errBadPair = errors.New("expected two numbers")

type options struct {
	cols, rows   int
	seed         int64
	mapFile      string
	viewW, viewH float64
	scale        float64
	focus        iso.Point
	pan          iso.Point
	taps         []iso.Point
	verbose      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Println("error:", err)
		os.Exit(2)
	}
}

func parseOptions(args []string) (options, error) {
	var o options
	var view, focus, pan, taps string

	fs := flag.NewFlagSet("tap-report", flag.ContinueOnError)
	fs.IntVar(&o.cols, "cols", 8, "map columns when generating")
	fs.IntVar(&o.rows, "rows", 8, "map rows when generating")
	fs.Int64Var(&o.seed, "seed", 42, "map generator seed")
	fs.StringVar(&o.mapFile, "map", "", "load the map from a text file")
	fs.StringVar(&view, "view", "800x600", "view size WxH")
	fs.Float64Var(&o.scale, "scale", 1, "pinch scale factor applied before tapping")
	fs.StringVar(&focus, "focus", "0,0", "pinch focus x,y")
	fs.StringVar(&pan, "pan", "0,0", "pan delta dx,dy applied before tapping")
	fs.StringVar(&taps, "taps", "400,300", "semicolon-separated screen points x,y;x,y")
	fs.BoolVar(&o.verbose, "v", false, "include camera events in the log")
	if err := fs.Parse(args); err != nil {
		return o, err
	}

	if o.mapFile == "" && (o.cols <= 0 || o.rows <= 0) {
		return o, fmt.Errorf("-cols and -rows must be > 0")
	}
	var err error
	if o.viewW, o.viewH, err = parseSep(view, "x"); err != nil {
		return o, fmt.Errorf("-view %q: %w", view, err)
	}
	if o.focus.X, o.focus.Y, err = parseSep(focus, ","); err != nil {
		return o, fmt.Errorf("-focus %q: %w", focus, err)
	}
	if o.pan.X, o.pan.Y, err = parseSep(pan, ","); err != nil {
		return o, fmt.Errorf("-pan %q: %w", pan, err)
	}
	if o.taps, err = parseTaps(taps); err != nil {
		return o, fmt.Errorf("-taps: %w", err)
	}
	return o, nil
}

// parseSep parses "a<sep>b" into two floats.
func parseSep(s, sep string) (float64, float64, error) {
	parts := strings.Split(strings.TrimSpace(s), sep)
	if len(parts) != 2 {
		return 0, 0, errBadPair
	}
	a, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadPair, err)
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", errBadPair, err)
	}
	return a, b, nil
}

func parseTaps(s string) ([]iso.Point, error) {
	var out []iso.Point
	for _, item := range strings.Split(s, ";") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		x, y, err := parseSep(item, ",")
		if err != nil {
			return nil, fmt.Errorf("%q: %w", item, err)
		}
		out = append(out, iso.Point{X: x, Y: y})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no tap points")
	}
	return out, nil
}

func loadMap(o options) (*tilemap.TileMap, error) {
	if o.mapFile == "" {
		return tilemap.Generate(o.cols, o.rows, o.seed), nil
	}
	f, err := os.Open(o.mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tm, err := tilemap.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", o.mapFile, err)
	}
	return tm, nil
}

func run(args []string, out io.Writer) error {
	o, err := parseOptions(args)
	if err != nil {
		return err
	}
	tm, err := loadMap(o)
	if err != nil {
		return err
	}

	el := mapview.NewEventLog(o.verbose)
	ctrl := mapview.New(iso.Default, mapview.WithLog(el))
	ctrl.OnResize(o.viewW, o.viewH)
	ctrl.SetMap(tm)
	if o.scale != 1 {
		ctrl.OnScale(o.scale, o.focus.X, o.focus.Y)
	}
	if o.pan != (iso.Point{}) {
		ctrl.OnPan(o.pan.X, o.pan.Y)
	}

	cam := ctrl.Camera()
	fmt.Fprintf(out, "=== Tap Report ===\n")
	fmt.Fprintf(out, "map=%dx%d view=%.0fx%.0f scale=%.3f focus=%.1f,%.1f pan=%.1f,%.1f\n\n",
		tm.Width(), tm.Height(), o.viewW, o.viewH, cam.Scale, cam.Focus.X, cam.Focus.Y, cam.Pan.X, cam.Pan.Y)

	hits, mismatches := 0, 0
	for _, p := range o.taps {
		local := ctrl.ToLocal(p.X, p.Y)
		c, ok := ctrl.ResolveTap(p.X, p.Y)
		// The direct lookup must agree with the scan wherever it lands
		// inside the map.
		analytic := ctrl.Transform().LocalToCell(local)
		inMap := tm.InBounds(analytic)
		agree := ok == inMap && (!ok || c == analytic)
		note := ""
		if !agree {
			mismatches++
			note = "  MISMATCH"
		}
		if !ok {
			fmt.Fprintf(out, "tap %7.1f,%7.1f  local %8.1f,%8.1f  -> miss  (analytic %d,%d)%s\n",
				p.X, p.Y, local.X, local.Y, analytic.Col, analytic.Row, note)
			continue
		}
		hits++
		cell, _ := tm.CellAt(c)
		fmt.Fprintf(out, "tap %7.1f,%7.1f  local %8.1f,%8.1f  -> %d,%d %s  (analytic %d,%d)%s\n",
			p.X, p.Y, local.X, local.Y, c.Col, c.Row, cell.Terrain, analytic.Col, analytic.Row, note)
	}
	fmt.Fprintf(out, "\nhits=%d misses=%d mismatches=%d\n", hits, len(o.taps)-hits, mismatches)
	if sel, ok := ctrl.SelectedCell(); ok {
		fmt.Fprintf(out, "selected=%d,%d\n", sel.Col, sel.Row)
	} else {
		fmt.Fprintf(out, "selected=none\n")
	}

	fmt.Fprintf(out, "\n--- event log ---\n%s", el.Format())
	return nil
}
