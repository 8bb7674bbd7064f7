package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/dyvoker/isomap/internal/game"
	"github.com/dyvoker/isomap/internal/iso"
	"github.com/dyvoker/isomap/internal/tilemap"
)

func main() {
	var cols, rows int
	var seed int64
	var mapFile string
	var labels, antiAlias, verbose bool

	flag.IntVar(&cols, "cols", 24, "map columns when generating")
	flag.IntVar(&rows, "rows", 24, "map rows when generating")
	flag.Int64Var(&seed, "seed", 1, "map generator seed")
	flag.StringVar(&mapFile, "map", "", "load the map from a text file instead of generating it")
	flag.BoolVar(&labels, "labels", false, "draw cell coordinates")
	flag.BoolVar(&antiAlias, "aa", true, "anti-alias tile edges")
	flag.BoolVar(&verbose, "v", false, "log every pan and zoom")
	flag.Parse()

	tm := tilemap.Generate(cols, rows, seed)
	if mapFile != "" {
		f, err := os.Open(mapFile)
		if err != nil {
			log.Fatal(err)
		}
		tm, err = tilemap.Parse(f)
		f.Close()
		if err != nil {
			log.Fatalf("%s: %v", mapFile, err)
		}
	}

	g := game.New(game.Config{
		Transform:  iso.Default,
		ShowLabels: labels,
		AntiAlias:  antiAlias,
		Verbose:    verbose,
		Seed:       seed,
	}, tm)

	ebiten.SetWindowTitle("Isometric Map")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
