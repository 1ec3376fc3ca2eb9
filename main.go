package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug mode (physics shapes, probe gizmos, state readout, invariant checks)")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in prefabs/ (basename, .yaml optional)")
	probes := flag.Bool("probes", false, "sense ground and walls with explicit probes instead of contacts")
	prefabDir := flag.String("prefabs", prefabs.Dir, "directory whose spec files override the embedded ones")
	flag.Parse()

	prefabs.Dir = *prefabDir

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("platformer")
	ebiten.SetTPS(ticksPerSecond)

	game, err := NewGame(Options{Level: *levelName, Debug: *debug, Probes: *probes})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("game: starting %v", game)

	err = ebiten.RunGame(game)
	if cerr := game.Close(); cerr != nil {
		log.Printf("prefabs: close watcher: %v", cerr)
	}
	if err != nil {
		log.Fatal(err)
	}
}
