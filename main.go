package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/outpost/ecs/entity"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and gizmos")
	levelName := flag.String("level", "outpost.yaml", "level prefab name")
	watch := flag.Bool("watch", true, "reload prefabs/ edits while running")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "outpost"})
	if *debug {
		logger.SetLevel(log.DebugLevel)
	}

	opts := entity.DefaultOptions()
	opts.Level = *levelName
	opts.Logger = logger

	game, err := NewGame(opts, *debug, *watch)
	if err != nil {
		logger.Fatal("load level", "err", err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("outpost")

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", "err", err)
	}
}
