//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"snake-grid/internal/app"
	"snake-grid/internal/session"
	"snake-grid/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	if err := cfg.LoadEnv(""); err != nil {
		log.Fatal(err)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	closer, err := app.SetupLogging(cfg.LogFile)
	if err != nil {
		log.Fatal(err)
	}
	if closer != nil {
		defer closer.Close()
	}

	opts := cfg.Session()
	opts.Logger = app.NewLogger("snake")
	ctrl, err := session.NewController(opts)
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(ctrl, cfg.Tick)
	w, h := ui.ScreenSize(ctrl.Frame())

	ebiten.SetWindowTitle("Snake")
	ebiten.SetTPS(60)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
