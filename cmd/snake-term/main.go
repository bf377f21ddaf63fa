package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"snake-grid/internal/app"
	"snake-grid/internal/core"
	"snake-grid/internal/session"
	"snake-grid/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	cfg := app.NewConfig()
	// Log lines would corrupt the terminal, so they are dropped unless a file
	// is given with -log.
	cfg.LogFile = ""
	if err := cfg.LoadEnv(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	cfg.Bind(flag.CommandLine)
	flag.Parse()
	if cfg.LogFile == "-" {
		cfg.LogFile = ""
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(2)
	}
	closer, err := app.SetupLogging(cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if closer != nil {
		defer closer.Close()
	}

	opts := cfg.Session()
	opts.Logger = app.NewLogger("term")
	ctrl, err := session.NewController(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	runner := session.NewRunner(ctrl, core.NewTicker(), cfg.Tick)
	err = term.New(screen, runner).Run(ctx)
	stop()
	screen.Fini()
	if err != nil {
		log.Printf("terminal: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("Final score: %d after %d games\n", ctrl.State().Score, ctrl.Games())
}
