package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"snake-grid/internal/app"
	"snake-grid/internal/web"
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

	srv := web.NewServer(web.Options{
		Session:    cfg.Session(),
		Tick:       cfg.Tick,
		Parameters: cfg.Parameters(),
		Logger:     app.NewLogger("web"),
	})
	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		srv.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("serving snake on http://localhost%s", cfg.Addr)
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
