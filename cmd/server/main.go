package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"

	"supermarket/internal/api"
	"supermarket/internal/config"
	"supermarket/internal/engine"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	// 1. Handler starts without data; /api answers 503 until the table is ready
	h := api.NewHandler(nil, api.NewMetrics(), cfg.HistogramBins)
	e, err := api.NewServer(h, cfg.RateLimit)
	if err != nil {
		log.Fatal(err)
	}
	e.Logger.SetLevel(cfg.Level())

	// 2. Generate the table in the background
	loaded := make(chan *engine.Dataset, 1)
	go func() {
		ds, err := engine.Load(cfg.Size, cfg.Seed)
		if err != nil {
			log.Fatalf("BACKGROUND: generation failed: %v", err)
		}
		h.SetData(ds)
		loaded <- ds
		log.Info("BACKGROUND: dataset ready, API is fully live.")
	}()

	// 3. Serve until interrupted
	go func() {
		log.Infof("Server ready on %s (data loading in background...)", cfg.Addr)
		if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
	}

	select {
	case ds := <-loaded:
		ds.Release()
	default:
	}
	log.Info("Server stopped")
}
