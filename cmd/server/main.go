package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinCompare/internal/compare"
	"CoinCompare/internal/config"
	"CoinCompare/internal/model"
	"CoinCompare/internal/provider"
	"CoinCompare/internal/recorder"
	"CoinCompare/internal/scheduler"
	"CoinCompare/internal/search"
	"CoinCompare/internal/server"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoinCompare starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init provider client
	gecko := provider.NewCoinGeckoClient(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Proxy,
		time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
	)
	log.Printf("[INFO] data provider: %s (%s)", gecko.Name(), cfg.Provider.BaseURL)

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init comparison core
	fetcher := compare.NewFetcher(
		gecko,
		time.Duration(cfg.Fetch.WindowDays)*24*time.Hour,
		time.Duration(cfg.Fetch.RequestTimeoutSeconds)*time.Second,
	)
	store := compare.NewStore(ctx, fetcher, rec,
		cfg.Chart.ColorA, cfg.Chart.ColorB,
		time.Duration(cfg.Chart.ColorDebounceMs)*time.Millisecond,
	)

	// One debounced search controller per slot
	searchOpts := search.Options{
		Debounce:    time.Duration(cfg.Search.DebounceMs) * time.Millisecond,
		MinQueryLen: cfg.Search.MinQueryLen,
		MaxResults:  cfg.Search.MaxResults,
	}
	controllers := map[model.Slot]*search.Controller{
		model.SlotA: search.NewController(ctx, model.SlotA, gecko, rec, store.SetSelection, searchOpts),
		model.SlotB: search.NewController(ctx, model.SlotB, gecko, rec, store.SetSelection, searchOpts),
	}

	// Optional auto-refresh of the active comparison
	if cfg.Schedule.RefreshCron != "" {
		sched := scheduler.NewScheduler(store)
		if err := sched.Register(cfg.Schedule.RefreshCron); err != nil {
			log.Fatalf("[FATAL] register refresh task: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// HTTP surface
	srv := server.New(store, controllers)
	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Router(cfg.Server.AllowOrigin),
	}
	go func() {
		log.Printf("[INFO] listening on %s", cfg.Server.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[FATAL] http server: %v", err)
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] http shutdown: %v", err)
	}
	log.Println("[INFO] CoinCompare stopped")
}
