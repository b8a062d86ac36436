package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"dualsub/internal/config"
	"dualsub/internal/httpapi"
	"dualsub/internal/media"
	"dualsub/internal/persistence"
	"dualsub/internal/player"
	"dualsub/internal/track"
	"dualsub/internal/translate"
	"dualsub/pkg/log"
)

func main() {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}
	log.InitLogger(log.ParseLevel(cfg.LogLevel))

	store, err := persistence.NewSQLiteStore(cfg.Storage.DBPath())
	if err != nil {
		log.Fatal("Failed to open store: %v", err)
	}
	defer func() { _ = store.Close() }()

	translator, err := translate.NewClient(cfg.Translate.APIURL, time.Duration(cfg.Translate.Timeout)*time.Second)
	if err != nil {
		log.Fatal("Failed to build translation client: %v", err)
	}

	fetcher := media.NewHTTPFetcher(time.Duration(cfg.Fetch.Timeout) * time.Second)
	resolver := track.NewResolver(fetcher, translator, func() string {
		key, err := store.GeminiAPIKey()
		if err != nil {
			log.Warn("Reading stored API key failed: %v", err)
			return ""
		}
		return key
	})

	manager := player.NewManager(resolver, store)

	janitor := cron.New()
	if _, err := janitor.AddFunc(cfg.Session.CronExpr, func() {
		manager.PruneIdle(cfg.Session.TTL())
	}); err != nil {
		log.Fatal("Failed to schedule session janitor: %v", err)
	}
	janitor.Start()
	defer janitor.Stop()

	server := httpapi.NewServer(
		manager,
		httpapi.WithSettingsStore(store),
		httpapi.WithJanitorSchedule(cfg.Session.CronExpr),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening on %s", cfg.HTTP.ListenAddr)
		errCh <- server.ListenAndServe(cfg.HTTP.ListenAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case err := <-errCh:
		log.Error("Server stopped: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Shutdown: %v", err)
	}
}
