package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/scout/internal/api"
	"github.com/MikeSquared-Agency/scout/internal/candidate"
	"github.com/MikeSquared-Agency/scout/internal/config"
	"github.com/MikeSquared-Agency/scout/internal/hermes"
	"github.com/MikeSquared-Agency/scout/internal/openai"
	"github.com/MikeSquared-Agency/scout/internal/processor"
	"github.com/MikeSquared-Agency/scout/internal/relay"
	"github.com/MikeSquared-Agency/scout/internal/search"
	"github.com/MikeSquared-Agency/scout/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("scout starting", "port", cfg.Port, "model", cfg.Model)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Provider client (optional at startup; every chat request fails until a key is set)
	var provider relay.Completer
	if cfg.OpenAIAPIKey != "" {
		provider = openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.UpstreamTimeout)
		slog.Info("openai client ready", "base_url", cfg.OpenAIBaseURL)
	} else {
		slog.Warn("OPENAI_API_KEY not set, chat requests will be rejected")
	}
	rl := relay.New(provider, cfg.Model, slog.Default())

	// Candidate pool
	var candidates candidate.Source
	if cfg.DatabaseURL != "" {
		db, err := store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := seed(ctx, db); err != nil {
			slog.Error("failed to prepare candidates table", "error", err)
			os.Exit(1)
		}
		candidates = db
		slog.Info("database connected")
	} else {
		candidates = candidate.NewStaticSource(candidate.Fixtures())
		slog.Warn("DATABASE_URL not set, serving fixture candidates")
	}

	// Extraction tasks run in-process against the relay.
	searchSvc := search.New(rl, cfg.Model, slog.Default())
	searchSvc.SetConcurrency(cfg.EvalConcurrency)

	// NATS/Hermes (optional; enables usage events and the search worker)
	if cfg.NatsURL != "" {
		hermesClient, err := hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)

		rl.SetUsageRecorder(hermesClient)

		proc := processor.New(searchSvc, candidates, hermesClient, cfg.ClientTimeout, slog.Default())
		if err := hermesClient.Subscribe(hermes.SubjectSearchRequested, proc.HandleSearchRequested); err != nil {
			slog.Error("failed to subscribe to search requests", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("NATS_URL not set, running without usage events or search worker")
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, rl, searchSvc, candidates, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("scout ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown error", "error", err)
	}
	cancel()
	slog.Info("scout stopped")
}

// seed creates the candidates table and loads the fixture pool into an empty one.
func seed(ctx context.Context, db *store.Store) error {
	if err := db.Migrate(ctx); err != nil {
		return err
	}
	n, err := db.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	fixtures := candidate.Fixtures()
	if err := db.UpsertCandidates(ctx, fixtures); err != nil {
		return err
	}
	slog.Info("seeded candidates table", "count", len(fixtures))
	return nil
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
