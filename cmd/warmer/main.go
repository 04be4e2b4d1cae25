package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/shared"
	"yoyo_hotels/internal/wiring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	log.Info().Int("workers", cfg.WarmWorkers).Msg("warmer starting")

	repo, db, err := wiring.Repo(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	cache, closeCache, err := wiring.Cache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache unavailable")
	}
	defer closeCache()
	if cache == nil {
		log.Fatal().Msg("REDIS_ADDR is required for cache warming")
	}

	detail := app.NewDetailService(repo, nil, cache, cfg.CacheTTL)
	stats, err := app.NewWarmService(repo, detail).WarmAll(ctx, cfg.WarmWorkers)
	ev := log.Info()
	if err != nil {
		ev = log.Error().Err(err)
	}
	ev.Int("total", stats.Total).
		Int64("warmed", stats.Warmed).
		Int64("failed", stats.Failed).
		Msg("warming completed")
	if err != nil {
		stop()
		os.Exit(1)
	}
}
