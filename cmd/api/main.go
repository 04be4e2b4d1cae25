package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	server "yoyo_hotels/internal/adapters/http_server"
	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/shared"
	"yoyo_hotels/internal/wiring"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// db
	repo, db, err := wiring.Repo(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	// deps
	cache, closeCache, err := wiring.Cache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache unavailable")
	}
	defer closeCache()

	avail, err := wiring.Availability(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize availability client")
	}

	loc := wiring.Locator(repo, cfg)
	if il, ok := loc.(*app.IndexedLocator); ok {
		if err := il.Refresh(ctx); err != nil {
			log.Fatal().Err(err).Msg("initial city index load failed")
		}
	}

	pages, err := server.LoadPages()
	if err != nil {
		log.Fatal().Err(err).Msg("templates failed to parse")
	}

	// http
	srv := server.New(cfg.RequestTimeout)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Search: app.NewSearchService(repo, loc, cache, cfg.CacheTTL),
		Detail: app.NewDetailService(repo, avail, cache, cfg.CacheTTL),
		Pages:  pages,
	})

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Mux(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
