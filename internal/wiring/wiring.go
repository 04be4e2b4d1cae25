// Package wiring builds the adapters shared by the binaries from Config.
package wiring

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/adapters/availability"
	redisad "yoyo_hotels/internal/adapters/redis"
	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/domain"
	"yoyo_hotels/internal/shared"
	"yoyo_hotels/internal/storage/sqlrepo"
)

// Repo opens the configured database and returns a repository over it.
// The caller owns the returned *sql.DB.
func Repo(ctx context.Context, cfg shared.Config) (*sqlrepo.Repo, *sql.DB, error) {
	db, d, err := sqlrepo.Open(ctx, cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection ok")
	return sqlrepo.New(db, d), db, nil
}

// Cache connects to Redis when REDIS_ADDR is set. It returns a nil
// domain.Cache (not a typed nil) when caching is off, and a no-op closer.
func Cache(ctx context.Context, cfg shared.Config) (domain.Cache, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info().Msg("redis disabled, caching off")
		return nil, func() {}, nil
	}
	c := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := c.Ping(ctx); err != nil {
		_ = c.Close()
		return nil, func() {}, fmt.Errorf("redis ping %s: %w", cfg.RedisAddr, err)
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("redis connection ok")
	return c, func() { _ = c.Close() }, nil
}

// Availability returns the remote checker, or nil (capacity only) when no
// base URL is configured.
func Availability(cfg shared.Config) (domain.AvailabilityChecker, error) {
	if cfg.AvailabilityBase == "" {
		return nil, nil
	}
	c, err := availability.New(cfg.AvailabilityBase, cfg.AvailabilityKey, cfg.AvailabilityRPS)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Locator picks the R-tree locator when CityIndexTTL is positive.
func Locator(repo domain.CityRepository, cfg shared.Config) app.CityLocator {
	if cfg.CityIndexTTL > 0 {
		return app.NewIndexedLocator(repo, cfg.CityIndexTTL)
	}
	return app.NewScanLocator(repo)
}
