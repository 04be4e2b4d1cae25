package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/domain"
	"yoyo_hotels/internal/geo"
)

// CityLocator returns the region ids within radiusKm of p, in storage row order.
type CityLocator interface {
	Within(ctx context.Context, p domain.Point, radiusKm float64) ([]int64, error)
}

// ScanLocator reads the whole city table on every call.
type ScanLocator struct{ repo domain.CityRepository }

func NewScanLocator(r domain.CityRepository) *ScanLocator { return &ScanLocator{repo: r} }

func (l *ScanLocator) Within(ctx context.Context, p domain.Point, radiusKm float64) ([]int64, error) {
	cities, err := l.repo.ListCities(ctx)
	if err != nil {
		return nil, err
	}
	return geo.Within(cities, p, radiusKm), nil
}

// IndexedLocator serves queries from an R-tree snapshot of the city table,
// rebuilt once the snapshot is older than ttl. A failed rebuild keeps
// serving the previous snapshot.
type IndexedLocator struct {
	repo domain.CityRepository
	ttl  time.Duration
	now  func() time.Time

	mu     sync.RWMutex
	idx    *geo.Index
	loaded time.Time
}

func NewIndexedLocator(r domain.CityRepository, ttl time.Duration) *IndexedLocator {
	return &IndexedLocator{repo: r, ttl: ttl, now: time.Now}
}

func (l *IndexedLocator) Within(ctx context.Context, p domain.Point, radiusKm float64) ([]int64, error) {
	idx, err := l.index(ctx)
	if err != nil {
		return nil, err
	}
	return idx.Within(p, radiusKm), nil
}

// Refresh rebuilds the snapshot unconditionally.
func (l *IndexedLocator) Refresh(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.reloadLocked(ctx)
}

func (l *IndexedLocator) index(ctx context.Context) (*geo.Index, error) {
	l.mu.RLock()
	idx, fresh := l.idx, l.idx != nil && l.now().Sub(l.loaded) < l.ttl
	l.mu.RUnlock()
	if fresh {
		return idx, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.idx != nil && l.now().Sub(l.loaded) < l.ttl {
		return l.idx, nil
	}
	if err := l.reloadLocked(ctx); err != nil {
		if l.idx == nil {
			return nil, err
		}
		log.Warn().Err(err).Time("loaded_at", l.loaded).Msg("city index reload failed, serving stale snapshot")
	}
	return l.idx, nil
}

func (l *IndexedLocator) reloadLocked(ctx context.Context) error {
	cities, err := l.repo.ListCities(ctx)
	if err != nil {
		return err
	}
	l.idx = geo.NewIndex(cities)
	l.loaded = l.now()
	log.Debug().Int("cities", l.idx.Len()).Msg("city index rebuilt")
	return nil
}
