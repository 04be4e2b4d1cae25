package app

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/domain"
)

type WarmStats struct {
	Total  int
	Warmed int64
	Failed int64
}

// WarmService pre-loads hotel detail snapshots into the cache.
type WarmService struct {
	repo   domain.HotelRepository
	detail *DetailService
}

func NewWarmService(r domain.HotelRepository, d *DetailService) *WarmService {
	return &WarmService{repo: r, detail: d}
}

// WarmAll warms every hotel with at most workers concurrent loads.
// Per-hotel failures are logged and counted; only listing ids or a
// cancelled context fails the run.
func (s *WarmService) WarmAll(ctx context.Context, workers int) (WarmStats, error) {
	ids, err := s.repo.ListHotelIDs(ctx)
	if err != nil {
		return WarmStats{}, err
	}
	if workers < 1 {
		workers = 1
	}

	var warmed, failed atomic.Int64
	sem := semaphore.NewWeighted(int64(workers))
	var wg sync.WaitGroup
	stats := func() WarmStats {
		return WarmStats{Total: len(ids), Warmed: warmed.Load(), Failed: failed.Load()}
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return stats(), err
		}
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return stats(), err
		}

		wg.Add(1)
		go func(hotelID int64) {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.detail.Warm(ctx, hotelID); err != nil {
				failed.Add(1)
				log.Warn().Int64("id", hotelID).Str("err_type", observability.LabelErr(err)).Err(err).Msg("warm failed")
				return
			}
			warmed.Add(1)
			log.Debug().Int64("id", hotelID).Msg("warm ok")
		}(id)
	}

	wg.Wait()
	return stats(), nil
}
