package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/domain"
	"yoyo_hotels/internal/geo"
)

// Search defaults applied by callers when a parameter is absent.
const (
	DefaultAdults    = 2
	DefaultMinBudget = 1000
	DefaultMaxBudget = 15000
)

type SearchService struct {
	repo     domain.HotelRepository
	loc      CityLocator
	cache    domain.Cache // optional
	cacheTTL time.Duration
}

func NewSearchService(r domain.HotelRepository, loc CityLocator, c domain.Cache, ttl time.Duration) *SearchService {
	return &SearchService{repo: r, loc: loc, cache: c, cacheTTL: ttl}
}

// DefaultSearchQuery returns a query around p with every optional field at
// its default.
func DefaultSearchQuery(p domain.Point) domain.SearchQuery {
	return domain.SearchQuery{
		Point:     p,
		RadiusKm:  geo.DefaultRadiusKm,
		Adults:    DefaultAdults,
		MinBudget: DefaultMinBudget,
		MaxBudget: DefaultMaxBudget,
	}
}

// ValidateSearch range-checks q. It runs before any query is issued.
func ValidateSearch(q domain.SearchQuery) error {
	if !finite(q.Point.Lat) || !finite(q.Point.Lon) ||
		q.Point.Lat < -90 || q.Point.Lat > 90 || q.Point.Lon < -180 || q.Point.Lon > 180 {
		return &domain.ParamError{Param: "lat/lon", Reason: "out of range"}
	}
	if !finite(q.RadiusKm) || q.RadiusKm < 0 {
		return &domain.ParamError{Param: "radius", Reason: "must be a non-negative number"}
	}
	if q.Adults < 1 {
		return &domain.ParamError{Param: "adults", Reason: "must be a positive integer"}
	}
	if !finite(q.MinBudget) || !finite(q.MaxBudget) || q.MinBudget < 0 || q.MaxBudget < 0 {
		return &domain.ParamError{Param: "budget", Reason: "must be a non-negative number"}
	}
	if q.MinBudget > q.MaxBudget {
		return &domain.ParamError{Param: "budget", Reason: "min_budget exceeds max_budget"}
	}
	for _, s := range q.Stars {
		if s < 1 || s > 5 {
			return &domain.ParamError{Param: "star_ratings", Reason: "each rating must be between 1 and 5"}
		}
	}
	return nil
}

// Search returns the hotels near q.Point that have a room for q.Adults
// priced within the budget. The result is never nil.
func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	if err := ValidateSearch(q); err != nil {
		return nil, err
	}

	key := searchKey(q)
	if s.cache != nil {
		var cached []domain.SearchResult
		if ok, err := s.cache.Get(ctx, key, &cached); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache read failed")
		} else if ok {
			return nonNil(cached), nil
		}
	}

	out, err := s.search(ctx, q)
	if err != nil {
		return nil, err
	}
	observability.ObserveSearch(len(out))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("search cache write failed")
		}
	}
	return out, nil
}

func (s *SearchService) search(ctx context.Context, q domain.SearchQuery) ([]domain.SearchResult, error) {
	regions, err := s.loc.Within(ctx, q.Point, q.RadiusKm)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return []domain.SearchResult{}, nil
	}

	rows, err := s.repo.PricedHotels(ctx, domain.RoomFilter{
		Adults:    q.Adults,
		MinBudget: q.MinBudget,
		MaxBudget: q.MaxBudget,
	})
	if err != nil {
		return nil, err
	}
	hotelIDs, prices := priceMap(rows)
	if len(hotelIDs) == 0 {
		return []domain.SearchResult{}, nil
	}

	hotels, err := s.repo.FindHotels(ctx, domain.HotelFilter{
		RegionIDs: regions,
		HotelIDs:  hotelIDs,
		Stars:     q.Stars,
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.SearchResult, 0, len(hotels))
	for _, h := range hotels {
		out = append(out, domain.SearchResult{
			AddressID:     h.AddressID,
			Name:          h.Name,
			Slug:          h.Slug,
			MainPhone:     h.MainPhone,
			Description:   h.Description,
			PricePerNight: prices[h.AddressID], // 0 when absent
			Date:          q.Date,
			Adults:        q.Adults,
			StarRating:    h.StarRating,
		})
	}
	return out, nil
}

// priceMap returns the distinct hotel ids in first-seen order and a price per
// hotel. A hotel with several qualifying rows keeps the last row's price.
func priceMap(rows []domain.HotelPrice) ([]int64, map[int64]float64) {
	ids := make([]int64, 0, len(rows))
	prices := make(map[int64]float64, len(rows))
	for _, r := range rows {
		if _, seen := prices[r.HotelID]; !seen {
			ids = append(ids, r.HotelID)
		}
		prices[r.HotelID] = r.PricePerNight
	}
	return ids, prices
}

func searchKey(q domain.SearchQuery) string {
	stars := append([]int(nil), q.Stars...)
	sort.Ints(stars)
	ss := make([]string, len(stars))
	for i, s := range stars {
		ss[i] = strconv.Itoa(s)
	}
	return fmt.Sprintf("search:%s:%s:%s:%d:%s:%s:%s:%q",
		ftoa(q.Point.Lat), ftoa(q.Point.Lon), ftoa(q.RadiusKm), q.Adults,
		ftoa(q.MinBudget), ftoa(q.MaxBudget), strings.Join(ss, ","), q.Date)
}

// ftoa is the shortest exact representation, so distinct inputs never
// share a key.
func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

func nonNil(rs []domain.SearchResult) []domain.SearchResult {
	if rs == nil {
		return []domain.SearchResult{}
	}
	return rs
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
