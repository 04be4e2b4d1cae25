package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"yoyo_hotels/internal/domain"
)

// HotelNotFound is the error text shown for an unknown hotel id.
const HotelNotFound = "Hotel not found"

// CapacityAvailability treats every room that fits the party as bookable.
// It does not consult any reservation data.
type CapacityAvailability struct{}

func (CapacityAvailability) Available(_ context.Context, _ int64, room domain.RoomType, _ string, adults int) (bool, error) {
	return room.MaxAdults >= adults, nil
}

// hotelSnapshot is the cached, request-independent part of a detail view.
type hotelSnapshot struct {
	Hotel domain.Hotel      `json:"hotel"`
	Rooms []domain.RoomType `json:"rooms"`
}

type DetailService struct {
	repo     domain.HotelRepository
	avail    domain.AvailabilityChecker
	cache    domain.Cache // optional
	cacheTTL time.Duration
}

// NewDetailService falls back to CapacityAvailability when avail is nil.
func NewDetailService(r domain.HotelRepository, avail domain.AvailabilityChecker, c domain.Cache, ttl time.Duration) *DetailService {
	if avail == nil {
		avail = CapacityAvailability{}
	}
	return &DetailService{repo: r, avail: avail, cache: c, cacheTTL: ttl}
}

// Get builds the detail view for hotel id. An unknown id is not an error:
// the view carries HotelNotFound instead of a hotel. adults below 1 is
// replaced by DefaultAdults.
func (s *DetailService) Get(ctx context.Context, id int64, date string, adults int) (domain.HotelDetail, error) {
	if adults < 1 {
		adults = DefaultAdults
	}
	out := domain.HotelDetail{Date: date, Adults: adults, Rooms: []domain.RoomView{}}

	snap, err := s.load(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		out.Error = HotelNotFound
		return out, nil
	}
	if err != nil {
		return domain.HotelDetail{}, err
	}

	hotel := snap.Hotel
	out.Hotel = &hotel
	for _, rt := range snap.Rooms {
		can := rt.MaxAdults >= adults
		available := false
		if can {
			ok, err := s.avail.Available(ctx, id, rt, date, adults)
			if err != nil {
				log.Warn().Err(err).Int64("hotel_id", id).Str("room", rt.Code).
					Msg("availability lookup failed, using capacity")
				ok = true
			}
			available = ok
		}
		out.Rooms = append(out.Rooms, domain.RoomView{
			HotelID:        rt.HotelID,
			Code:           rt.Code,
			RoomTypeName:   rt.Name,
			Description:    rt.Description,
			MaxAdults:      rt.MaxAdults,
			PricePerNight:  rt.PricePerNight,
			Available:      available,
			CanAccommodate: can,
		})
	}
	return out, nil
}

// Invalidate drops the cached snapshot for id.
func (s *DetailService) Invalidate(ctx context.Context, id int64) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.Del(ctx, hotelKey(id))
}

// Warm reloads the snapshot for id from storage into the cache.
func (s *DetailService) Warm(ctx context.Context, id int64) error {
	if err := s.Invalidate(ctx, id); err != nil {
		return fmt.Errorf("invalidate hotel %d: %w", id, err)
	}
	_, err := s.load(ctx, id)
	return err
}

func (s *DetailService) load(ctx context.Context, id int64) (hotelSnapshot, error) {
	key := hotelKey(id)
	if s.cache != nil {
		var snap hotelSnapshot
		if ok, err := s.cache.Get(ctx, key, &snap); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("hotel cache read failed")
		} else if ok {
			return snap, nil
		}
	}

	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return hotelSnapshot{}, err
	}
	rooms, err := s.repo.ListRoomTypes(ctx, id)
	if err != nil {
		return hotelSnapshot{}, err
	}
	snap := hotelSnapshot{Hotel: h, Rooms: rooms}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, snap, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("hotel cache write failed")
		}
	}
	return snap, nil
}

func hotelKey(id int64) string { return fmt.Sprintf("hotel:%d", id) }
