package app_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"yoyo_hotels/internal/domain"
)

// ---- fakes ----

type fakeRepo struct {
	mu sync.Mutex

	cities []domain.City
	prices []domain.HotelPrice
	hotels []domain.Hotel
	rooms  map[int64][]domain.RoomType

	citiesErr error
	getErr    map[int64]error

	calls      map[string]int
	lastFilter domain.HotelFilter
	lastRooms  domain.RoomFilter
}

func (f *fakeRepo) hit(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeRepo) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepo) ListCities(ctx context.Context) ([]domain.City, error) {
	f.hit("ListCities")
	if f.citiesErr != nil {
		return nil, f.citiesErr
	}
	return append([]domain.City(nil), f.cities...), nil
}

// PricedHotels applies the same predicate as the SQL.
func (f *fakeRepo) PricedHotels(ctx context.Context, rf domain.RoomFilter) ([]domain.HotelPrice, error) {
	f.hit("PricedHotels")
	f.lastRooms = rf
	var out []domain.HotelPrice
	for _, hp := range f.prices {
		for _, rt := range f.rooms[hp.HotelID] {
			if rt.PricePerNight == hp.PricePerNight && rt.MaxAdults >= rf.Adults &&
				hp.PricePerNight >= rf.MinBudget && hp.PricePerNight <= rf.MaxBudget {
				out = append(out, hp)
				break
			}
		}
	}
	return out, nil
}

// FindHotels applies the same predicate as the SQL.
func (f *fakeRepo) FindHotels(ctx context.Context, hf domain.HotelFilter) ([]domain.Hotel, error) {
	f.hit("FindHotels")
	f.lastFilter = hf
	var out []domain.Hotel
	for _, h := range f.hotels {
		if contains(hf.RegionIDs, h.AddressID) && contains(hf.HotelIDs, h.AddressID) &&
			(len(hf.Stars) == 0 || contains(hf.Stars, h.StarRating)) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetHotel(ctx context.Context, id int64) (domain.Hotel, error) {
	f.hit("GetHotel")
	if err := f.getErr[id]; err != nil {
		return domain.Hotel{}, err
	}
	for _, h := range f.hotels {
		if h.AddressID == id {
			return h, nil
		}
	}
	return domain.Hotel{}, domain.ErrNotFound
}

func (f *fakeRepo) ListRoomTypes(ctx context.Context, hotelID int64) ([]domain.RoomType, error) {
	f.hit("ListRoomTypes")
	return append([]domain.RoomType(nil), f.rooms[hotelID]...), nil
}

func (f *fakeRepo) ListHotelIDs(ctx context.Context) ([]int64, error) {
	f.hit("ListHotelIDs")
	var ids []int64
	for _, h := range f.hotels {
		ids = append(ids, h.AddressID)
	}
	return ids, nil
}

// fakeCache round-trips through JSON like the Redis adapter does.
type fakeCache struct {
	mu     sync.Mutex
	store  map[string][]byte
	getErr error
	sets   int
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	b, ok := c.store[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if c.store == nil {
		c.store = map[string][]byte{}
	}
	c.store[key] = b
	c.sets++
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

type fakeAvailability struct {
	booked map[string]bool // room code -> fully booked
	err    error
	calls  int
	dates  []string
}

func (a *fakeAvailability) Available(ctx context.Context, hotelID int64, room domain.RoomType, date string, adults int) (bool, error) {
	a.calls++
	a.dates = append(a.dates, date)
	if a.err != nil {
		return false, a.err
	}
	return !a.booked[room.Code], nil
}

var errBoom = errors.New("boom")

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
