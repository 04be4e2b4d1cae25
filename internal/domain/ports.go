package domain

import "context"

type CityRepository interface {
	// ListCities returns every city in storage row order.
	ListCities(ctx context.Context) ([]City, error)
}

type HotelRepository interface {
	CityRepository

	// Search paths
	PricedHotels(ctx context.Context, f RoomFilter) ([]HotelPrice, error)
	FindHotels(ctx context.Context, f HotelFilter) ([]Hotel, error)

	// Detail paths
	GetHotel(ctx context.Context, id int64) (Hotel, error)
	ListRoomTypes(ctx context.Context, hotelID int64) ([]RoomType, error)
	ListHotelIDs(ctx context.Context) ([]int64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// AvailabilityChecker decides whether a room type can be booked for the
// party on the given date. date may be empty.
type AvailabilityChecker interface {
	Available(ctx context.Context, hotelID int64, room RoomType, date string, adults int) (bool, error)
}

// RoomFilter selects room types by capacity and inclusive price range.
type RoomFilter struct {
	Adults    int
	MinBudget float64
	MaxBudget float64
}

// HotelFilter selects hotels whose address_id is in both RegionIDs and
// HotelIDs, and whose star rating is in Stars when Stars is non-empty.
type HotelFilter struct {
	RegionIDs []int64
	HotelIDs  []int64
	Stars     []int
}

type Point struct{ Lat, Lon float64 }

type SearchQuery struct {
	Point     Point
	RadiusKm  float64
	Date      string
	Adults    int
	MinBudget float64
	MaxBudget float64
	Stars     []int
}

// SearchResult is one hotel in the search response.
type SearchResult struct {
	AddressID     int64   `json:"address_id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	MainPhone     string  `json:"main_phone"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night"`
	Date          string  `json:"date"`
	Adults        int     `json:"adults"`
	StarRating    int     `json:"star_rating"`
}

type RoomView struct {
	HotelID        int64   `json:"hotel_id"`
	Code           string  `json:"code"`
	RoomTypeName   string  `json:"room_type_name"`
	Description    string  `json:"description"`
	MaxAdults      int     `json:"max_adults"`
	PricePerNight  float64 `json:"price_per_night"`
	Available      bool    `json:"available"`
	CanAccommodate bool    `json:"can_accommodate"`
}

// HotelDetail is the detail page model. Hotel is nil and Error is set when
// the hotel does not exist.
type HotelDetail struct {
	Hotel  *Hotel     `json:"hotel,omitempty"`
	Rooms  []RoomView `json:"rooms"`
	Date   string     `json:"date"`
	Adults int        `json:"adults"`
	Error  string     `json:"error,omitempty"`
}
