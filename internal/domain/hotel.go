package domain

// City is a geographic cluster of hotels. RegionID shares its identifier
// space with Hotel.AddressID.
type City struct {
	RegionID int64
	Lat, Lng float64
}

type Hotel struct {
	AddressID   int64  `json:"address_id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	MainPhone   string `json:"main_phone"`
	Description string `json:"description"`
	StarRating  int    `json:"star_rating"`
}

type RoomType struct {
	HotelID       int64   `json:"hotel_id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	MaxAdults     int     `json:"max_adults"`
	PricePerNight float64 `json:"price_per_night"`
}

// HotelPrice is one row of the capacity/budget query.
type HotelPrice struct {
	HotelID       int64
	PricePerNight float64
}
