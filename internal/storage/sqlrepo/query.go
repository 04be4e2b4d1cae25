package sqlrepo

import (
	"errors"

	sq "github.com/Masterminds/squirrel"

	"yoyo_hotels/internal/domain"
)

// Statements are assembled by squirrel so that values are always bound
// parameters; only column and table names appear in the SQL text.

// ErrEmptyList is returned instead of building an IN over no values.
var ErrEmptyList = errors.New("sqlrepo: empty IN list")

var hotelColumns = []string{"address_id", "name", "slug", "main_phone", "description", "star_rating"}

func listCitiesQuery(ph sq.PlaceholderFormat) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(ph).
		Select("region_id", "lat", "lng").From("city").
		ToSql()
}

// DISTINCT over (hotel_id, price) can yield several rows per hotel; the
// search service keeps the last one seen.
func pricedHotelsQuery(ph sq.PlaceholderFormat, f domain.RoomFilter) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(ph).
		Select("hotel_id", "price_per_night").Distinct().From("room_type").
		Where(sq.GtOrEq{"max_adults": f.Adults}).
		Where("price_per_night BETWEEN ? AND ?", f.MinBudget, f.MaxBudget).
		ToSql()
}

func findHotelsQuery(ph sq.PlaceholderFormat, f domain.HotelFilter) (string, []any, error) {
	// squirrel renders an empty IN as (1=0); refuse it instead
	if len(f.RegionIDs) == 0 || len(f.HotelIDs) == 0 {
		return "", nil, ErrEmptyList
	}
	b := sq.StatementBuilder.PlaceholderFormat(ph).
		Select(hotelColumns...).From("hotel").
		Where(sq.Eq{"address_id": f.RegionIDs}).
		Where(sq.Eq{"address_id": f.HotelIDs})
	if len(f.Stars) > 0 {
		b = b.Where(sq.Eq{"star_rating": f.Stars})
	}
	return b.ToSql()
}

func getHotelQuery(ph sq.PlaceholderFormat, id int64) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(ph).
		Select(hotelColumns...).From("hotel").
		Where(sq.Eq{"address_id": id}).
		ToSql()
}

func roomTypesQuery(ph sq.PlaceholderFormat, hotelID int64) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(ph).
		Select("hotel_id", "code", "name", "description", "max_adults", "price_per_night").
		From("room_type").
		Where(sq.Eq{"hotel_id": hotelID}).
		OrderBy("price_per_night ASC").
		ToSql()
}

func listHotelIDsQuery(ph sq.PlaceholderFormat) (string, []any, error) {
	return sq.StatementBuilder.PlaceholderFormat(ph).
		Select("address_id").From("hotel").OrderBy("address_id").
		ToSql()
}
