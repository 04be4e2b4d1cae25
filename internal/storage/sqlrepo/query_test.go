package sqlrepo

import (
	"errors"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoyo_hotels/internal/domain"
)

func TestPricedHotelsQuery(t *testing.T) {
	q, args, err := pricedHotelsQuery(sq.Question, domain.RoomFilter{Adults: 2, MinBudget: 1000, MaxBudget: 1500})
	require.NoError(t, err)
	assert.Equal(t, "SELECT DISTINCT hotel_id, price_per_night FROM room_type WHERE max_adults >= ? AND price_per_night BETWEEN ? AND ?", q)
	assert.Equal(t, []any{2, 1000.0, 1500.0}, args)
}

func TestFindHotelsQuery_Dialects(t *testing.T) {
	f := domain.HotelFilter{RegionIDs: []int64{1, 2}, HotelIDs: []int64{3}, Stars: []int{5}}

	q, args, err := findHotelsQuery(sq.Question, f)
	require.NoError(t, err)
	assert.Equal(t, "SELECT address_id, name, slug, main_phone, description, star_rating FROM hotel "+
		"WHERE address_id IN (?,?) AND address_id IN (?) AND star_rating IN (?)", q)
	assert.Equal(t, []any{int64(1), int64(2), int64(3), 5}, args)

	q, _, err = findHotelsQuery(sq.Dollar, f)
	require.NoError(t, err)
	assert.Contains(t, q, "WHERE address_id IN ($1,$2) AND address_id IN ($3) AND star_rating IN ($4)")
}

func TestFindHotelsQuery_NoStarsNoStarClause(t *testing.T) {
	q, args, err := findHotelsQuery(sq.Question, domain.HotelFilter{RegionIDs: []int64{1}, HotelIDs: []int64{1}})
	require.NoError(t, err)
	assert.NotContains(t, q, "star_rating IN")
	assert.Len(t, args, 2)
}

func TestFindHotelsQuery_EmptyListFails(t *testing.T) {
	_, _, err := findHotelsQuery(sq.Question, domain.HotelFilter{RegionIDs: []int64{1}})
	assert.True(t, errors.Is(err, ErrEmptyList))

	_, _, err = findHotelsQuery(sq.Question, domain.HotelFilter{HotelIDs: []int64{1}})
	assert.True(t, errors.Is(err, ErrEmptyList))
}

func TestDetailQueries(t *testing.T) {
	q, args, err := getHotelQuery(sq.Dollar, 7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT address_id, name, slug, main_phone, description, star_rating FROM hotel WHERE address_id = $1", q)
	assert.Equal(t, []any{int64(7)}, args)

	q, args, err = roomTypesQuery(sq.Question, 7)
	require.NoError(t, err)
	assert.Equal(t, "SELECT hotel_id, code, name, description, max_adults, price_per_night FROM room_type WHERE hotel_id = ? ORDER BY price_per_night ASC", q)
	assert.Equal(t, []any{int64(7)}, args)
}

func TestQueries_ValuesStayBound(t *testing.T) {
	q, args, err := pricedHotelsQuery(sq.Question, domain.RoomFilter{Adults: 1, MinBudget: -1, MaxBudget: 1e9})
	require.NoError(t, err)
	assert.NotContains(t, q, "1e+09")
	assert.Len(t, args, 3)
}
