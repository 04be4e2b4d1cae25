package sqlrepo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"

	"yoyo_hotels/internal/adapters/observability"
	"yoyo_hotels/internal/domain"
)

// Repo reads the city, hotel and room_type tables. Every failure it returns
// matches domain.ErrStorage, except domain.ErrNotFound from GetHotel.
type Repo struct {
	db *sql.DB
	ph sq.PlaceholderFormat
}

// New binds the repo to db; ph is sq.Question for MySQL and sq.Dollar for
// PostgreSQL (see DialectFor).
func New(db *sql.DB, ph sq.PlaceholderFormat) *Repo { return &Repo{db: db, ph: ph} }

func (r *Repo) ListCities(ctx context.Context) (out []domain.City, err error) {
	defer observe("list_cities", time.Now(), &err)

	q, args, err := listCitiesQuery(r.ph)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StorageErr("list cities", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.RegionID, &c.Lat, &c.Lng); err != nil {
			return nil, domain.StorageErr("scan city", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list cities", err)
	}
	return out, nil
}

func (r *Repo) PricedHotels(ctx context.Context, f domain.RoomFilter) (out []domain.HotelPrice, err error) {
	defer observe("priced_hotels", time.Now(), &err)

	q, args, err := pricedHotelsQuery(r.ph, f)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StorageErr("priced hotels", err)
	}
	defer rows.Close()

	for rows.Next() {
		var hp domain.HotelPrice
		if err := rows.Scan(&hp.HotelID, &hp.PricePerNight); err != nil {
			return nil, domain.StorageErr("scan hotel price", err)
		}
		out = append(out, hp)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("priced hotels", err)
	}
	return out, nil
}

func (r *Repo) FindHotels(ctx context.Context, f domain.HotelFilter) (out []domain.Hotel, err error) {
	if len(f.RegionIDs) == 0 || len(f.HotelIDs) == 0 {
		return nil, nil
	}
	defer observe("find_hotels", time.Now(), &err)

	q, args, err := findHotelsQuery(r.ph, f)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StorageErr("find hotels", err)
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanHotel(rows)
		if err != nil {
			return nil, domain.StorageErr("scan hotel", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("find hotels", err)
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (h domain.Hotel, err error) {
	defer observe("get_hotel", time.Now(), &err)

	q, args, err := getHotelQuery(r.ph, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	h, err = scanHotel(r.db.QueryRowContext(ctx, q, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Hotel{}, domain.ErrNotFound
		}
		return domain.Hotel{}, domain.StorageErr("get hotel", err)
	}
	return h, nil
}

func (r *Repo) ListRoomTypes(ctx context.Context, hotelID int64) (out []domain.RoomType, err error) {
	defer observe("list_room_types", time.Now(), &err)

	q, args, err := roomTypesQuery(r.ph, hotelID)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StorageErr("list room types", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rt domain.RoomType
		var name, desc sql.NullString
		if err := rows.Scan(&rt.HotelID, &rt.Code, &name, &desc, &rt.MaxAdults, &rt.PricePerNight); err != nil {
			return nil, domain.StorageErr("scan room type", err)
		}
		rt.Name, rt.Description = name.String, desc.String
		out = append(out, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list room types", err)
	}
	return out, nil
}

func (r *Repo) ListHotelIDs(ctx context.Context) (out []int64, err error) {
	defer observe("list_hotel_ids", time.Now(), &err)

	q, args, err := listHotelIDsQuery(r.ph)
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, domain.StorageErr("list hotel ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, domain.StorageErr("scan hotel id", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.StorageErr("list hotel ids", err)
	}
	return out, nil
}

type scanner interface{ Scan(dest ...any) error }

// scanHotel tolerates NULL text columns; the admin system does not enforce them.
func scanHotel(s scanner) (domain.Hotel, error) {
	var h domain.Hotel
	var name, slug, phone, desc sql.NullString
	var stars sql.NullInt64
	if err := s.Scan(&h.AddressID, &name, &slug, &phone, &desc, &stars); err != nil {
		return domain.Hotel{}, err
	}
	h.Name, h.Slug, h.MainPhone, h.Description = name.String, slug.String, phone.String, desc.String
	h.StarRating = int(stars.Int64)
	return h, nil
}

func observe(query string, start time.Time, errp *error) {
	status := "ok"
	switch {
	case *errp == nil:
	case errors.Is(*errp, domain.ErrNotFound):
		status = "not_found"
	default:
		status = "error"
	}
	observability.ObserveQuery(query, status, time.Since(start))
}
