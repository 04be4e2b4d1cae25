package httpserver

import (
	"net/url"
	"strconv"
	"strings"

	"yoyo_hotels/internal/app"
	"yoyo_hotels/internal/domain"
)

const msgBadLatLon = "Invalid or missing lat/lon"

// parseSearchQuery turns query parameters into a search query, applying the
// defaults for absent optional parameters. Range checks happen in the
// search service.
func parseSearchQuery(v url.Values) (domain.SearchQuery, error) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(v.Get("lat")), 64)
	lon, errLon := strconv.ParseFloat(strings.TrimSpace(v.Get("lon")), 64)
	if errLat != nil || errLon != nil {
		return domain.SearchQuery{}, &domain.ParamError{Param: "lat/lon", Reason: "missing or not a number"}
	}

	q := app.DefaultSearchQuery(domain.Point{Lat: lat, Lon: lon})
	q.Date = v.Get("date")

	var err error
	if q.RadiusKm, err = floatParam(v, "radius", q.RadiusKm); err != nil {
		return domain.SearchQuery{}, err
	}
	if q.MinBudget, err = floatParam(v, "min_budget", q.MinBudget); err != nil {
		return domain.SearchQuery{}, err
	}
	if q.MaxBudget, err = floatParam(v, "max_budget", q.MaxBudget); err != nil {
		return domain.SearchQuery{}, err
	}
	if s := strings.TrimSpace(v.Get("adults")); s != "" {
		if q.Adults, err = strconv.Atoi(s); err != nil {
			return domain.SearchQuery{}, &domain.ParamError{Param: "adults", Reason: "must be an integer"}
		}
	}

	// jQuery-style "star_ratings[]" and plain repeated "star_ratings";
	// copied so the request's own slices are never appended into
	raw := append(append([]string(nil), v["star_ratings[]"]...), v["star_ratings"]...)
	for _, s := range raw {
		for _, part := range strings.Split(s, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			n, err := strconv.Atoi(part)
			if err != nil {
				return domain.SearchQuery{}, &domain.ParamError{Param: "star_ratings", Reason: "must be integers"}
			}
			q.Stars = append(q.Stars, n)
		}
	}
	return q, nil
}

func floatParam(v url.Values, name string, def float64) (float64, error) {
	s := strings.TrimSpace(v.Get(name))
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &domain.ParamError{Param: name, Reason: "must be a number"}
	}
	return f, nil
}

// detailAdults never fails: anything but a positive integer means the default.
func detailAdults(v url.Values) int {
	n, err := strconv.Atoi(strings.TrimSpace(v.Get("adults")))
	if err != nil || n < 1 {
		return app.DefaultAdults
	}
	return n
}
