package geo

import "yoyo_hotels/internal/domain"

// DefaultRadiusKm is used when a search does not specify a radius.
const DefaultRadiusKm = 5.0

// Within scans cities and returns the region ids whose distance to p is at
// most radiusKm, in the order the cities were given.
func Within(cities []domain.City, p domain.Point, radiusKm float64) []int64 {
	var out []int64
	for _, c := range cities {
		if Haversine(p.Lat, p.Lon, c.Lat, c.Lng) <= radiusKm {
			out = append(out, c.RegionID)
		}
	}
	return out
}
