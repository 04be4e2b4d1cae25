package geo

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"yoyo_hotels/internal/domain"
)

const (
	tolerance   = 0.0001
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

type cityItem struct {
	ord  int
	city domain.City
	rect *rtreego.Rect
}

func (ci *cityItem) Bounds() *rtreego.Rect { return ci.rect }

// Index is an immutable R-tree over a city snapshot. Within on an Index
// returns exactly what the package-level Within returns for the same cities.
type Index struct {
	tree   *rtreego.Rtree
	cities []domain.City
}

func NewIndex(cities []domain.City) *Index {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for i, c := range cities {
		tree.Insert(&cityItem{
			ord:  i,
			city: c,
			rect: rtreego.Point{c.Lat, c.Lng}.ToRect(tolerance),
		})
	}
	return &Index{tree: tree, cities: cities}
}

func (x *Index) Len() int { return len(x.cities) }

func (x *Index) Within(p domain.Point, radiusKm float64) []int64 {
	if math.IsNaN(radiusKm) || radiusKm < 0 || len(x.cities) == 0 {
		return nil
	}
	bounds, ok := boundingBox(p, radiusKm)
	if !ok {
		return Within(x.cities, p, radiusKm)
	}

	hits := x.tree.SearchIntersect(bounds)
	items := make([]*cityItem, 0, len(hits))
	for _, h := range hits {
		ci, ok := h.(*cityItem)
		if !ok {
			continue
		}
		if Haversine(p.Lat, p.Lon, ci.city.Lat, ci.city.Lng) <= radiusKm {
			items = append(items, ci)
		}
	}
	if len(items) == 0 {
		return nil
	}
	// restore storage row order
	sort.Slice(items, func(i, j int) bool { return items[i].ord < items[j].ord })

	out := make([]int64, 0, len(items))
	for _, ci := range items {
		out = append(out, ci.city.RegionID)
	}
	return out
}

// boundingBox returns a lat/lng rectangle containing every point within
// radiusKm of p. It reports false when the box would wrap a pole or the
// antimeridian, in which case callers scan linearly.
func boundingBox(p domain.Point, radiusKm float64) (*rtreego.Rect, bool) {
	dLat := radiusKm / EarthRadiusKm * 180 / math.Pi
	if math.IsInf(dLat, 0) || math.Abs(p.Lat)+dLat >= 90 {
		return nil, false
	}
	// widest longitude span occurs at the latitude closest to a pole
	maxLat := math.Abs(p.Lat) + dLat
	dLon := math.Asin(math.Min(1, math.Sin(radians(dLat))/math.Cos(radians(maxLat)))) * 180 / math.Pi
	if p.Lon-dLon < -180 || p.Lon+dLon > 180 {
		return nil, false
	}
	pad := 2 * tolerance
	rect, err := rtreego.NewRect(
		rtreego.Point{p.Lat - dLat - tolerance, p.Lon - dLon - tolerance},
		[]float64{2*dLat + pad, 2*dLon + pad},
	)
	if err != nil {
		return nil, false
	}
	return rect, true
}
