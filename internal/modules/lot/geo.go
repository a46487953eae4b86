// README: Great-circle distance helpers for nearby-lot search.
package lot

import (
	"cmp"
	"math"
	"slices"

	"parking/internal/types"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two points.
func haversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// nearby keeps geocoded lots within radiusKm of p, closest first.
func nearby(lots []*ParkingLot, p types.Point, radiusKm float64) []NearbyLot {
	out := []NearbyLot{}
	for _, l := range lots {
		if l.Location == (types.Point{}) {
			continue
		}
		if d := haversineKm(p, l.Location); d <= radiusKm {
			out = append(out, NearbyLot{ParkingLot: l, DistanceKm: d})
		}
	}
	slices.SortFunc(out, func(a, b NearbyLot) int { return cmp.Compare(a.DistanceKm, b.DistanceKm) })
	return out
}
