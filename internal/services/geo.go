package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
)

const (
	// One degree of latitude is roughly 111 km.
	KmPerDegree = 111.0
	// MaxRoutableKm is the great-circle distance above which a leg is never
	// sent to the routing collaborator.
	MaxRoutableKm = 3000.0

	unreachableDistance = 999999.0
	earthRadiusKm       = 6371.0
)

// ApproxDistance returns the planar Euclidean distance in degree space.
// It is only meant for ranking and for the calibrated fallback below.
// Non-finite input yields a sentinel that sorts after every real place.
func ApproxDistance(a, b domain.Coordinates) float64 {
	d := math.Hypot(a.Lat-b.Lat, a.Lon-b.Lon)
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return unreachableDistance
	}
	return d
}

// FallbackDistanceKm approximates travel distance when no route is available.
func FallbackDistanceKm(a, b domain.Coordinates) float64 {
	return ApproxDistance(a, b) * KmPerDegree
}

// HaversineKm returns the great-circle distance in kilometers.
func HaversineKm(a, b domain.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180.0
	dLon := (b.Lon - a.Lon) * math.Pi / 180.0

	lat1 := a.Lat * math.Pi / 180.0
	lat2 := b.Lat * math.Pi / 180.0

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Routable reports whether a leg is plausible enough to ask the router about.
func Routable(a, b domain.Coordinates) bool {
	d := HaversineKm(a, b)
	return !math.IsNaN(d) && d <= MaxRoutableKm
}
