package services

import (
	"cmp"
	"itinerary-planner-service/internal/domain"
	"slices"
)

// PrioritizeByDistance returns a copy of places ordered by ascending
// approximate distance from origin. The sort is stable so equally distant
// places keep their dataset order.
func PrioritizeByDistance(places []domain.Place, origin domain.Coordinates) []domain.Place {
	type ranked struct {
		place domain.Place
		dist  float64
	}

	rs := make([]ranked, 0, len(places))
	for _, p := range places {
		rs = append(rs, ranked{place: p, dist: ApproxDistance(origin, p.Coordinates)})
	}

	slices.SortStableFunc(rs, func(a, b ranked) int {
		return cmp.Compare(a.dist, b.dist)
	})

	out := make([]domain.Place, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.place)
	}
	return out
}
