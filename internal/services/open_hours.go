package services

import (
	"itinerary-planner-service/internal/domain"
	"math"
)

// OpenHoursResult is the outcome of FilterOpenPlaces.
// FailOpen is set when the trip window itself could not be evaluated and
// every candidate was passed through unfiltered.
type OpenHoursResult struct {
	Open     []domain.Place
	FailOpen bool
}

// FilterOpenPlaces keeps the places whose opening window overlaps the
// traveler's daily window.
//
// Places with a missing or malformed opening or closing time always pass, so
// bad data never silently hides a place. If the trip window is unusable the
// filter fails open and returns every candidate.
func FilterOpenPlaces(places []domain.Place, window domain.TripWindow) OpenHoursResult {
	if !windowUsable(window) {
		out := make([]domain.Place, len(places))
		copy(out, places)
		return OpenHoursResult{Open: out, FailOpen: true}
	}

	out := make([]domain.Place, 0, len(places))
	for _, p := range places {
		if IsOpenDuring(p, window) {
			out = append(out, p)
		}
	}

	return OpenHoursResult{Open: out}
}

// IsOpenDuring applies a half-open interval overlap test, shifting either
// window by a day when it wraps past midnight.
func IsOpenDuring(p domain.Place, window domain.TripWindow) bool {
	placeOpen, err := domain.ParseClock(p.VisitStart)
	if err != nil {
		return true
	}
	placeClose, err := domain.ParseClock(p.VisitEnd)
	if err != nil {
		return true
	}

	if placeClose <= placeOpen {
		placeClose += domain.MinutesPerDay
	}

	userStart := window.StartMinute
	userEnd := window.EndMinute()
	if userEnd <= userStart {
		userEnd += domain.MinutesPerDay
	}

	return max(userStart, placeOpen) < min(userEnd, placeClose)
}

func windowUsable(w domain.TripWindow) bool {
	if w.StartMinute < 0 || w.StartMinute >= domain.MinutesPerDay {
		return false
	}
	return !math.IsNaN(w.HoursPerDay) && !math.IsInf(w.HoursPerDay, 0)
}
