package domain

import "math"

// MinHoursPerDay is the shortest daily window that still allows planning.
const MinHoursPerDay = 0.5

// Traveler inputs for a single planning run.
// An EndTime that is not strictly after StartTime crosses midnight.
// TripDate is display-only and never used for computation.
type TripRequest struct {
	Start     Coordinates
	StartTime string
	EndTime   string
	NumDays   int
	TripDate  string
}

// Derived daily window and the aggregate minute budget across all days.
type TripWindow struct {
	StartMinute        int
	HoursPerDay        float64
	Days               int
	TotalHours         float64
	TotalBudgetMinutes float64
}

// Feasible reports whether the daily window is long enough to plan anything.
func (w TripWindow) Feasible() bool {
	return w.HoursPerDay >= MinHoursPerDay
}

// EndMinute returns the end of the daily window in minutes since the
// start day's midnight; values above MinutesPerDay mean the next day.
func (w TripWindow) EndMinute() int {
	return w.StartMinute + int(math.Floor(w.HoursPerDay*60))
}
