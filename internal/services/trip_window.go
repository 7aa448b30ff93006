package services

import (
	"fmt"
	"itinerary-planner-service/internal/domain"
)

// ComputeTripWindow derives the daily window and the total minute budget.
//
// An end time that is not strictly after the start time is taken to be on
// the following day, so "09:00"-"09:00" is a 24 hour window. The day count
// is floored to one. The returned window may be infeasible; check Feasible.
func ComputeTripWindow(startTime, endTime string, numDays int) (domain.TripWindow, error) {
	start, err := domain.ParseClock(startTime)
	if err != nil {
		return domain.TripWindow{}, fmt.Errorf("trip window: start time: %w", err)
	}

	end, err := domain.ParseClock(endTime)
	if err != nil {
		return domain.TripWindow{}, fmt.Errorf("trip window: end time: %w", err)
	}

	if end <= start {
		end += domain.MinutesPerDay
	}

	days := max(1, numDays)
	hoursPerDay := float64(end-start) / 60.0
	totalHours := hoursPerDay * float64(days)

	return domain.TripWindow{
		StartMinute:        start,
		HoursPerDay:        hoursPerDay,
		Days:               days,
		TotalHours:         totalHours,
		TotalBudgetMinutes: totalHours * 60,
	}, nil
}
