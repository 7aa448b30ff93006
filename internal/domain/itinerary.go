package domain

import "math"

// Routing profiles understood by the routing collaborator.
const (
	ProfileDriving = "driving-car"
	ProfileWalking = "foot-walking"
)

type PlanStatus string

const (
	StatusOK                PlanStatus = "ok"
	StatusInvalidTimeFormat PlanStatus = "invalid_time_format"
	StatusInfeasibleWindow  PlanStatus = "infeasible_window"
	StatusNoOpenPlaces      PlanStatus = "no_open_places"
	StatusNoFeasiblePlaces  PlanStatus = "no_feasible_places"
)

// Message returns the text presented alongside an empty itinerary.
func (s PlanStatus) Message() string {
	switch s {
	case StatusInvalidTimeFormat:
		return "Start & End times must use the HH:MM format."
	case StatusInfeasibleWindow:
		return "Your daily time window is too short. Allow at least 30 minutes per day."
	case StatusNoOpenPlaces:
		return "No places found. None of the places are open during your selected hours."
	case StatusNoFeasiblePlaces:
		return "No places found. Increase time or choose nearer locations."
	default:
		return ""
	}
}

// One accepted stop. Entries are created by the itinerary builder in
// visiting order and never reordered afterwards.
type ItineraryEntry struct {
	Order                  int
	Place                  Place
	DistanceFromPreviousKm float64
	TravelMinutes          float64
	VisitMinutes           float64
	RemainingBudgetMinutes float64
	Routed                 bool
	Geometry               []Coordinates
}

// A candidate that did not fit the remaining budget when it was considered.
type Rejection struct {
	Place                  Place
	TravelMinutes          float64
	VisitMinutes           float64
	RemainingBudgetMinutes float64
}

// Ordered vertices connecting two consecutive itinerary points.
type RouteSegment struct {
	From     Coordinates
	To       Coordinates
	Profile  string
	Vertices []Coordinates
}

// The outcome of one planning run. An empty Entries slice always comes
// with a non-OK Status and a Message for the traveler.
type Itinerary struct {
	RunID          string
	Status         PlanStatus
	Message        string
	TripDate       string
	Start          Coordinates
	Window         TripWindow
	Entries        []ItineraryEntry
	Rejected       []Rejection
	FailOpenFilter bool
	Segments       []RouteSegment
	Path           []Coordinates
	SkippedLegs    int
	MapsURL        string
	Artifacts      map[string]string
}

// Empty reports whether the run produced no stops.
func (it *Itinerary) Empty() bool {
	return it == nil || len(it.Entries) == 0
}

// Round2 rounds to two decimals for presentation.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
