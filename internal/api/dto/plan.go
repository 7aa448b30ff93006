package dto

// Coordinates are pointers so an omitted value can be told apart from 0.
type PlanRequest struct {
	StartLat  *float64 `json:"start_lat"`
	StartLon  *float64 `json:"start_lon"`
	StartTime string   `json:"start_time" validate:"max=16"`
	EndTime   string   `json:"end_time" validate:"max=16"`
	NumDays   int      `json:"num_days" validate:"gte=0,lte=60"`
	TripDate  string   `json:"trip_date" validate:"omitempty,max=32"`
}

type PlanStopResponse struct {
	Order                  int     `json:"order"`
	PlaceID                int     `json:"place_id"`
	Name                   string  `json:"name"`
	Category               string  `json:"category"`
	Lat                    float64 `json:"lat"`
	Lon                    float64 `json:"lon"`
	VisitStart             string  `json:"visit_start"`
	VisitEnd               string  `json:"visit_end"`
	SpendTimeMinutes       float64 `json:"spend_time_minutes"`
	DistanceFromPreviousKm float64 `json:"distance_from_previous_km"`
	TravelMinutes          float64 `json:"travel_minutes"`
	RemainingMinutes       float64 `json:"remaining_minutes"`
	Routed                 bool    `json:"routed"`
	Description            string  `json:"description"`
}

type RejectedPlaceResponse struct {
	PlaceID          int     `json:"place_id"`
	Name             string  `json:"name"`
	TravelMinutes    float64 `json:"travel_minutes"`
	VisitMinutes     float64 `json:"visit_minutes"`
	RemainingMinutes float64 `json:"remaining_minutes"`
}

type PlanResponse struct {
	RunID          string                  `json:"run_id,omitempty"`
	Status         string                  `json:"status"`
	Message        string                  `json:"message,omitempty"`
	TripDate       string                  `json:"trip_date,omitempty"`
	TotalDays      int                     `json:"total_days"`
	HoursPerDay    float64                 `json:"hours_per_day"`
	TotalHours     float64                 `json:"total_hours"`
	Places         []PlanStopResponse      `json:"places"`
	Rejected       []RejectedPlaceResponse `json:"rejected"`
	Route          [][2]float64            `json:"route"`
	SkippedLegs    int                     `json:"skipped_legs"`
	FailOpenFilter bool                    `json:"fail_open_filter"`
	MapsURL        string                  `json:"maps_url,omitempty"`
	Artifacts      map[string]string       `json:"artifacts,omitempty"`
}
