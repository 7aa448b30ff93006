package dto

type PlaceResponse struct {
	PlaceID          int     `json:"place_id"`
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	VisitStart       string  `json:"visit_start"`
	VisitEnd         string  `json:"visit_end"`
	SpendTimeMinutes *int    `json:"spend_time_minutes"`
	Description      string  `json:"description"`
}

type ListPlacesResponse struct {
	Places []PlaceResponse `json:"places"`
}
