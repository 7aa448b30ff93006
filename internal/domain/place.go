package domain

// DefaultSpendMinutes is used when a place carries no visit duration.
const DefaultSpendMinutes = 30

// Represents a single point of interest that can be added to an itinerary.
// VisitStart and VisitEnd hold the raw HH:MM text from the dataset; an empty
// or malformed value means the place is treated as always open.
// A Place is immutable input and is never modified once loaded.
type Place struct {
	PlaceID          int
	Name             string
	Category         string
	Coordinates      Coordinates
	VisitStart       string
	VisitEnd         string
	SpendTimeMinutes *int
	Description      string
}

// VisitMinutes returns the expected time spent at the place.
func (p Place) VisitMinutes() float64 {
	if p.SpendTimeMinutes == nil {
		return DefaultSpendMinutes
	}
	return float64(*p.SpendTimeMinutes)
}
