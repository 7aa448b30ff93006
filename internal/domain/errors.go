package domain

import "errors"

// Planning outcomes. The first group never escapes a planning run as an
// error; it is reported through Itinerary.Status instead.
var (
	ErrInvalidTimeFormat   = errors.New("invalid time format")
	ErrInfeasibleWindow    = errors.New("daily window shorter than 30 minutes")
	ErrNoOpenPlaces        = errors.New("no places open during the trip window")
	ErrNoFeasiblePlaces    = errors.New("no place fits the time budget")
	ErrRoutingUnavailable  = errors.New("routing unavailable")
	ErrImplausibleDistance = errors.New("distance too large to route")
	ErrNoGeometry          = errors.New("route response has no geometry")
)

// Terminal input failures returned to the caller.
var (
	ErrInvalidLocation = errors.New("invalid location data")
	ErrMissingTimes    = errors.New("start and end times required")
	ErrDatasetMissing  = errors.New("places dataset missing")
	ErrEmptyDataset    = errors.New("places dataset empty")
)

// UserMessage returns the human-readable text shown for a terminal failure.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLocation):
		return "Invalid location data. Check GPS or manual location."
	case errors.Is(err, ErrMissingTimes):
		return "Start & End times required."
	case errors.Is(err, ErrDatasetMissing):
		return "Places database missing."
	case errors.Is(err, ErrEmptyDataset):
		return "Places CSV empty."
	default:
		return "Something went wrong while planning your trip."
	}
}
