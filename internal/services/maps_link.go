package services

import (
	"itinerary-planner-service/internal/domain"
	"net/url"
	"strconv"
	"strings"
)

const googleMapsDirBase = "https://www.google.com/maps/dir/"

// GoogleMapsURL builds a multi-stop driving directions link from start
// through every stop, ending at the last one. It returns "" without stops.
func GoogleMapsURL(start domain.Coordinates, stops []domain.Coordinates) string {
	if len(stops) == 0 {
		return ""
	}

	q := url.Values{}
	q.Set("api", "1")
	q.Set("origin", latLonParam(start))
	q.Set("destination", latLonParam(stops[len(stops)-1]))

	if len(stops) > 1 {
		waypoints := make([]string, 0, len(stops)-1)
		for _, s := range stops[:len(stops)-1] {
			waypoints = append(waypoints, latLonParam(s))
		}
		q.Set("waypoints", strings.Join(waypoints, "|"))
	}
	q.Set("travelmode", "driving")

	return googleMapsDirBase + "?" + q.Encode()
}

func latLonParam(c domain.Coordinates) string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}
