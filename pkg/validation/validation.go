package validation

import (
	"strconv"
	"strings"
)

// ValidateCoordinates checks latitude/longitude ranges.
func ValidateCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// ValidateCoordinateStrings parses string coordinates (the wire shape
// used by trip requests and events) and range-checks them.
func ValidateCoordinateStrings(lat, lng string) bool {
	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return false
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return false
	}
	return ValidateCoordinates(latF, lngF)
}

// ValidateID checks an opaque identifier field.
func ValidateID(id string) bool {
	id = strings.TrimSpace(id)
	return id != "" && len(id) <= 200
}
