package events

// CreateTripEvent is published to trip_create_wait_driver when a trip
// is created. Coordinates stay strings to match the driver service's
// expected shape.
type CreateTripEvent struct {
	TripID      string `json:"tripId"`
	UserID      string `json:"userId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

// AcceptTripEvent arrives on trip_created when a driver claims a trip.
type AcceptTripEvent struct {
	TripID   string `json:"tripId"`
	DriverID string `json:"driverId"`
}

// LogEvent mirrors a lifecycle log record onto the logs topic.
type LogEvent struct {
	Message   string `json:"message"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}
