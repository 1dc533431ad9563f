package trips

import "time"

// TripStatus enumerates the lifecycle states.
const (
	StatusPending   = "PENDING"
	StatusAccepted  = "ACCEPTED"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
)

// Trip represents one ride request from creation to a terminal outcome.
type Trip struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	DriverID    *string   `json:"driver_id,omitempty"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Latitude    string    `json:"latitude"`
	Longitude   string    `json:"longitude"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TripRequest is the body for POST /trips.
// Coordinates travel as strings on the wire.
type TripRequest struct {
	UserID      string `json:"userId"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Latitude    string `json:"latitude"`
	Longitude   string `json:"longitude"`
}

// UpdateStatusRequest is the body for PATCH /trips/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// TripResponse is the enriched view returned by GET /trips/:id,
// with display names resolved through the user service.
type TripResponse struct {
	ID          string `json:"id"`
	UserName    string `json:"userName"`
	DriverName  string `json:"driverName"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Status      string `json:"status"`
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusAccepted, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// TerminalStatus reports whether s admits no further transition.
func TerminalStatus(s string) bool {
	return s == StatusCompleted || s == StatusCancelled
}
