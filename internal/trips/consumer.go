package trips

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"trip-service/internal/events"
	"trip-service/internal/logger"
	"trip-service/internal/metrics"
	"trip-service/pkg/kafka"
)

// AcceptanceGroup is this service's consumer group on the acceptance topic.
const AcceptanceGroup = "trip-service-group"

// DecodeAcceptEvent parses an inbound acceptance payload. Both ids are
// required; any failure wraps ErrMalformedEvent.
func DecodeAcceptEvent(data []byte) (events.AcceptTripEvent, error) {
	var ev events.AcceptTripEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return events.AcceptTripEvent{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if ev.TripID == "" || ev.DriverID == "" {
		return events.AcceptTripEvent{}, fmt.Errorf("%w: missing tripId or driverId", ErrMalformedEvent)
	}
	return ev, nil
}

// StartAcceptanceConsumer subscribes to the acceptance topic and feeds
// each event through ApplyAcceptance. Delivery is at least once and the
// topic is keyed by trip id, so redeliveries are absorbed by the
// idempotent transition and ordering only matters per trip.
//
// Undecodable and unknown-trip events are counted, recorded, and
// dropped. There is no dead-letter topic yet; the malformed counter is
// the only trace such an event leaves.
// TODO: route dropped events to a trip_created_dlq topic.
func (s *Service) StartAcceptanceConsumer(ctx context.Context) {
	s.bus.Subscribe(ctx, kafka.TopicTripCreated, AcceptanceGroup, func(data []byte) error {
		metrics.AcceptEventsTotal.Inc()

		ev, err := DecodeAcceptEvent(data)
		if err != nil {
			metrics.AcceptEventsMalformedTotal.Inc()
			logger.Error("dropping undecodable acceptance event",
				map[string]any{"payload": string(data), "error": err.Error()})
			return nil
		}

		applied, err := s.ApplyAcceptance(ctx, ev.TripID, ev.DriverID)
		switch {
		case err == nil && applied:
			metrics.AcceptEventsAppliedTotal.Inc()
			logger.Info("driver accepted trip",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID})
		case err == nil:
			logger.Info("duplicate acceptance ignored",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID})
		case errors.Is(err, ErrNotFound):
			metrics.AcceptEventsUnknownTripTotal.Inc()
			logger.Error("acceptance for unknown trip dropped",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID})
		case errors.Is(err, ErrConflictingAcceptance):
			metrics.AcceptEventsConflictTotal.Inc()
			logger.Warn("conflicting acceptance dropped, original assignment kept",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID})
		case errors.Is(err, ErrInvalidTransition):
			logger.Warn("acceptance for non-pending trip dropped",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID, "error": err.Error()})
		default:
			// store failure or similar; let the bus log it too
			logger.Error("failed to apply acceptance event",
				map[string]any{"trip_id": ev.TripID, "driver_id": ev.DriverID, "error": err.Error()})
			return err
		}
		return nil
	})
}
