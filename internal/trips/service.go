package trips

import (
	"context"
	"fmt"
	"strings"
	"time"

	"trip-service/internal/events"
	"trip-service/internal/logger"
	"trip-service/internal/metrics"
	"trip-service/internal/users"
	"trip-service/pkg/kafka"
	"trip-service/pkg/validation"
)

// WaitingMessage is the acknowledgement returned on create; the driver
// service's acceptance arrives later over the bus.
const WaitingMessage = "Waiting for driver to accept the trip"

// Bus is the publish/subscribe boundary. *kafka.Client satisfies it.
type Bus interface {
	Publish(ctx context.Context, topic, key string, value any) error
	Subscribe(ctx context.Context, topic, group string, handler func([]byte) error)
}

// StatusCache is an optional read-through cache for GetStatus.
// *redis.Client satisfies it.
type StatusCache interface {
	SetTripStatus(ctx context.Context, tripID, status string) error
	GetTripStatus(ctx context.Context, tripID string) (string, error)
}

// StatusNotifier pushes status changes to live subscribers.
// *tracking.Hub satisfies it.
type StatusNotifier interface {
	BroadcastStatus(tripID, status, driverID string)
}

// Policy selects how explicit status updates are guarded.
type Policy string

const (
	// PolicyGuarded rejects transitions that are not forward-reachable
	// in the lifecycle graph.
	PolicyGuarded Policy = "guarded"
	// PolicyPermissive overwrites status unconditionally, matching the
	// driver-facing contract some admin tooling still relies on.
	PolicyPermissive Policy = "permissive"
)

// Service owns the trip lifecycle: creation, queries, explicit status
// updates, and the acceptance transition shared with the bus consumer.
type Service struct {
	store  Store
	bus    Bus
	names  users.NameResolver
	cache  StatusCache
	notify StatusNotifier
	policy Policy
	locks  *keyedMutex

	resolveTimeout time.Duration
}

// NewService creates a trip service. cache and notifier are optional,
// attached via SetCache / SetNotifier after construction.
func NewService(store Store, bus Bus, names users.NameResolver, policy Policy) *Service {
	if policy != PolicyPermissive {
		policy = PolicyGuarded
	}
	return &Service{
		store:          store,
		bus:            bus,
		names:          names,
		policy:         policy,
		locks:          newKeyedMutex(),
		resolveTimeout: 5 * time.Second,
	}
}

// SetCache attaches the status cache.
func (s *Service) SetCache(c StatusCache) { s.cache = c }

// SetNotifier attaches the websocket notifier.
func (s *Service) SetNotifier(n StatusNotifier) { s.notify = n }

// Create validates the request, persists a PENDING trip, and publishes
// a CreateTripEvent keyed by the new trip id. The publish happens only
// after the write is confirmed, so the event can never reference a trip
// that does not exist. A publish failure is recorded but does not fail
// the create; the driver service can still discover the trip by query.
func (s *Service) Create(ctx context.Context, req TripRequest) (string, string, error) {
	if err := validateRequest(req); err != nil {
		return "", "", err
	}

	trip := &Trip{
		UserID:      req.UserID,
		Origin:      req.Origin,
		Destination: req.Destination,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		Status:      StatusPending,
	}

	stored, err := s.store.Upsert(ctx, trip)
	if err != nil {
		return "", "", err
	}

	ev := events.CreateTripEvent{
		TripID:      stored.ID,
		UserID:      stored.UserID,
		Origin:      stored.Origin,
		Destination: stored.Destination,
		Latitude:    stored.Latitude,
		Longitude:   stored.Longitude,
	}
	if err := s.bus.Publish(ctx, kafka.TopicTripCreateWaitDriver, stored.ID, ev); err != nil {
		logger.Error("failed to publish trip created event",
			map[string]any{"trip_id": stored.ID, "error": err.Error()})
	} else {
		logger.Info("trip created, waiting for driver",
			map[string]any{"trip_id": stored.ID, "user_id": stored.UserID})
	}

	metrics.TripsCreatedTotal.Inc()
	s.cacheStatus(ctx, stored.ID, StatusPending)

	return stored.ID, WaitingMessage, nil
}

// GetStatus returns the trip's current status, serving from the cache
// when it can.
func (s *Service) GetStatus(ctx context.Context, tripID string) (string, error) {
	if s.cache != nil {
		if status, err := s.cache.GetTripStatus(ctx, tripID); err == nil && status != "" {
			return status, nil
		}
	}

	trip, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return "", err
	}
	s.cacheStatus(ctx, tripID, trip.Status)
	return trip.Status, nil
}

// GetDetails returns the trip enriched with display names resolved
// through the user service, under a bounded timeout. A gateway failure
// surfaces as ErrUpstreamUnavailable with no partial response.
func (s *Service) GetDetails(ctx context.Context, tripID string) (*TripResponse, error) {
	trip, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return nil, err
	}

	driverID := ""
	if trip.DriverID != nil {
		driverID = *trip.DriverID
	}

	rctx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	names, err := s.names.ResolveNames(rctx, trip.UserID, driverID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return &TripResponse{
		ID:          trip.ID,
		UserName:    names.UserName,
		DriverName:  names.DriverName,
		Origin:      trip.Origin,
		Destination: trip.Destination,
		Status:      trip.Status,
	}, nil
}

// UpdateStatus moves a trip to the requested status under the
// configured policy. Updating to the current status is a no-op.
func (s *Service) UpdateStatus(ctx context.Context, tripID, status string) (string, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	if !ValidStatus(status) {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, status)
	}

	s.locks.Lock(tripID)
	defer s.locks.Unlock(tripID)

	trip, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return "", err
	}

	message := "Trip status updated to " + status
	if trip.Status == status {
		return message, nil
	}
	if s.policy == PolicyGuarded && !forwardReachable(trip.Status, status) {
		return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, trip.Status, status)
	}

	trip.Status = status
	updated, err := s.store.Upsert(ctx, trip)
	if err != nil {
		return "", err
	}

	s.afterTransition(ctx, updated)
	return message, nil
}

// ApplyAcceptance is the single transition function for driver
// acceptance, used by the consumer. PENDING trips gain the driver and
// become ACCEPTED. Redelivery with the same driver is a no-op
// (applied=false). A different driver on an already-assigned trip is a
// conflict; the first assignment wins.
func (s *Service) ApplyAcceptance(ctx context.Context, tripID, driverID string) (bool, error) {
	s.locks.Lock(tripID)
	defer s.locks.Unlock(tripID)

	trip, err := s.store.GetByID(ctx, tripID)
	if err != nil {
		return false, err
	}

	if trip.DriverID != nil {
		if *trip.DriverID == driverID {
			return false, nil
		}
		return false, fmt.Errorf("%w: trip %s already assigned to %s",
			ErrConflictingAcceptance, tripID, *trip.DriverID)
	}
	if trip.Status != StatusPending {
		return false, fmt.Errorf("%w: cannot accept trip in state %s",
			ErrInvalidTransition, trip.Status)
	}

	trip.DriverID = &driverID
	trip.Status = StatusAccepted
	updated, err := s.store.Upsert(ctx, trip)
	if err != nil {
		return false, err
	}

	s.afterTransition(ctx, updated)
	return true, nil
}

// afterTransition fans a confirmed status change out to the side
// channels. All of them are best effort.
func (s *Service) afterTransition(ctx context.Context, trip *Trip) {
	s.cacheStatus(ctx, trip.ID, trip.Status)

	driverID := ""
	if trip.DriverID != nil {
		driverID = *trip.DriverID
	}
	if s.notify != nil {
		s.notify.BroadcastStatus(trip.ID, trip.Status, driverID)
	}

	logger.Info("trip status changed",
		map[string]any{"trip_id": trip.ID, "status": trip.Status, "driver_id": driverID})
}

func (s *Service) cacheStatus(ctx context.Context, tripID, status string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetTripStatus(ctx, tripID, status); err != nil {
		logger.Warn("failed to cache trip status",
			map[string]any{"trip_id": tripID, "error": err.Error()})
	}
}

// forwardReachable reports whether from -> to is an edge of the
// lifecycle graph: PENDING -> ACCEPTED -> COMPLETED, with CANCELLED
// reachable from either non-terminal state.
func forwardReachable(from, to string) bool {
	if TerminalStatus(from) {
		return false
	}
	switch from {
	case StatusPending:
		return to == StatusAccepted || to == StatusCancelled
	case StatusAccepted:
		return to == StatusCompleted || to == StatusCancelled
	}
	return false
}

func validateRequest(req TripRequest) error {
	if !validation.ValidateID(req.UserID) {
		return fmt.Errorf("%w: userId is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Origin) == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidRequest)
	}
	if strings.TrimSpace(req.Destination) == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidRequest)
	}
	if !validation.ValidateCoordinateStrings(req.Latitude, req.Longitude) {
		return fmt.Errorf("%w: invalid coordinates", ErrInvalidRequest)
	}
	return nil
}
