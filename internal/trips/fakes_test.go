package trips_test

import (
	"context"
	"encoding/json"
	"sync"

	"trip-service/internal/trips"
	"trip-service/internal/users"
)

// mockStore is a hand-written test double for trips.Store.
// Each method is a function field — set only the ones your test needs.
type mockStore struct {
	getByID func(ctx context.Context, id string) (*trips.Trip, error)
	upsert  func(ctx context.Context, trip *trips.Trip) (*trips.Trip, error)
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*trips.Trip, error) {
	return m.getByID(ctx, id)
}

func (m *mockStore) Upsert(ctx context.Context, trip *trips.Trip) (*trips.Trip, error) {
	return m.upsert(ctx, trip)
}

var _ trips.Store = (*mockStore)(nil)

// mockResolver is a test double for users.NameResolver.
type mockResolver struct {
	resolve func(ctx context.Context, userID, driverID string) (users.UserDriverNames, error)
}

func (m *mockResolver) ResolveNames(ctx context.Context, userID, driverID string) (users.UserDriverNames, error) {
	return m.resolve(ctx, userID, driverID)
}

var _ users.NameResolver = (*mockResolver)(nil)

// okResolver resolves every pair to fixed names, with an empty driver
// name when no driver is assigned yet.
func okResolver() *mockResolver {
	return &mockResolver{
		resolve: func(_ context.Context, userID, driverID string) (users.UserDriverNames, error) {
			names := users.UserDriverNames{UserName: "UserName"}
			if driverID != "" {
				names.DriverName = "DriverName"
			}
			return names, nil
		},
	}
}

// mockCache is a test double for trips.StatusCache backed by a map.
// getErr/setErr inject failures; sets counts SetTripStatus calls.
type mockCache struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
	setErr error
	sets   int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string]string)}
}

func (c *mockCache) SetTripStatus(_ context.Context, tripID, status string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	if c.setErr != nil {
		return c.setErr
	}
	c.data[tripID] = status
	return nil
}

func (c *mockCache) GetTripStatus(_ context.Context, tripID string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return "", c.getErr
	}
	return c.data[tripID], nil
}

func (c *mockCache) cached(tripID string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[tripID]
}

var _ trips.StatusCache = (*mockCache)(nil)

type notification struct {
	tripID, status, driverID string
}

// mockNotifier records every broadcast for trips.StatusNotifier.
type mockNotifier struct {
	mu     sync.Mutex
	pushed []notification
}

func (n *mockNotifier) BroadcastStatus(tripID, status, driverID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pushed = append(n.pushed, notification{tripID: tripID, status: status, driverID: driverID})
}

func (n *mockNotifier) notifications() []notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification(nil), n.pushed...)
}

var _ trips.StatusNotifier = (*mockNotifier)(nil)

type published struct {
	topic string
	key   string
	data  []byte
}

// memoryBus is an in-process trips.Bus: Publish dispatches synchronously
// to every handler subscribed to the topic and records the message.
type memoryBus struct {
	mu       sync.Mutex
	messages []published
	handlers map[string][]func([]byte) error
}

func newMemoryBus() *memoryBus {
	return &memoryBus{handlers: make(map[string][]func([]byte) error)}
}

func (b *memoryBus) Publish(_ context.Context, topic, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	b.mu.Lock()
	b.messages = append(b.messages, published{topic: topic, key: key, data: data})
	handlers := append([]func([]byte) error(nil), b.handlers[topic]...)
	b.mu.Unlock()

	for _, h := range handlers {
		h(data)
	}
	return nil
}

func (b *memoryBus) Subscribe(_ context.Context, topic, _ string, handler func([]byte) error) {
	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], handler)
	b.mu.Unlock()
}

// deliver injects a raw payload to a topic's handlers, bypassing JSON
// marshalling, for malformed-event tests.
func (b *memoryBus) deliver(topic string, data []byte) {
	b.mu.Lock()
	handlers := append([]func([]byte) error(nil), b.handlers[topic]...)
	b.mu.Unlock()
	for _, h := range handlers {
		h(data)
	}
}

func (b *memoryBus) publishedTo(topic string) []published {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []published
	for _, m := range b.messages {
		if m.topic == topic {
			out = append(out, m)
		}
	}
	return out
}

var _ trips.Bus = (*memoryBus)(nil)

// newTestService wires a Service on the in-memory store and bus.
func newTestService(policy trips.Policy) (*trips.Service, *trips.MemoryStore, *memoryBus) {
	store := trips.NewMemoryStore()
	bus := newMemoryBus()
	svc := trips.NewService(store, bus, okResolver(), policy)
	return svc, store, bus
}

func validRequest() trips.TripRequest {
	return trips.TripRequest{
		UserID:      "u1",
		Origin:      "A",
		Destination: "B",
		Latitude:    "10.0",
		Longitude:   "20.0",
	}
}
