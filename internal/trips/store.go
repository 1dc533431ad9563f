package trips

import "context"

// Store is the keyed persistence boundary for trips.
// Implementations must tolerate concurrent Upsert calls for different
// ids; serialization of read-modify-write on a single id is the
// Service's job, not the store's.
type Store interface {
	// GetByID returns the trip for id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Trip, error)

	// Upsert inserts or overwrites a trip. When the trip has no ID one
	// is assigned; the stored trip is returned either way.
	Upsert(ctx context.Context, trip *Trip) (*Trip, error)
}
