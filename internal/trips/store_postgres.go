package trips

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists trips in the trips table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a store backed by the given pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

// GetByID fetches a trip by primary key.
func (p *PostgresStore) GetByID(ctx context.Context, id string) (*Trip, error) {
	var t Trip
	err := p.db.QueryRow(ctx,
		`SELECT id,user_id,driver_id,origin,destination,latitude,longitude,status,created_at,updated_at
		 FROM trips WHERE id=$1`, id).
		Scan(&t.ID, &t.UserID, &t.DriverID,
			&t.Origin, &t.Destination, &t.Latitude, &t.Longitude,
			&t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Upsert inserts or overwrites a trip, assigning an id if absent.
func (p *PostgresStore) Upsert(ctx context.Context, trip *Trip) (*Trip, error) {
	stored := *trip
	now := time.Now()
	if stored.ID == "" {
		stored.ID = uuid.New().String()
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	_, err := p.db.Exec(ctx,
		`INSERT INTO trips (id,user_id,driver_id,origin,destination,latitude,longitude,status,created_at,updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		 ON CONFLICT (id) DO UPDATE SET
		   driver_id=EXCLUDED.driver_id,
		   status=EXCLUDED.status,
		   updated_at=EXCLUDED.updated_at`,
		stored.ID, stored.UserID, stored.DriverID,
		stored.Origin, stored.Destination, stored.Latitude, stored.Longitude,
		stored.Status, stored.CreatedAt, stored.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}
