package redis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// statusTTL bounds how long a cached trip status may outlive the trip.
const statusTTL = 24 * time.Hour

// Client wraps the Redis connection.
type Client struct {
	rdb *goredis.Client
}

// NewClient connects to Redis with retry.
func NewClient(addr string) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err == nil {
			cancel()
			log.Println("Connected to Redis")
			return &Client{rdb: rdb}, nil
		}
		cancel()
		log.Printf("Waiting for Redis... (%d/20)", i+1)
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("redis: failed to connect after 20 attempts")
}

func statusKey(tripID string) string { return "trip:" + tripID + ":status" }

// SetTripStatus caches a trip's current status with TTL.
func (c *Client) SetTripStatus(ctx context.Context, tripID, status string) error {
	return c.rdb.Set(ctx, statusKey(tripID), status, statusTTL).Err()
}

// GetTripStatus returns the cached status, or "" on a miss.
func (c *Client) GetTripStatus(ctx context.Context, tripID string) (string, error) {
	status, err := c.rdb.Get(ctx, statusKey(tripID)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return status, nil
}

// Close tears down the Redis connection.
func (c *Client) Close() error { return c.rdb.Close() }
