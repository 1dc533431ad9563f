// Package users talks to the external user service that owns rider and
// driver accounts. This service never stores names itself; it resolves
// them on read.
package users

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"trip-service/pkg/jwt"
)

// UserDriverNames is the user service's response for a name lookup.
type UserDriverNames struct {
	UserName   string `json:"userName"`
	DriverName string `json:"driverName"`
}

// NameResolver resolves a (userID, driverID) pair to display names.
// driverID may be empty for trips that have no driver yet; resolvers
// must return an empty DriverName rather than fail.
type NameResolver interface {
	ResolveNames(ctx context.Context, userID, driverID string) (UserDriverNames, error)
}

// Client is the HTTP NameResolver. The caller's bearer token, when
// present in ctx, is forwarded so the user service sees the original
// identity.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a resolver against the user service at baseURL.
// Every lookup is bounded by timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

var _ NameResolver = (*Client)(nil)

// ResolveNames calls GET /users/names on the user service.
func (c *Client) ResolveNames(ctx context.Context, userID, driverID string) (UserDriverNames, error) {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("driverId", driverID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/users/names?"+q.Encode(), nil)
	if err != nil {
		return UserDriverNames{}, err
	}
	if raw := jwt.RawFromContext(ctx); raw != "" {
		req.Header.Set("Authorization", "Bearer "+raw)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return UserDriverNames{}, fmt.Errorf("user service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return UserDriverNames{}, fmt.Errorf("user service: status %d", resp.StatusCode)
	}

	var names UserDriverNames
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return UserDriverNames{}, fmt.Errorf("user service: decode: %w", err)
	}
	return names, nil
}
