package trips

import "errors"

// Sentinel errors returned by the service. Handlers map them to HTTP
// statuses with errors.Is; the consumer maps them to drop decisions.
var (
	// ErrNotFound means no trip exists for the given id.
	ErrNotFound = errors.New("trip not found")

	// ErrInvalidRequest means a create request is missing or has
	// malformed fields.
	ErrInvalidRequest = errors.New("invalid trip request")

	// ErrUpstreamUnavailable means the user service could not resolve
	// display names (failure or timeout).
	ErrUpstreamUnavailable = errors.New("user service unavailable")

	// ErrInvalidTransition means the requested status change is not
	// forward-reachable under the guarded policy.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrConflictingAcceptance means an acceptance event named a
	// different driver than the one already assigned.
	ErrConflictingAcceptance = errors.New("conflicting acceptance")

	// ErrMalformedEvent means an inbound event payload failed to decode.
	ErrMalformedEvent = errors.New("malformed event")
)
