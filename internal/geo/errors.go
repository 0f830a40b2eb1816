package geo

import (
	"errors"
	"fmt"
)

// Failure kinds reported by the maps provider. Match them with errors.Is.
var (
	ErrAddressNotFound = errors.New("address not found")
	ErrRouteNotFound   = errors.New("no route between addresses")
	ErrQuotaExceeded   = errors.New("query limit exceeded")
	ErrRequestDenied   = errors.New("maps api key rejected")
	ErrInvalidRequest  = errors.New("invalid maps request")
	ErrUnknown         = errors.New("maps request failed")
)

// Error describes a failed geocoding or directions call.
type Error struct {
	Op     string // "geocode" or "directions"
	Status string // provider status, empty on transport failures
	Kind   error
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Kind)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// statusKind maps a provider status to a failure kind. notFound is the kind
// reported for ZERO_RESULTS, which differs between geocoding and directions.
func statusKind(status string, notFound error) error {
	switch status {
	case "ZERO_RESULTS", "NOT_FOUND":
		return notFound
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return ErrQuotaExceeded
	case "REQUEST_DENIED":
		return ErrRequestDenied
	case "INVALID_REQUEST", "MAX_WAYPOINTS_EXCEEDED", "MAX_ROUTE_LENGTH_EXCEEDED":
		return ErrInvalidRequest
	default:
		return ErrUnknown
	}
}

func providerError(op, status, message string, notFound error) *Error {
	e := &Error{Op: op, Status: status, Kind: statusKind(status, notFound)}
	if e.Kind == ErrUnknown {
		cause := "status " + status
		if message != "" {
			cause += ": " + message
		}
		e.Err = errors.New(cause)
	}
	return e
}
