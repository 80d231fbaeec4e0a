package fatsecret

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials indicates the FatSecret client id or secret is
	// not configured. Reported before any network call is attempted.
	ErrMissingCredentials = errors.New("fatsecret: FATSECRET_CLIENT_ID or FATSECRET_SECRET_ID missing")

	// ErrNotFound indicates the upstream API has no record for the request.
	ErrNotFound = errors.New("fatsecret: not found")
)

// AuthError indicates the client-credentials exchange was rejected upstream.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("fatsecret: token error (status %d): %s", e.Status, e.Body)
}

// APIError carries an upstream non-2xx response. Code and Message come from
// the upstream error body when present, falling back to the HTTP status and a
// generic message.
type APIError struct {
	Status  int
	Code    int
	Message string
	Raw     json.RawMessage
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fatsecret: api error %d (code %d): %s", e.Status, e.Code, e.Message)
}
