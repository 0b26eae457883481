package provider

import (
	"bytes"
	"errors"
	"fmt"
)

// ErrInvalidTokenFormat means a composite token did not split into exactly
// two parts.
var ErrInvalidTokenFormat = errors.New("token must have exactly two colon separated parts")

// AuthError wraps a provider's rejection of credentials or an OTP. Body
// carries the provider's error payload untouched so operators can see what
// the integration actually said.
type AuthError struct {
	Gateway    string
	StatusCode int
	Body       []byte
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: provider rejected authentication (status %d): %s",
		e.Gateway, e.StatusCode, bytes.TrimSpace(e.Body))
}

// TransportError covers network failures, non-2xx responses outside the auth
// category, and undecodable provider payloads. The whole call is aborted.
type TransportError struct {
	Gateway string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Gateway, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
