package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrNotAuthenticated is returned when an operation requiring identity is
	// attempted without a session. A hard precondition, never retried.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrSessionExpired is returned when the upstream API rejects the stored
	// credentials with a 401. The client must discard its session and log in again.
	ErrSessionExpired = errors.New("session expired, please log in again")

	// ErrInvalidCredentials is returned when the upstream auth endpoint
	// rejects a login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrCartEmpty is returned when order submission is attempted with no
	// items in the cart.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrNoAddressSelected is returned when order submission or the
	// address-to-payment transition is attempted without a valid selected address.
	ErrNoAddressSelected = errors.New("no delivery address selected")

	// ErrTransitionNotPermitted is returned when a checkout step transition
	// is absent from the transition table.
	ErrTransitionNotPermitted = errors.New("checkout step transition not permitted")

	// ErrUpstreamUnavailable is returned when the upstream API cannot be
	// reached or returns an unreadable response.
	ErrUpstreamUnavailable = errors.New("storefront backend is unavailable")
)

// ErrorResponse is the JSON body returned for every error reply.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// UpstreamError carries a rejection from the backend API, preserving the
// message from its JSON error body so handlers can surface it verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "upstream request failed"
}
