package models

import "errors"

// Error taxonomy for the purchase/download core. Repositories and services
// wrap these with fmt.Errorf("%w: ...", ...) so handlers can match with
// errors.Is and map to an HTTP status.
var (
	// ErrNotFound indicates an unknown program, purchase or token.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition indicates a purchase status guard was violated,
	// e.g. completing a purchase that is not pending.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrTokenExpired indicates the download token's validity horizon passed.
	ErrTokenExpired = errors.New("download token expired")

	// ErrLimitExceeded indicates the download quota is used up.
	ErrLimitExceeded = errors.New("download limit exceeded")

	// ErrUnauthorized indicates a missing or unparseable identity.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates an identity is present but not entitled.
	ErrForbidden = errors.New("forbidden")

	// ErrUpstreamFailure indicates the payment processor or mail provider
	// errored or was unreachable.
	ErrUpstreamFailure = errors.New("upstream failure")

	// ErrStorageFailure indicates the purchased artifact could not be read
	// and no substitute could be generated.
	ErrStorageFailure = errors.New("storage failure")
)
