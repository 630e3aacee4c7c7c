package payment

import (
	"context"
)

// CreateSessionParams carries everything needed to open a hosted checkout
// session. Program id and buyer email travel as opaque metadata and come
// back on retrieval, so reconciliation does not depend on local state.
type CreateSessionParams struct {
	ProgramID   string
	ProgramName string
	BuyerEmail  string
	AmountMinor int64 // price in minor currency units (e.g. cents)
	Currency    string
	SuccessURL  string
	CancelURL   string
}

// Session is the processor's view of a checkout session
type Session struct {
	ID         string
	URL        string
	BuyerEmail string
	ProgramID  string
	// Paid reports whether the processor confirmed payment for the session.
	Paid bool
	// Expired reports whether the processor abandoned the session without
	// payment; the local purchase is then marked failed.
	Expired bool
	// PaymentRef is the underlying payment identifier, when available.
	PaymentRef string
}

// Client is the payment-processor contract consumed by the checkout service.
// The concrete implementation talks to Stripe; tests use a mock.
type Client interface {
	CreateSession(ctx context.Context, params *CreateSessionParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
