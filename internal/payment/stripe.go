package payment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/program-store-api/internal/models"
)

const (
	metadataProgramID  = "program_id"
	metadataBuyerEmail = "buyer_email"
)

// stripeClient implements Client against the Stripe hosted checkout API
type stripeClient struct {
	api *client.API
	log zerolog.Logger
}

// NewStripeClient creates a Stripe-backed payment client
func NewStripeClient(secretKey string, log zerolog.Logger) Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &stripeClient{
		api: api,
		log: log.With().Str("component", "stripe").Logger(),
	}
}

// CreateSession opens a hosted checkout session for a single program
func (c *stripeClient) CreateSession(ctx context.Context, params *CreateSessionParams) (*Session, error) {
	sessionParams := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(params.BuyerEmail),
		SuccessURL:    stripe.String(params.SuccessURL),
		CancelURL:     stripe.String(params.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(params.Currency),
					UnitAmount: stripe.Int64(params.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(params.ProgramName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	sessionParams.Context = ctx
	sessionParams.AddMetadata(metadataProgramID, params.ProgramID)
	sessionParams.AddMetadata(metadataBuyerEmail, params.BuyerEmail)

	sess, err := c.api.CheckoutSessions.New(sessionParams)
	if err != nil {
		c.log.Error().Err(err).Str("program_id", params.ProgramID).Msg("Failed to create checkout session")
		return nil, fmt.Errorf("%w: create checkout session: %v", models.ErrUpstreamFailure, err)
	}

	return fromStripeSession(sess), nil
}

// RetrieveSession fetches the session back from Stripe for reconciliation
func (c *stripeClient) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	getParams := &stripe.CheckoutSessionParams{}
	getParams.Context = ctx

	sess, err := c.api.CheckoutSessions.Get(sessionID, getParams)
	if err != nil {
		c.log.Error().Err(err).Str("session_id", sessionID).Msg("Failed to retrieve checkout session")
		return nil, fmt.Errorf("%w: retrieve checkout session: %v", models.ErrUpstreamFailure, err)
	}

	return fromStripeSession(sess), nil
}

func fromStripeSession(sess *stripe.CheckoutSession) *Session {
	s := &Session{
		ID:         sess.ID,
		URL:        sess.URL,
		BuyerEmail: sess.CustomerEmail,
		ProgramID:  sess.Metadata[metadataProgramID],
		Paid:       sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		Expired:    sess.Status == stripe.CheckoutSessionStatusExpired,
	}
	if email, ok := sess.Metadata[metadataBuyerEmail]; ok && s.BuyerEmail == "" {
		s.BuyerEmail = email
	}
	if sess.PaymentIntent != nil {
		s.PaymentRef = sess.PaymentIntent.ID
	}
	return s
}
