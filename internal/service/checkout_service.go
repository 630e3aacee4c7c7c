package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/payment"
	"github.com/program-store-api/internal/repository"
)

// checkoutService is the concrete implementation of CheckoutService
type checkoutService struct {
	repos         *repository.Repositories
	ledger        PurchaseService
	notifier      NotifierService
	paymentClient payment.Client
	cfg           *config.Config
	log           zerolog.Logger
}

// newCheckoutService creates a new CheckoutService
func newCheckoutService(
	repos *repository.Repositories,
	ledger PurchaseService,
	notifier NotifierService,
	paymentClient payment.Client,
	cfg *config.Config,
	log zerolog.Logger,
) *checkoutService {
	return &checkoutService{
		repos:         repos,
		ledger:        ledger,
		notifier:      notifier,
		paymentClient: paymentClient,
		cfg:           cfg,
		log:           log.With().Str("service", "checkout").Logger(),
	}
}

// CreateCheckoutSession opens a hosted payment session for a program and
// returns the processor URL to redirect the buyer to. No purchase row is
// created here; abandoned checkouts must not generate ledger entries.
func (s *checkoutService) CreateCheckoutSession(ctx context.Context, buyerEmail, programID string) (string, error) {
	program, err := s.repos.Program.GetByID(ctx, programID)
	if err != nil {
		return "", err
	}
	if program == nil || !program.Published {
		return "", fmt.Errorf("%w: program %s", models.ErrNotFound, programID)
	}
	if !program.Price.IsPositive() {
		return "", fmt.Errorf("%w: program %s is not for sale", models.ErrNotFound, programID)
	}

	amountMinor := program.Price.Mul(decimal.NewFromInt(100)).IntPart()

	session, err := s.paymentClient.CreateSession(ctx, &payment.CreateSessionParams{
		ProgramID:   program.ID,
		ProgramName: program.Name,
		BuyerEmail:  buyerEmail,
		AmountMinor: amountMinor,
		Currency:    s.cfg.Payment.Currency,
		SuccessURL:  s.cfg.Payment.SuccessURL,
		CancelURL:   s.cfg.Payment.CancelURL,
	})
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("session_id", session.ID).
		Str("program_id", program.ID).
		Str("buyer_email", buyerEmail).
		Msg("Checkout session created")

	return session.URL, nil
}

// ReconcileSession asks the processor for ground truth about a session and
// updates the ledger accordingly. Idempotent: the purchase row is keyed on
// the session id, the pending insert no-ops on conflict, and the completion
// transition is guarded, so reconciling the same session twice yields exactly
// one completed purchase and one fulfillment email.
func (s *checkoutService) ReconcileSession(ctx context.Context, sessionID string) (*models.ReconcileResult, error) {
	session, err := s.paymentClient.RetrieveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ProgramID == "" {
		return nil, fmt.Errorf("%w: session %s carries no program metadata", models.ErrNotFound, sessionID)
	}

	program, err := s.repos.Program.GetByID(ctx, session.ProgramID)
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: program %s", models.ErrNotFound, session.ProgramID)
	}

	purchase, err := s.repos.Purchase.GetByPaymentRef(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		purchase, err = s.createPending(ctx, session, program)
		if err != nil {
			return nil, err
		}
	}

	switch {
	case purchase.Status == models.PurchaseStatusCompleted:
		// Already reconciled; nothing to do and no second email.

	case session.Paid && purchase.Status == models.PurchaseStatusPending:
		completed, err := s.ledger.MarkCompleted(ctx, purchase.ID)
		if err != nil && !isInvalidTransition(err) {
			return nil, err
		}
		if err == nil {
			// This call won the completion race and owns the notification.
			s.notifier.SendConfirmation(ctx, completed, program)
			purchase = completed
		} else {
			purchase, err = s.ledger.GetPurchase(ctx, purchase.ID)
			if err != nil {
				return nil, err
			}
		}

	case session.Expired && purchase.Status == models.PurchaseStatusPending:
		if err := s.ledger.MarkFailed(ctx, purchase.ID); err != nil && !isInvalidTransition(err) {
			return nil, err
		}
		purchase, err = s.ledger.GetPurchase(ctx, purchase.ID)
		if err != nil {
			return nil, err
		}
	}

	return &models.ReconcileResult{Purchase: purchase, Program: program}, nil
}

// createPending inserts the purchase row for a session seen for the first
// time. Insert races with concurrent reconciles resolve on the payment_ref
// conflict; the row is re-read either way.
func (s *checkoutService) createPending(ctx context.Context, session *payment.Session, program *models.Program) (*models.Purchase, error) {
	pending := &models.Purchase{
		ID:            uuid.New().String(),
		ProgramID:     program.ID,
		BuyerEmail:    session.BuyerEmail,
		PaymentRef:    session.ID,
		Status:        models.PurchaseStatusPending,
		DownloadCount: 0,
		DownloadLimit: s.cfg.Download.DefaultLimit,
		CreatedAt:     time.Now(),
	}

	// Link to a registered account when the buyer email matches one.
	if session.BuyerEmail != "" {
		user, err := s.repos.User.GetByEmail(ctx, session.BuyerEmail)
		if err != nil {
			return nil, err
		}
		if user != nil {
			pending.UserID = user.ID
		}
	}

	if err := s.repos.Purchase.CreatePendingIfAbsent(ctx, pending); err != nil {
		return nil, err
	}

	purchase, err := s.repos.Purchase.GetByPaymentRef(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: purchase for session %s", models.ErrNotFound, session.ID)
	}

	s.log.Info().
		Str("purchase_id", purchase.ID).
		Str("session_id", session.ID).
		Str("program_id", program.ID).
		Msg("Purchase recorded for session")

	return purchase, nil
}

func isInvalidTransition(err error) bool {
	return errors.Is(err, models.ErrInvalidTransition)
}
