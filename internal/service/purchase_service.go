package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/repository"
)

// purchaseService is the concrete implementation of PurchaseService
type purchaseService struct {
	purchaseRepo repository.PurchaseRepository
	cfg          *config.Config
	log          zerolog.Logger
	// now is swappable for expiry tests
	now func() time.Time
}

// newPurchaseService creates a new PurchaseService
func newPurchaseService(purchaseRepo repository.PurchaseRepository, cfg *config.Config, log zerolog.Logger) *purchaseService {
	return &purchaseService{
		purchaseRepo: purchaseRepo,
		cfg:          cfg,
		log:          log.With().Str("service", "purchase").Logger(),
		now:          time.Now,
	}
}

// newDownloadToken returns a cryptographically random, URL-safe token
func newDownloadToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate download token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MarkCompleted transitions a pending purchase to completed, issuing a fresh
// download token and setting the validity horizon. The status guard is
// enforced by the conditional UPDATE, so concurrent completions of the same
// purchase issue exactly one token.
func (s *purchaseService) MarkCompleted(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}

	token, err := newDownloadToken()
	if err != nil {
		return nil, err
	}

	completedAt := s.now()
	expiresAt := completedAt.Add(s.cfg.Download.TokenTTL)

	ok, err := s.purchaseRepo.MarkCompleted(ctx, purchaseID, token, completedAt, expiresAt)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: purchase %s is %s, not pending", models.ErrInvalidTransition, purchaseID, purchase.Status)
	}

	s.log.Info().
		Str("purchase_id", purchaseID).
		Time("expires_at", expiresAt).
		Int("download_limit", purchase.DownloadLimit).
		Msg("Purchase completed, download token issued")

	return s.purchaseRepo.GetByID(ctx, purchaseID)
}

// MarkFailed transitions a pending purchase to failed
func (s *purchaseService) MarkFailed(ctx context.Context, purchaseID string) error {
	ok, err := s.purchaseRepo.MarkFailed(ctx, purchaseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: purchase %s is not pending", models.ErrInvalidTransition, purchaseID)
	}
	s.log.Info().Str("purchase_id", purchaseID).Msg("Purchase marked failed")
	return nil
}

// RedeemDownload validates a token and consumes one download. Validation
// failures abort before any counter mutation; the increment itself carries
// the quota guard so concurrent redemptions never exceed the limit. Returns
// the purchase as it stood before the increment.
func (s *purchaseService) RedeemDownload(ctx context.Context, token string) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if purchase == nil || purchase.Status != models.PurchaseStatusCompleted {
		// A refunded purchase's token is treated as unknown.
		return nil, fmt.Errorf("%w: download token", models.ErrNotFound)
	}
	if purchase.ExpiresAt == nil || !s.now().Before(*purchase.ExpiresAt) {
		return nil, fmt.Errorf("%w: expired at %v", models.ErrTokenExpired, purchase.ExpiresAt)
	}
	if purchase.DownloadCount >= purchase.DownloadLimit {
		return nil, fmt.Errorf("%w: %d of %d downloads used", models.ErrLimitExceeded, purchase.DownloadCount, purchase.DownloadLimit)
	}

	ok, err := s.purchaseRepo.IncrementDownloadCount(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race to a concurrent redemption that used the last slot.
		return nil, fmt.Errorf("%w: %d of %d downloads used", models.ErrLimitExceeded, purchase.DownloadLimit, purchase.DownloadLimit)
	}

	s.log.Info().
		Str("purchase_id", purchase.ID).
		Int("download_count", purchase.DownloadCount+1).
		Int("download_limit", purchase.DownloadLimit).
		Msg("Download redeemed")

	return purchase, nil
}

// ResetDownloadCount restores the full download quota (administrator action)
func (s *purchaseService) ResetDownloadCount(ctx context.Context, purchaseID string) error {
	ok, err := s.purchaseRepo.ResetDownloadCount(ctx, purchaseID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	s.log.Info().Str("purchase_id", purchaseID).Msg("Download counter reset by administrator")
	return nil
}

// Refund transitions a completed purchase to refunded (administrator action).
// Entitlement checks read the latest status, so the very next CanComment call
// reflects the refund.
func (s *purchaseService) Refund(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}

	ok, err := s.purchaseRepo.MarkRefunded(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: purchase %s is %s, not completed", models.ErrInvalidTransition, purchaseID, purchase.Status)
	}

	s.log.Info().Str("purchase_id", purchaseID).Msg("Purchase refunded by administrator")
	return s.purchaseRepo.GetByID(ctx, purchaseID)
}

// GetPurchase retrieves a purchase by ID
func (s *purchaseService) GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, fmt.Errorf("%w: purchase %s", models.ErrNotFound, purchaseID)
	}
	return purchase, nil
}

// ListPurchases retrieves purchases matching the filter
func (s *purchaseService) ListPurchases(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error) {
	return s.purchaseRepo.List(ctx, filter)
}
