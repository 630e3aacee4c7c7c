package models

import (
	"time"
)

// PurchaseStatus represents the lifecycle state of a purchase
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusFailed    PurchaseStatus = "failed"
	PurchaseStatusRefunded  PurchaseStatus = "refunded"
)

// Purchase is the authoritative record of a buyer's entitlement to a program.
// Status transitions: pending -> completed (processor confirms),
// pending -> failed (processor reports failure),
// completed -> refunded (administrator). No transition leaves failed or
// refunded.
type Purchase struct {
	ID         string `json:"id" db:"id"`
	ProgramID  string `json:"program_id" db:"program_id"`
	BuyerEmail string `json:"buyer_email" db:"buyer_email"`
	// UserID links the purchase to a registered account when the buyer email
	// matches one; guest purchases leave it empty.
	UserID string `json:"user_id,omitempty" db:"user_id"`
	// PaymentRef is the processor's checkout session id; unique, and the
	// idempotency key for reconciliation.
	PaymentRef string         `json:"payment_ref" db:"payment_ref"`
	Status     PurchaseStatus `json:"status" db:"status"`
	// DownloadToken is the sole download credential. Present only once the
	// purchase is completed.
	DownloadToken string     `json:"-" db:"download_token"`
	DownloadCount int        `json:"download_count" db:"download_count"`
	DownloadLimit int        `json:"download_limit" db:"download_limit"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" db:"expires_at"`
}

// TokenValid reports whether the download token can still be redeemed at the
// given instant: completed status, inside the validity horizon, quota left.
func (p *Purchase) TokenValid(now time.Time) bool {
	if p.Status != PurchaseStatusCompleted || p.DownloadToken == "" {
		return false
	}
	if p.ExpiresAt == nil || !now.Before(*p.ExpiresAt) {
		return false
	}
	return p.DownloadCount < p.DownloadLimit
}

// RemainingDownloads returns the quota left on the token.
func (p *Purchase) RemainingDownloads() int {
	remaining := p.DownloadLimit - p.DownloadCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CheckoutRequest is the body of POST /v1/checkout
type CheckoutRequest struct {
	BuyerEmail string `json:"buyer_email"`
	ProgramID  string `json:"program_id"`
}

// ReconcileResult is returned from the thank-you reconciliation path
type ReconcileResult struct {
	Purchase *Purchase `json:"purchase"`
	Program  *Program  `json:"program"`
}

// PurchaseFilter narrows admin purchase listings
type PurchaseFilter struct {
	Status     PurchaseStatus
	BuyerEmail string
	Limit      int
	Offset     int
}
