package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/config"
	"github.com/program-store-api/internal/document"
	"github.com/program-store-api/internal/mailer"
	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/payment"
	"github.com/program-store-api/internal/repository"
)

// CheckoutService drives the payment session flow: opening a hosted checkout
// session and reconciling it when the buyer returns.
type CheckoutService interface {
	CreateCheckoutSession(ctx context.Context, buyerEmail, programID string) (string, error)
	ReconcileSession(ctx context.Context, sessionID string) (*models.ReconcileResult, error)
}

// PurchaseService is the purchase ledger: status transitions, token issuance
// and download-count bookkeeping.
type PurchaseService interface {
	MarkCompleted(ctx context.Context, purchaseID string) (*models.Purchase, error)
	MarkFailed(ctx context.Context, purchaseID string) error
	RedeemDownload(ctx context.Context, token string) (*models.Purchase, error)
	ResetDownloadCount(ctx context.Context, purchaseID string) error
	Refund(ctx context.Context, purchaseID string) (*models.Purchase, error)
	GetPurchase(ctx context.Context, purchaseID string) (*models.Purchase, error)
	ListPurchases(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error)
}

// DownloadService authorizes a token and resolves the bytes to deliver
type DownloadService interface {
	HandleDownload(ctx context.Context, token string) (*DownloadResult, error)
}

// EntitlementService answers whether a user has a qualifying completed
// purchase. Evaluated fresh on every call; entitlement can change (refunds).
type EntitlementService interface {
	CanComment(ctx context.Context, identity *models.Identity, programID string) (bool, error)
}

// CommentService persists comments from entitled users
type CommentService interface {
	Create(ctx context.Context, identity *models.Identity, req *models.CommentRequest) (*models.Comment, error)
	ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error)
}

// NotifierService sends the fulfillment email and supports operator resend
type NotifierService interface {
	SendConfirmation(ctx context.Context, purchase *models.Purchase, program *models.Program)
	Resend(ctx context.Context, purchaseID string) error
}

// ProgramService exposes the read-only program catalog plus table counts
// for the metrics endpoint.
type ProgramService interface {
	List(ctx context.Context) ([]*models.Program, error)
	Get(ctx context.Context, id string) (*models.Program, error)
	GetCount(ctx context.Context, resource string) (int, error)
}

// Services holds all service interfaces
type Services struct {
	Checkout    CheckoutService
	Purchase    PurchaseService
	Download    DownloadService
	Entitlement EntitlementService
	Comment     CommentService
	Notifier    NotifierService
	Program     ProgramService
}

// NewServices creates all services
func NewServices(
	repos *repository.Repositories,
	paymentClient payment.Client,
	sender mailer.Sender,
	docGen document.Generator,
	cfg *config.Config,
	log zerolog.Logger,
) *Services {
	purchaseSvc := newPurchaseService(repos.Purchase, cfg, log)
	notifierSvc := newNotifierService(repos.Purchase, repos.Program, sender, docGen, cfg, log)
	checkoutSvc := newCheckoutService(repos, purchaseSvc, notifierSvc, paymentClient, cfg, log)
	downloadSvc := newDownloadService(repos.Program, purchaseSvc, docGen, cfg, log)
	entitlementSvc := newEntitlementService(repos.Purchase, log)
	commentSvc := newCommentService(repos.Comment, entitlementSvc, log)
	programSvc := newProgramService(repos, log)

	return &Services{
		Checkout:    checkoutSvc,
		Purchase:    purchaseSvc,
		Download:    downloadSvc,
		Entitlement: entitlementSvc,
		Comment:     commentSvc,
		Notifier:    notifierSvc,
		Program:     programSvc,
	}
}
