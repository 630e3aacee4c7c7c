package repository

import (
	"context"
	"time"

	"github.com/program-store-api/internal/database"
	"github.com/program-store-api/internal/models"
)

// ProgramRepository defines the interface for program data operations
type ProgramRepository interface {
	Create(ctx context.Context, program *models.Program) error
	GetByID(ctx context.Context, id string) (*models.Program, error)
	GetBySlug(ctx context.Context, slug string) (*models.Program, error)
	ListPublished(ctx context.Context) ([]*models.Program, error)
	Count(ctx context.Context) (int, error)
}

// PurchaseRepository defines the interface for purchase ledger operations.
// All status and counter mutations are conditional UPDATEs that embed their
// guard in the WHERE clause, so concurrent attempts are serialized by the
// store's row locking.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *models.Purchase) error
	// CreatePendingIfAbsent inserts a pending purchase keyed on payment_ref,
	// doing nothing when a row for that reference already exists.
	CreatePendingIfAbsent(ctx context.Context, purchase *models.Purchase) error
	GetByID(ctx context.Context, id string) (*models.Purchase, error)
	GetByPaymentRef(ctx context.Context, ref string) (*models.Purchase, error)
	GetByToken(ctx context.Context, token string) (*models.Purchase, error)
	// MarkCompleted transitions pending -> completed, storing the token and
	// validity horizon. Returns false when the purchase was not pending.
	MarkCompleted(ctx context.Context, id, token string, completedAt, expiresAt time.Time) (bool, error)
	// MarkFailed transitions pending -> failed.
	MarkFailed(ctx context.Context, id string) (bool, error)
	// MarkRefunded transitions completed -> refunded.
	MarkRefunded(ctx context.Context, id string) (bool, error)
	// IncrementDownloadCount atomically consumes one download from the quota.
	// Returns false when the counter already reached the limit.
	IncrementDownloadCount(ctx context.Context, token string) (bool, error)
	ResetDownloadCount(ctx context.Context, id string) (bool, error)
	// HasCompleted reports whether a completed purchase exists for the given
	// identity (matched on user id or buyer email), optionally scoped to one
	// program.
	HasCompleted(ctx context.Context, userID, email, programID string) (bool, error)
	List(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error)
	Count(ctx context.Context) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Program  ProgramRepository
	Purchase PurchaseRepository
	Comment  CommentRepository
	User     UserRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Program:  NewProgramRepo(db),
		Purchase: NewPurchaseRepo(db),
		Comment:  NewCommentRepo(db),
		User:     NewUserRepo(db),
	}
}
