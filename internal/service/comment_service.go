package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/repository"
)

// entitlementService is the concrete implementation of EntitlementService
type entitlementService struct {
	purchaseRepo repository.PurchaseRepository
	log          zerolog.Logger
}

// newEntitlementService creates a new EntitlementService
func newEntitlementService(purchaseRepo repository.PurchaseRepository, log zerolog.Logger) *entitlementService {
	return &entitlementService{
		purchaseRepo: purchaseRepo,
		log:          log.With().Str("service", "entitlement").Logger(),
	}
}

// CanComment reports whether the identity holds a completed purchase,
// scoped to a program when one is given. The query runs against the live
// ledger on every call; a refund is reflected on the very next check.
func (s *entitlementService) CanComment(ctx context.Context, identity *models.Identity, programID string) (bool, error) {
	if identity == nil {
		return false, fmt.Errorf("%w: missing identity", models.ErrUnauthorized)
	}
	return s.purchaseRepo.HasCompleted(ctx, identity.UserID, identity.Email, programID)
}

// commentService is the concrete implementation of CommentService
type commentService struct {
	commentRepo repository.CommentRepository
	entitlement EntitlementService
	log         zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(commentRepo repository.CommentRepository, entitlement EntitlementService, log zerolog.Logger) *commentService {
	return &commentService{
		commentRepo: commentRepo,
		entitlement: entitlement,
		log:         log.With().Str("service", "comment").Logger(),
	}
}

// Create persists a comment after the entitlement gate passes. Rejection is
// explicit: Forbidden for an authenticated but unentitled caller, which the
// transport layer keeps distinct from a missing identity.
func (s *commentService) Create(ctx context.Context, identity *models.Identity, req *models.CommentRequest) (*models.Comment, error) {
	if identity == nil {
		return nil, fmt.Errorf("%w: missing identity", models.ErrUnauthorized)
	}

	entitled, err := s.entitlement.CanComment(ctx, identity, req.ProgramID)
	if err != nil {
		return nil, err
	}
	if !entitled {
		return nil, fmt.Errorf("%w: commenting requires a completed purchase", models.ErrForbidden)
	}

	comment := &models.Comment{
		ID:        uuid.New().String(),
		UserID:    identity.UserID,
		ProgramID: req.ProgramID,
		ArticleID: req.ArticleID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("comment_id", comment.ID).
		Str("user_id", identity.UserID).
		Str("program_id", req.ProgramID).
		Msg("Comment created")

	return comment, nil
}

// ListByProgram retrieves a program's comments. Reading is public; only
// writing is gated.
func (s *commentService) ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error) {
	return s.commentRepo.ListByProgram(ctx, programID)
}
