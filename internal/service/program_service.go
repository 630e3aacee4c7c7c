package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/program-store-api/internal/models"
	"github.com/program-store-api/internal/repository"
)

// programService is the concrete implementation of ProgramService
type programService struct {
	repos *repository.Repositories
	log   zerolog.Logger
}

// newProgramService creates a new ProgramService
func newProgramService(repos *repository.Repositories, log zerolog.Logger) *programService {
	return &programService{
		repos: repos,
		log:   log.With().Str("service", "program").Logger(),
	}
}

// List retrieves all published programs
func (s *programService) List(ctx context.Context) ([]*models.Program, error) {
	return s.repos.Program.ListPublished(ctx)
}

// Get retrieves a program by ID, or by slug when the identifier is not a
// UUID. The id column is a UUID type, so slugs must not reach it.
func (s *programService) Get(ctx context.Context, id string) (*models.Program, error) {
	var program *models.Program
	var err error
	if _, parseErr := uuid.Parse(id); parseErr == nil {
		program, err = s.repos.Program.GetByID(ctx, id)
	} else {
		program, err = s.repos.Program.GetBySlug(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if program == nil {
		return nil, fmt.Errorf("%w: program %s", models.ErrNotFound, id)
	}
	return program, nil
}

// GetCount returns the row count for a resource (metrics endpoint)
func (s *programService) GetCount(ctx context.Context, resource string) (int, error) {
	switch resource {
	case "programs":
		return s.repos.Program.Count(ctx)
	case "purchases":
		return s.repos.Purchase.Count(ctx)
	case "comments":
		return s.repos.Comment.Count(ctx)
	case "users":
		return s.repos.User.Count(ctx)
	default:
		return 0, fmt.Errorf("unknown resource: %s", resource)
	}
}
