package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/program-store-api/internal/database"
	"github.com/program-store-api/internal/models"
)

// programRepo is the concrete implementation of ProgramRepository
type programRepo struct {
	db *database.DB
}

// NewProgramRepo creates a new program repository
func NewProgramRepo(db *database.DB) ProgramRepository {
	return &programRepo{db: db}
}

// Create inserts a new program
func (r *programRepo) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (id, name, slug, description, price, artifact_path, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		program.ID, program.Name, program.Slug, program.Description,
		program.Price, program.ArtifactPath, program.Published,
		program.CreatedAt, time.Now(),
	)
	return err
}

// GetByID retrieves a program by ID
func (r *programRepo) GetByID(ctx context.Context, id string) (*models.Program, error) {
	query := `
		SELECT id, name, slug, description, price, artifact_path, published, created_at, updated_at
		FROM programs WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetBySlug retrieves a program by slug
func (r *programRepo) GetBySlug(ctx context.Context, slug string) (*models.Program, error) {
	query := `
		SELECT id, name, slug, description, price, artifact_path, published, created_at, updated_at
		FROM programs WHERE slug = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, slug))
}

// ListPublished retrieves all published programs
func (r *programRepo) ListPublished(ctx context.Context) ([]*models.Program, error) {
	query := `
		SELECT id, name, slug, description, price, artifact_path, published, created_at, updated_at
		FROM programs WHERE published = TRUE ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		err := rows.Scan(
			&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
			&p.ArtifactPath, &p.Published, &p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}
	return programs, rows.Err()
}

// Count returns the total number of programs
func (r *programRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM programs").Scan(&count)
	return count, err
}

func (r *programRepo) scanOne(row *sql.Row) (*models.Program, error) {
	var p models.Program
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price,
		&p.ArtifactPath, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
