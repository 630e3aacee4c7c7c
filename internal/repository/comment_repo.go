package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/program-store-api/internal/database"
	"github.com/program-store-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// Create inserts a new comment
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (id, user_id, program_id, article_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		comment.ID, comment.UserID,
		nullString(comment.ProgramID), nullString(comment.ArticleID),
		comment.Content, time.Now(),
	)
	return err
}

// ListByProgram retrieves comments for a program, newest first
func (r *commentRepo) ListByProgram(ctx context.Context, programID string) ([]*models.Comment, error) {
	query := `
		SELECT id, user_id, program_id, article_id, content, created_at
		FROM comments WHERE program_id = $1 ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		var c models.Comment
		var progID, artID sql.NullString
		err := rows.Scan(&c.ID, &c.UserID, &progID, &artID, &c.Content, &c.CreatedAt)
		if err != nil {
			return nil, err
		}
		c.ProgramID = progID.String
		c.ArticleID = artID.String
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}
