package models

import (
	"time"
)

// Comment represents a comment posted by an entitled user.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ProgramID string    `json:"program_id,omitempty" db:"program_id"`
	ArticleID string    `json:"article_id,omitempty" db:"article_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CommentRequest is the body of POST /v1/comments
type CommentRequest struct {
	Content   string `json:"content"`
	ProgramID string `json:"program_id,omitempty"`
	ArticleID string `json:"article_id,omitempty"`
}
