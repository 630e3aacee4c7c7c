package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Program represents a purchasable digital program (e.g. a training plan).
type Program struct {
	ID          string          `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Slug        string          `json:"slug" db:"slug"`
	Description string          `json:"description" db:"description"`
	Price       decimal.Decimal `json:"price" db:"price"`
	// ArtifactPath is the stored file delivered on download, relative to the
	// storage directory. Empty when no file was uploaded; delivery then falls
	// back to a generated document.
	ArtifactPath string    `json:"-" db:"artifact_path"`
	Published    bool      `json:"published" db:"published"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// HasArtifact reports whether the program references a stored file.
func (p *Program) HasArtifact() bool {
	return p.ArtifactPath != ""
}
