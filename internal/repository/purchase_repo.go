package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/program-store-api/internal/database"
	"github.com/program-store-api/internal/models"
)

const purchaseColumns = `
	id, program_id, user_id, buyer_email, payment_ref, status,
	download_token, download_count, download_limit,
	created_at, completed_at, expires_at
`

// purchaseRepo is the concrete implementation of PurchaseRepository
type purchaseRepo struct {
	db *database.DB
}

// NewPurchaseRepo creates a new purchase repository
func NewPurchaseRepo(db *database.DB) PurchaseRepository {
	return &purchaseRepo{db: db}
}

// Create inserts a new purchase
func (r *purchaseRepo) Create(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (id, program_id, user_id, buyer_email, payment_ref, status,
			download_count, download_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		purchase.ID, purchase.ProgramID, nullString(purchase.UserID),
		purchase.BuyerEmail, purchase.PaymentRef, purchase.Status,
		purchase.DownloadCount, purchase.DownloadLimit, purchase.CreatedAt,
	)
	return err
}

// CreatePendingIfAbsent inserts a pending purchase keyed on payment_ref.
// Concurrent reconciliations of the same session race here; exactly one
// insert wins and the rest no-op.
func (r *purchaseRepo) CreatePendingIfAbsent(ctx context.Context, purchase *models.Purchase) error {
	query := `
		INSERT INTO purchases (id, program_id, user_id, buyer_email, payment_ref, status,
			download_count, download_limit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (payment_ref) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query,
		purchase.ID, purchase.ProgramID, nullString(purchase.UserID),
		purchase.BuyerEmail, purchase.PaymentRef, purchase.Status,
		purchase.DownloadCount, purchase.DownloadLimit, purchase.CreatedAt,
	)
	return err
}

// GetByID retrieves a purchase by ID
func (r *purchaseRepo) GetByID(ctx context.Context, id string) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE id = $1`
	return scanPurchase(r.db.QueryRowContext(ctx, query, id))
}

// GetByPaymentRef retrieves a purchase by its processor session reference
func (r *purchaseRepo) GetByPaymentRef(ctx context.Context, ref string) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE payment_ref = $1`
	return scanPurchase(r.db.QueryRowContext(ctx, query, ref))
}

// GetByToken retrieves a purchase by its download token
func (r *purchaseRepo) GetByToken(ctx context.Context, token string) (*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE download_token = $1`
	return scanPurchase(r.db.QueryRowContext(ctx, query, token))
}

// MarkCompleted transitions pending -> completed. The status guard lives in
// the WHERE clause so only one of several concurrent completions succeeds.
func (r *purchaseRepo) MarkCompleted(ctx context.Context, id, token string, completedAt, expiresAt time.Time) (bool, error) {
	query := `
		UPDATE purchases
		SET status = $2, download_token = $3, download_count = 0,
			completed_at = $4, expires_at = $5
		WHERE id = $1 AND status = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		id, models.PurchaseStatusCompleted, token, completedAt, expiresAt,
		models.PurchaseStatusPending,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// MarkFailed transitions pending -> failed
func (r *purchaseRepo) MarkFailed(ctx context.Context, id string) (bool, error) {
	query := `UPDATE purchases SET status = $2 WHERE id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query,
		id, models.PurchaseStatusFailed, models.PurchaseStatusPending,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// MarkRefunded transitions completed -> refunded
func (r *purchaseRepo) MarkRefunded(ctx context.Context, id string) (bool, error) {
	query := `UPDATE purchases SET status = $2 WHERE id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query,
		id, models.PurchaseStatusRefunded, models.PurchaseStatusCompleted,
	)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// IncrementDownloadCount consumes one download. The quota guard is part of
// the statement, so concurrent redemptions of the same token cannot push the
// counter past the limit.
func (r *purchaseRepo) IncrementDownloadCount(ctx context.Context, token string) (bool, error) {
	query := `
		UPDATE purchases
		SET download_count = download_count + 1
		WHERE download_token = $1 AND download_count < download_limit
	`
	result, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// ResetDownloadCount restores the full download quota (administrator action)
func (r *purchaseRepo) ResetDownloadCount(ctx context.Context, id string) (bool, error) {
	query := `UPDATE purchases SET download_count = 0 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	return affected > 0, err
}

// HasCompleted reports whether a completed purchase exists for the identity.
// Matched on user id or buyer email; guest purchases have no user id.
func (r *purchaseRepo) HasCompleted(ctx context.Context, userID, email, programID string) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM purchases
			WHERE status = $1 AND (user_id = $2 OR buyer_email = $3)
	`
	args := []interface{}{models.PurchaseStatusCompleted, nullString(userID), email}
	if programID != "" {
		query += ` AND program_id = $4`
		args = append(args, programID)
	}
	query += `)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists)
	return exists, err
}

// List retrieves purchases matching the filter, newest first
func (r *purchaseRepo) List(ctx context.Context, filter *models.PurchaseFilter) ([]*models.Purchase, error) {
	query := `SELECT ` + purchaseColumns + ` FROM purchases WHERE 1=1`
	args := []interface{}{}

	if filter != nil && filter.Status != "" {
		args = append(args, filter.Status)
		query += ` AND status = $1`
	}
	if filter != nil && filter.BuyerEmail != "" {
		args = append(args, filter.BuyerEmail)
		query += ` AND buyer_email = $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY created_at DESC`
	limit := 100
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}
	args = append(args, limit)
	query += ` LIMIT $` + strconv.Itoa(len(args))
	if filter != nil && filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var purchases []*models.Purchase
	for rows.Next() {
		p, err := scanPurchaseRows(rows)
		if err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

// Count returns the total number of purchases
func (r *purchaseRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM purchases").Scan(&count)
	return count, err
}

// scanner abstracts *sql.Row and *sql.Rows for purchase scanning
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPurchase(row *sql.Row) (*models.Purchase, error) {
	p, err := scanPurchaseFrom(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func scanPurchaseRows(rows *sql.Rows) (*models.Purchase, error) {
	return scanPurchaseFrom(rows)
}

func scanPurchaseFrom(s scanner) (*models.Purchase, error) {
	var p models.Purchase
	var userID, token sql.NullString
	var completedAt, expiresAt sql.NullTime

	err := s.Scan(
		&p.ID, &p.ProgramID, &userID, &p.BuyerEmail, &p.PaymentRef, &p.Status,
		&token, &p.DownloadCount, &p.DownloadLimit,
		&p.CreatedAt, &completedAt, &expiresAt,
	)
	if err != nil {
		return nil, err
	}

	p.UserID = userID.String
	p.DownloadToken = token.String
	if completedAt.Valid {
		p.CompletedAt = &completedAt.Time
	}
	if expiresAt.Valid {
		p.ExpiresAt = &expiresAt.Time
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
