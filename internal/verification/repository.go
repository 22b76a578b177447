// internal/verification/repository.go
package verification

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the verification storage interface
type Repository interface {
	Create(ctx context.Context, v *Verification) error
	GetByUserID(ctx context.Context, userID int64) (*Verification, error)
	GetByID(ctx context.Context, id int64) (*Verification, error)
	GetPending(ctx context.Context) ([]Verification, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL verification repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const verificationColumns = `id, user_id, role, nic, student_id_number, nic_photo_url,
	student_id_photo_url, status, reviewed_at, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, v *Verification) error {
	query := `
		INSERT INTO verifications (user_id, role, nic, student_id_number, nic_photo_url,
			student_id_photo_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		v.UserID, v.Role, v.NIC, v.StudentIDNumber, v.NICPhotoURL,
		v.StudentIDPhotoURL, v.Status, v.CreatedAt, v.UpdatedAt,
	).Scan(&v.ID)
	if err != nil {
		return fmt.Errorf("failed to insert verification: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Verification, error) {
	var v Verification
	query := fmt.Sprintf(`SELECT %s FROM verifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`, verificationColumns)

	if err := r.db.GetContext(ctx, &v, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &v, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Verification, error) {
	var v Verification
	query := fmt.Sprintf(`SELECT %s FROM verifications WHERE id = $1`, verificationColumns)

	if err := r.db.GetContext(ctx, &v, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrVerificationNotFound
		}
		return nil, fmt.Errorf("failed to get verification: %w", err)
	}

	return &v, nil
}

func (r *postgresRepository) GetPending(ctx context.Context) ([]Verification, error) {
	var items []Verification
	query := fmt.Sprintf(`SELECT %s FROM verifications WHERE status = 'pending' ORDER BY created_at ASC`, verificationColumns)

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get pending verifications: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE verifications SET status = $1, reviewed_at = NOW(), updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update verification status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrVerificationNotFound
	}

	return nil
}
