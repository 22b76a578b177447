// internal/profile/repository.go
package profile

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the profile storage interface
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	SetVerificationStatus(ctx context.Context, userID int64, status string) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL profile repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, email, role, university, phone, photo_url, verification_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.Email, p.Role, p.University, p.Phone,
		p.PhotoURL, p.VerificationStatus, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	if err != nil {
		return fmt.Errorf("failed to insert profile: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `SELECT id, user_id, name, email, role, university, phone, photo_url, verification_status, created_at, updated_at
		FROM profiles WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &p, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Profile) error {
	query := `
		UPDATE profiles
		SET name = $1, university = $2, phone = $3, photo_url = $4, updated_at = NOW()
		WHERE user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		p.Name, p.University, p.Phone, p.PhotoURL, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}

func (r *postgresRepository) SetVerificationStatus(ctx context.Context, userID int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE profiles SET verification_status = $1, updated_at = NOW() WHERE user_id = $2`,
		status, userID)
	if err != nil {
		return fmt.Errorf("failed to update verification status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrProfileNotFound
	}

	return nil
}
