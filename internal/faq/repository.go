// internal/faq/repository.go
package faq

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the FAQ storage interface
type Repository interface {
	GetAll(ctx context.Context) ([]FAQ, error)
	Count(ctx context.Context) (int, error)
	Insert(ctx context.Context, f *FAQ) error
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL FAQ repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]FAQ, error) {
	var items []FAQ
	query := `SELECT id, category, question, answer, sort_order, created_at
		FROM faqs ORDER BY sort_order ASC, id ASC`

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get FAQs: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM faqs`); err != nil {
		return 0, fmt.Errorf("failed to count FAQs: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Insert(ctx context.Context, f *FAQ) error {
	query := `
		INSERT INTO faqs (category, question, answer, sort_order, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		f.Category, f.Question, f.Answer, f.SortOrder,
	).Scan(&f.ID)
	if err != nil {
		return fmt.Errorf("failed to insert FAQ: %w", err)
	}

	return nil
}
