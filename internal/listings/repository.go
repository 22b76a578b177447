// internal/listings/repository.go
package listings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the listing storage interface
type Repository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id int64) (*Listing, error)
	GetActive(ctx context.Context) ([]Listing, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]Listing, error)
	Update(ctx context.Context, l *Listing) error
	SetPhotos(ctx context.Context, id int64, photos []string) error
	CountActiveByLandlord(ctx context.Context, landlordID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL listing repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const listingColumns = `id, landlord_id, title, description, price, location, latitude, longitude,
	distance_km, gender, amenities, photos, rating, reviews, active, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, l *Listing) error {
	query := `
		INSERT INTO listings (landlord_id, title, description, price, location, latitude, longitude,
			distance_km, gender, amenities, photos, rating, reviews, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		l.LandlordID, l.Title, l.Description, l.Price, l.Location,
		l.Latitude, l.Longitude, l.DistanceKm, l.Gender,
		pq.Array([]string(l.Amenities)), pq.Array([]string(l.Photos)),
		l.Rating, l.Reviews, l.Active, l.CreatedAt, l.UpdatedAt,
	).Scan(&l.ID)
	if err != nil {
		return fmt.Errorf("failed to insert listing: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Listing, error) {
	var l Listing
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE id = $1`, listingColumns)

	if err := r.db.GetContext(ctx, &l, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrListingNotFound
		}
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &l, nil
}

// GetActive returns all active listings, newest first. This mirrors the
// student search screen, which always loads the full active catalog and
// filters in memory.
func (r *postgresRepository) GetActive(ctx context.Context) ([]Listing, error) {
	var items []Listing
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE active = true ORDER BY created_at DESC`, listingColumns)

	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to get active listings: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) GetByLandlord(ctx context.Context, landlordID int64) ([]Listing, error) {
	var items []Listing
	query := fmt.Sprintf(`SELECT %s FROM listings WHERE landlord_id = $1 ORDER BY created_at DESC`, listingColumns)

	if err := r.db.SelectContext(ctx, &items, query, landlordID); err != nil {
		return nil, fmt.Errorf("failed to get landlord listings: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) Update(ctx context.Context, l *Listing) error {
	query := `
		UPDATE listings
		SET title = $1, description = $2, price = $3, location = $4, latitude = $5, longitude = $6,
			distance_km = $7, gender = $8, amenities = $9, active = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		l.Title, l.Description, l.Price, l.Location, l.Latitude, l.Longitude,
		l.DistanceKm, l.Gender, pq.Array([]string(l.Amenities)), l.Active, l.ID)
	if err != nil {
		return fmt.Errorf("failed to update listing: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrListingNotFound
	}

	return nil
}

func (r *postgresRepository) SetPhotos(ctx context.Context, id int64, photos []string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE listings SET photos = $1, updated_at = NOW() WHERE id = $2`,
		pq.Array(photos), id)
	if err != nil {
		return fmt.Errorf("failed to update listing photos: %w", err)
	}
	return nil
}

func (r *postgresRepository) CountActiveByLandlord(ctx context.Context, landlordID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM listings WHERE landlord_id = $1 AND active = true`, landlordID)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}
