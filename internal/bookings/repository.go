// internal/bookings/repository.go
package bookings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the booking storage interface
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByStudent(ctx context.Context, studentID int64) ([]Booking, error)
	GetByLandlord(ctx context.Context, landlordID int64) ([]Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	CountByLandlord(ctx context.Context, landlordID int64) (total, pending, accepted int, err error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a new PostgreSQL booking repository
func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

const bookingColumns = `id, student_id, student_name, landlord_id, listing_id, listing_title,
	room_type, move_in_date, status, created_at, updated_at`

func (r *postgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (student_id, student_name, landlord_id, listing_id, listing_title,
			room_type, move_in_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		b.StudentID, b.StudentName, b.LandlordID, b.ListingID, b.ListingTitle,
		b.RoomType, b.MoveInDate, b.Status, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE id = $1`, bookingColumns)

	if err := r.db.GetContext(ctx, &b, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) GetByStudent(ctx context.Context, studentID int64) ([]Booking, error) {
	var items []Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE student_id = $1 ORDER BY created_at DESC`, bookingColumns)

	if err := r.db.SelectContext(ctx, &items, query, studentID); err != nil {
		return nil, fmt.Errorf("failed to get student bookings: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) GetByLandlord(ctx context.Context, landlordID int64) ([]Booking, error) {
	var items []Booking
	query := fmt.Sprintf(`SELECT %s FROM bookings WHERE landlord_id = $1 ORDER BY created_at DESC`, bookingColumns)

	if err := r.db.SelectContext(ctx, &items, query, landlordID); err != nil {
		return nil, fmt.Errorf("failed to get landlord bookings: %w", err)
	}

	return items, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *postgresRepository) CountByLandlord(ctx context.Context, landlordID int64) (total, pending, accepted int, err error) {
	query := `
		SELECT COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending,
			COUNT(*) FILTER (WHERE status = 'accepted') AS accepted
		FROM bookings WHERE landlord_id = $1`

	row := r.db.QueryRowContext(ctx, query, landlordID)
	if err = row.Scan(&total, &pending, &accepted); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return total, pending, accepted, nil
}
