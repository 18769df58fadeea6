package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

// BookingRepository persists mentee bookings.
type BookingRepository struct {
	db *sqlx.DB
}

// NewBookingRepository constructs the repository.
func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create stores a new booking.
func (r *BookingRepository) Create(ctx context.Context, booking *models.Booking) error {
	if booking.ID == "" {
		booking.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now

	const query = `INSERT INTO bookings (id, mentor_id, mentee_id, start_at, end_at, status, created_at, updated_at)
		VALUES (:id, :mentor_id, :mentee_id, :start_at, :end_at, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

// FindByID loads a booking.
func (r *BookingRepository) FindByID(ctx context.Context, id string) (*models.Booking, error) {
	const query = `SELECT id, mentor_id, mentee_id, start_at, end_at, status, created_at, updated_at FROM bookings WHERE id = $1`
	var booking models.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListActiveBetween returns non-cancelled bookings for a mentor intersecting
// [start, end). Feeds the buffer-adjacency and capacity checks.
func (r *BookingRepository) ListActiveBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Booking, error) {
	const query = `SELECT id, mentor_id, mentee_id, start_at, end_at, status, created_at, updated_at FROM bookings
		WHERE mentor_id = $1 AND status != $2 AND start_at < $3 AND end_at > $4
		ORDER BY start_at ASC`
	var bookings []models.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, mentorID, models.BookingCancelled, end, start); err != nil {
		return nil, fmt.Errorf("list active bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus transitions a booking's lifecycle state.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const query = `UPDATE bookings SET status = $1, updated_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, status, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	return nil
}
