package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

func TestBookingRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking := models.Booking{
		MentorID: "mentor-1",
		MenteeID: "mentee-1",
		StartAt:  time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
		EndAt:    time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC),
		Status:   models.BookingConfirmed,
	}
	require.NoError(t, repo.Create(context.Background(), &booking))
	require.NotEmpty(t, booking.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryListActiveBetween(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	start := time.Date(2026, 9, 8, 9, 45, 0, 0, time.UTC)
	end := time.Date(2026, 9, 8, 11, 15, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "mentor_id", "mentee_id", "start_at", "end_at", "status", "created_at", "updated_at"}).
		AddRow("bkg-1", "mentor-1", "mentee-1",
			time.Date(2026, 9, 8, 10, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 8, 11, 0, 0, 0, time.UTC),
			models.BookingConfirmed, time.Now(), time.Now())

	// Cancelled bookings are excluded and the interval is half open.
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mentor_id, mentee_id")).
		WithArgs("mentor-1", models.BookingCancelled, end, start).
		WillReturnRows(rows)

	bookings, err := repo.ListActiveBetween(context.Background(), "mentor-1", start, end)
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	require.Equal(t, "bkg-1", bookings[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepositoryUpdateStatus(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewBookingRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings SET status")).
		WithArgs(models.BookingCancelled, sqlmock.AnyArg(), "bkg-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateStatus(context.Background(), "bkg-1", models.BookingCancelled))
	require.NoError(t, mock.ExpectationsWereMet())
}
