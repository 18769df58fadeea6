package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func settingsRows(settings models.ScheduleSettings) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "mentor_id", "timezone", "default_session_duration_minutes", "buffer_minutes_between_sessions",
		"min_advance_booking_hours", "max_advance_booking_days", "default_start_time", "default_end_time",
		"is_active", "allow_instant_booking", "require_confirmation", "created_at", "updated_at",
	}).AddRow(
		settings.ID, settings.MentorID, settings.Timezone, settings.DefaultSessionDurationMinutes,
		settings.BufferMinutesBetweenSessions, settings.MinAdvanceBookingHours, settings.MaxAdvanceBookingDays,
		settings.DefaultStartTime, settings.DefaultEndTime, settings.IsActive, settings.AllowInstantBooking,
		settings.RequireConfirmation, time.Now(), time.Now(),
	)
}

func TestScheduleRepositoryGetSettings(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	stored := models.DefaultScheduleSettings("mentor-1", "UTC")
	stored.ID = "set-1"

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mentor_id, timezone")).
		WithArgs("mentor-1").
		WillReturnRows(settingsRows(stored))

	settings, err := repo.GetSettings(context.Background(), "mentor-1")
	require.NoError(t, err)
	require.Equal(t, "set-1", settings.ID)
	require.Equal(t, 60, settings.DefaultSessionDurationMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryGetSettingsNoRows(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, mentor_id, timezone")).
		WithArgs("mentor-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetSettings(context.Background(), "mentor-1")
	require.True(t, errors.Is(err, sql.ErrNoRows))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryUpsertSettingsStampsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_settings")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	settings := models.DefaultScheduleSettings("mentor-1", "UTC")
	require.NoError(t, repo.UpsertSettings(context.Background(), &settings))
	require.NotEmpty(t, settings.ID)
	require.False(t, settings.UpdatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryUpsertPattern(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	pattern := models.WeeklyPattern{
		MentorID:  "mentor-1",
		DayOfWeek: 1,
		IsEnabled: true,
		TimeBlocks: models.TimeBlockList{
			{StartTime: "09:00", EndTime: "17:00", Type: models.BlockAvailable},
		},
	}
	require.NoError(t, repo.UpsertPattern(context.Background(), &pattern))
	require.NotEmpty(t, pattern.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryBulkUpsertPatternsTransactional(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	patterns := []models.WeeklyPattern{
		{MentorID: "mentor-1", DayOfWeek: 1, IsEnabled: true},
		{MentorID: "mentor-1", DayOfWeek: 2, IsEnabled: true},
	}
	require.NoError(t, repo.BulkUpsertPatterns(context.Background(), patterns))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositoryBulkUpsertRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	patterns := []models.WeeklyPattern{
		{MentorID: "mentor-1", DayOfWeek: 1},
		{MentorID: "mentor-1", DayOfWeek: 2},
	}
	require.Error(t, repo.BulkUpsertPatterns(context.Background(), patterns))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepositorySaveSchedule(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewScheduleRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_settings")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO weekly_patterns")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	settings := models.DefaultScheduleSettings("mentor-1", "UTC")
	patterns := []models.WeeklyPattern{{MentorID: "mentor-1", DayOfWeek: 1, IsEnabled: true}}
	require.NoError(t, repo.SaveSchedule(context.Background(), &settings, patterns))
	require.NoError(t, mock.ExpectationsWereMet())
}
