package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

// ScheduleRepository persists the schedule aggregate: one settings row per
// mentor plus up to seven weekly pattern rows.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const settingsColumns = `id, mentor_id, timezone, default_session_duration_minutes, buffer_minutes_between_sessions, min_advance_booking_hours, max_advance_booking_days, default_start_time, default_end_time, is_active, allow_instant_booking, require_confirmation, created_at, updated_at`

// GetSettings loads schedule settings for a mentor.
func (r *ScheduleRepository) GetSettings(ctx context.Context, mentorID string) (*models.ScheduleSettings, error) {
	query := fmt.Sprintf(`SELECT %s FROM schedule_settings WHERE mentor_id = $1`, settingsColumns)
	var settings models.ScheduleSettings
	if err := r.db.GetContext(ctx, &settings, query, mentorID); err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertSettings creates or updates the settings row for a mentor.
func (r *ScheduleRepository) UpsertSettings(ctx context.Context, settings *models.ScheduleSettings) error {
	return r.upsertSettings(ctx, r.db, settings)
}

const upsertSettingsQuery = `INSERT INTO schedule_settings (id, mentor_id, timezone, default_session_duration_minutes, buffer_minutes_between_sessions, min_advance_booking_hours, max_advance_booking_days, default_start_time, default_end_time, is_active, allow_instant_booking, require_confirmation, created_at, updated_at)
	VALUES (:id, :mentor_id, :timezone, :default_session_duration_minutes, :buffer_minutes_between_sessions, :min_advance_booking_hours, :max_advance_booking_days, :default_start_time, :default_end_time, :is_active, :allow_instant_booking, :require_confirmation, :created_at, :updated_at)
	ON CONFLICT (mentor_id) DO UPDATE
	SET timezone = EXCLUDED.timezone,
	    default_session_duration_minutes = EXCLUDED.default_session_duration_minutes,
	    buffer_minutes_between_sessions = EXCLUDED.buffer_minutes_between_sessions,
	    min_advance_booking_hours = EXCLUDED.min_advance_booking_hours,
	    max_advance_booking_days = EXCLUDED.max_advance_booking_days,
	    default_start_time = EXCLUDED.default_start_time,
	    default_end_time = EXCLUDED.default_end_time,
	    is_active = EXCLUDED.is_active,
	    allow_instant_booking = EXCLUDED.allow_instant_booking,
	    require_confirmation = EXCLUDED.require_confirmation,
	    updated_at = EXCLUDED.updated_at`

func (r *ScheduleRepository) upsertSettings(ctx context.Context, exec sqlx.ExtContext, settings *models.ScheduleSettings) error {
	if settings.ID == "" {
		settings.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = now
	}
	settings.UpdatedAt = now

	if _, err := sqlx.NamedExecContext(ctx, exec, upsertSettingsQuery, settings); err != nil {
		return fmt.Errorf("upsert schedule settings: %w", err)
	}
	return nil
}

// ListPatterns returns all stored weekly pattern rows for a mentor ordered by day.
func (r *ScheduleRepository) ListPatterns(ctx context.Context, mentorID string) ([]models.WeeklyPattern, error) {
	const query = `SELECT id, mentor_id, day_of_week, is_enabled, time_blocks, created_at, updated_at FROM weekly_patterns WHERE mentor_id = $1 ORDER BY day_of_week ASC`
	var patterns []models.WeeklyPattern
	if err := r.db.SelectContext(ctx, &patterns, query, mentorID); err != nil {
		return nil, fmt.Errorf("list weekly patterns: %w", err)
	}
	return patterns, nil
}

// GetPattern loads the pattern row for one day of the week.
func (r *ScheduleRepository) GetPattern(ctx context.Context, mentorID string, dayOfWeek int) (*models.WeeklyPattern, error) {
	const query = `SELECT id, mentor_id, day_of_week, is_enabled, time_blocks, created_at, updated_at FROM weekly_patterns WHERE mentor_id = $1 AND day_of_week = $2`
	var pattern models.WeeklyPattern
	if err := r.db.GetContext(ctx, &pattern, query, mentorID, dayOfWeek); err != nil {
		return nil, err
	}
	return &pattern, nil
}

const upsertPatternQuery = `INSERT INTO weekly_patterns (id, mentor_id, day_of_week, is_enabled, time_blocks, created_at, updated_at)
	VALUES (:id, :mentor_id, :day_of_week, :is_enabled, :time_blocks, :created_at, :updated_at)
	ON CONFLICT (mentor_id, day_of_week) DO UPDATE
	SET is_enabled = EXCLUDED.is_enabled,
	    time_blocks = EXCLUDED.time_blocks,
	    updated_at = EXCLUDED.updated_at`

// UpsertPattern creates or replaces a single day's pattern row.
func (r *ScheduleRepository) UpsertPattern(ctx context.Context, pattern *models.WeeklyPattern) error {
	return r.upsertPattern(ctx, r.db, pattern)
}

func (r *ScheduleRepository) upsertPattern(ctx context.Context, exec sqlx.ExtContext, pattern *models.WeeklyPattern) error {
	if pattern.ID == "" {
		pattern.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if pattern.CreatedAt.IsZero() {
		pattern.CreatedAt = now
	}
	pattern.UpdatedAt = now
	if pattern.TimeBlocks == nil {
		pattern.TimeBlocks = models.TimeBlockList{}
	}

	if _, err := sqlx.NamedExecContext(ctx, exec, upsertPatternQuery, pattern); err != nil {
		return fmt.Errorf("upsert weekly pattern: %w", err)
	}
	return nil
}

// BulkUpsertPatterns writes several pattern rows within one transaction.
// Used by quick setup and copy-day: a partial failure leaves no day changed.
func (r *ScheduleRepository) BulkUpsertPatterns(ctx context.Context, patterns []models.WeeklyPattern) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin bulk upsert patterns: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i := range patterns {
		if err = r.upsertPattern(ctx, tx, &patterns[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk upsert patterns: %w", err)
	}
	return nil
}

// SaveSchedule atomically persists settings together with all provided
// pattern rows. The wire contract's full PUT /availability payload maps here.
func (r *ScheduleRepository) SaveSchedule(ctx context.Context, settings *models.ScheduleSettings, patterns []models.WeeklyPattern) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save schedule: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = r.upsertSettings(ctx, tx, settings); err != nil {
		return err
	}
	for i := range patterns {
		if err = r.upsertPattern(ctx, tx, &patterns[i]); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save schedule: %w", err)
	}
	return nil
}
