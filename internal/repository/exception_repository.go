package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

// ExceptionRepository persists date-range availability exceptions.
type ExceptionRepository struct {
	db *sqlx.DB
}

// NewExceptionRepository constructs the repository.
func NewExceptionRepository(db *sqlx.DB) *ExceptionRepository {
	return &ExceptionRepository{db: db}
}

const exceptionColumns = `id, mentor_id, start_date, end_date, type, reason, is_full_day, time_blocks, created_at`

const calendarDate = "2006-01-02"

// ListByMentor returns all exceptions for a mentor, newest range first.
func (r *ExceptionRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.Exception, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_exceptions WHERE mentor_id = $1 ORDER BY start_date ASC, created_at DESC`, exceptionColumns)
	var exceptions []models.Exception
	if err := r.db.SelectContext(ctx, &exceptions, query, mentorID); err != nil {
		return nil, fmt.Errorf("list exceptions: %w", err)
	}
	return exceptions, nil
}

// FindCovering returns exceptions whose inclusive date range contains the
// given date, most recently created first so resolve ties deterministically.
// The parameter is bound as a bare calendar date; a time.Time would reach
// the DATE columns as a timestamp and exclude every instant after midnight
// on the range's end date.
func (r *ExceptionRepository) FindCovering(ctx context.Context, mentorID string, date time.Time) ([]models.Exception, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_exceptions WHERE mentor_id = $1 AND start_date <= $2 AND end_date >= $2 ORDER BY created_at DESC`, exceptionColumns)
	var exceptions []models.Exception
	if err := r.db.SelectContext(ctx, &exceptions, query, mentorID, date.Format(calendarDate)); err != nil {
		return nil, fmt.Errorf("find covering exceptions: %w", err)
	}
	return exceptions, nil
}

// FindOverlapping returns exceptions intersecting [start, end] inclusive,
// compared as calendar dates.
func (r *ExceptionRepository) FindOverlapping(ctx context.Context, mentorID string, start, end time.Time) ([]models.Exception, error) {
	query := fmt.Sprintf(`SELECT %s FROM availability_exceptions WHERE mentor_id = $1 AND start_date <= $2 AND end_date >= $3`, exceptionColumns)
	var exceptions []models.Exception
	if err := r.db.SelectContext(ctx, &exceptions, query, mentorID, end.Format(calendarDate), start.Format(calendarDate)); err != nil {
		return nil, fmt.Errorf("find overlapping exceptions: %w", err)
	}
	return exceptions, nil
}

// Create stores a new exception.
func (r *ExceptionRepository) Create(ctx context.Context, exception *models.Exception) error {
	if exception.ID == "" {
		exception.ID = uuid.NewString()
	}
	if exception.CreatedAt.IsZero() {
		exception.CreatedAt = time.Now().UTC()
	}
	if exception.TimeBlocks == nil {
		exception.TimeBlocks = models.TimeBlockList{}
	}

	const query = `INSERT INTO availability_exceptions (id, mentor_id, start_date, end_date, type, reason, is_full_day, time_blocks, created_at)
		VALUES (:id, :mentor_id, :start_date, :end_date, :type, :reason, :is_full_day, :time_blocks, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, exception); err != nil {
		return fmt.Errorf("create exception: %w", err)
	}
	return nil
}

// DeleteByIDs removes the given exceptions for a mentor. Missing ids are
// ignored, making bulk delete idempotent.
func (r *ExceptionRepository) DeleteByIDs(ctx context.Context, mentorID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`DELETE FROM availability_exceptions WHERE mentor_id = ? AND id IN (?)`, mentorID, ids)
	if err != nil {
		return fmt.Errorf("build delete exceptions query: %w", err)
	}
	query = r.db.Rebind(query)
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete exceptions: %w", err)
	}
	return nil
}
