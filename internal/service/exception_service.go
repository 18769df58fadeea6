package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

type exceptionRepository interface {
	ListByMentor(ctx context.Context, mentorID string) ([]models.Exception, error)
	FindCovering(ctx context.Context, mentorID string, date time.Time) ([]models.Exception, error)
	FindOverlapping(ctx context.Context, mentorID string, start, end time.Time) ([]models.Exception, error)
	Create(ctx context.Context, exception *models.Exception) error
	DeleteByIDs(ctx context.Context, mentorID string, ids []string) error
}

// CreateExceptionRequest creates a date-range override. Dates arrive as
// ISO-8601; full-day exceptions carry no block granularity while partial-day
// ones must bring their own blocks.
type CreateExceptionRequest struct {
	StartDate  string             `json:"startDate" validate:"required"`
	EndDate    string             `json:"endDate" validate:"required"`
	Type       models.BlockType   `json:"type" validate:"required"`
	Reason     *string            `json:"reason,omitempty"`
	IsFullDay  bool               `json:"isFullDay"`
	TimeBlocks []models.TimeBlock `json:"timeBlocks,omitempty"`
}

// Quick-add presets map one mentor action onto a full-day BLOCKED range.
var quickAddReasons = map[string]string{
	"vacation":   "Vacation",
	"holiday":    "Public holiday",
	"conference": "Conference",
}

// ExceptionService owns date-range overrides and their precedence over the
// weekly pattern.
type ExceptionService struct {
	repo      exceptionRepository
	cache     availabilityCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExceptionService instantiates ExceptionService.
func NewExceptionService(repo exceptionRepository, cache availabilityCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ExceptionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExceptionService{repo: repo, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// List returns every exception stored for a mentor.
func (s *ExceptionService) List(ctx context.Context, mentorID string) ([]models.Exception, error) {
	exceptions, err := s.repo.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list exceptions")
	}
	if exceptions == nil {
		exceptions = []models.Exception{}
	}
	return exceptions, nil
}

// Create validates and stores a new exception. Ranges that intersect an
// existing exception are rejected so resolve never has to arbitrate between
// two deliberate overrides. The service itself imposes no past-date rule;
// that business restriction belongs to the UI boundary.
func (s *ExceptionService) Create(ctx context.Context, mentorID string, req CreateExceptionRequest) (*models.Exception, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid exception payload")
	}

	var violations []string

	start, err := parseISODate(req.StartDate)
	if err != nil {
		violations = append(violations, "startDate must be an ISO-8601 date")
	}
	end, err := parseISODate(req.EndDate)
	if err != nil {
		violations = append(violations, "endDate must be an ISO-8601 date")
	}
	if len(violations) == 0 && end.Before(start) {
		violations = append(violations, "startDate must not be after endDate")
	}

	if !req.Type.Valid() {
		violations = append(violations, fmt.Sprintf("unknown exception type %q", string(req.Type)))
	}

	if !req.IsFullDay {
		if len(req.TimeBlocks) == 0 {
			violations = append(violations, "partial-day exceptions require at least one time block")
		}
		// Each block stands alone: exceptions define their day in isolation
		// from the weekly pattern, so blocks validate against an empty set.
		for _, block := range req.TimeBlocks {
			violations = append(violations, ValidateTimeBlock(block, nil)...)
		}
	}

	if len(violations) > 0 {
		return nil, appErrors.Validation(violations)
	}

	overlapping, err := s.repo.FindOverlapping(ctx, mentorID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check exception overlap")
	}
	if len(overlapping) > 0 {
		return nil, appErrors.Validation([]string{fmt.Sprintf("date range overlaps existing exception %s", overlapping[0].ID)})
	}

	exception := &models.Exception{
		MentorID:  mentorID,
		StartDate: start,
		EndDate:   end,
		Type:      req.Type,
		Reason:    req.Reason,
		IsFullDay: req.IsFullDay,
	}
	if !req.IsFullDay {
		exception.TimeBlocks = models.TimeBlockList(NormalizeBlocks(req.TimeBlocks))
	}

	if err := s.repo.Create(ctx, exception); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create exception")
	}
	s.metrics.RecordScheduleWrite("exception")
	s.invalidate(ctx, mentorID)
	return exception, nil
}

// QuickAdd creates a full-day BLOCKED exception from a named preset.
func (s *ExceptionService) QuickAdd(ctx context.Context, mentorID, preset, startDate, endDate string) (*models.Exception, error) {
	reason, ok := quickAddReasons[preset]
	if !ok {
		return nil, appErrors.Validation([]string{fmt.Sprintf("unknown preset %q", preset)})
	}
	return s.Create(ctx, mentorID, CreateExceptionRequest{
		StartDate: startDate,
		EndDate:   endDate,
		Type:      models.BlockBlocked,
		Reason:    &reason,
		IsFullDay: true,
	})
}

// Delete removes exceptions by id. Idempotent: absent ids are ignored.
func (s *ExceptionService) Delete(ctx context.Context, mentorID string, ids []string) error {
	if err := s.repo.DeleteByIDs(ctx, mentorID, ids); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete exceptions")
	}
	s.metrics.RecordScheduleWrite("exception")
	s.invalidate(ctx, mentorID)
	return nil
}

// Resolve returns the exception covering the date, or nil. When legacy data
// contains overlapping ranges the most recently created one wins, so reads
// stay deterministic even though creation now rejects new overlaps.
func (s *ExceptionService) Resolve(ctx context.Context, mentorID string, date time.Time) (*models.Exception, error) {
	covering, err := s.repo.FindCovering(ctx, mentorID, date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve exception")
	}
	if len(covering) == 0 {
		return nil, nil
	}
	return &covering[0], nil
}

func (s *ExceptionService) invalidate(ctx context.Context, mentorID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMentor(ctx, mentorID); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("mentor_id", mentorID), zap.Error(err))
	}
}

// parseISODate accepts a full RFC 3339 instant or a bare calendar date and
// truncates either to the calendar date.
func parseISODate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
