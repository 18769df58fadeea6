package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

// UpsertBlockRequest adds a new block or replaces the block at EditIndex.
// Passing the edit as an explicit command keeps the validator pipeline free
// of ambient edit-session state.
type UpsertBlockRequest struct {
	Block     models.TimeBlock `json:"block"`
	EditIndex *int             `json:"editIndex,omitempty"`
}

// BulkPatternRequest applies the same canonical block list to several days.
type BulkPatternRequest struct {
	DaysOfWeek []int              `json:"daysOfWeek" validate:"required,min=1,max=7,dive,min=0,max=6"`
	Blocks     []models.TimeBlock `json:"blocks" validate:"required,min=1"`
}

// CopyDayRequest clones one day's pattern onto the targets.
type CopyDayRequest struct {
	TargetDays []int `json:"targetDays" validate:"required,min=1,max=6,dive,min=0,max=6"`
}

// PatternService is the weekly pattern store: the recurring, day-of-week
// indexed baseline schedule.
type PatternService struct {
	store     scheduleStore
	cache     availabilityCache
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPatternService instantiates PatternService.
func NewPatternService(store scheduleStore, cache availabilityCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *PatternService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PatternService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// GetPattern returns the stored pattern for a day, or the disabled default
// when the day was never configured. Never errors for a valid day.
func (s *PatternService) GetPattern(ctx context.Context, mentorID string, dayOfWeek int) (*models.WeeklyPattern, error) {
	if !models.ValidDayOfWeek(dayOfWeek) {
		return nil, appErrors.Validation([]string{fmt.Sprintf("dayOfWeek %d must be between 0 and 6", dayOfWeek)})
	}
	pattern, err := s.store.GetPattern(ctx, mentorID, dayOfWeek)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			def := models.DefaultPattern(mentorID, dayOfWeek)
			return &def, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly pattern")
	}
	return pattern, nil
}

// SetEnabled toggles a day. Disabling preserves the block list so the day
// can be re-enabled later; disabled days contribute no availability.
func (s *PatternService) SetEnabled(ctx context.Context, mentorID string, dayOfWeek int, enabled bool) (*models.WeeklyPattern, error) {
	pattern, err := s.GetPattern(ctx, mentorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	pattern.IsEnabled = enabled
	if err := s.store.UpsertPattern(ctx, pattern); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update weekly pattern")
	}
	s.patternWritten(ctx, mentorID)
	return pattern, nil
}

// UpsertBlock validates the candidate against the day's other blocks, then
// normalizes and persists the day. State is untouched when validation fails.
func (s *PatternService) UpsertBlock(ctx context.Context, mentorID string, dayOfWeek int, req UpsertBlockRequest) (*models.WeeklyPattern, error) {
	pattern, err := s.GetPattern(ctx, mentorID, dayOfWeek)
	if err != nil {
		return nil, err
	}

	blocks := []models.TimeBlock(pattern.TimeBlocks)
	others := blocks
	if req.EditIndex != nil {
		if *req.EditIndex < 0 || *req.EditIndex >= len(blocks) {
			return nil, appErrors.Validation([]string{fmt.Sprintf("editIndex %d is out of range", *req.EditIndex)})
		}
		others = ExcludeIndex(blocks, *req.EditIndex)
	}

	if violations := ValidateTimeBlock(req.Block, others); len(violations) > 0 {
		return nil, appErrors.Validation(violations)
	}

	updated := append(append([]models.TimeBlock{}, others...), req.Block)
	pattern.TimeBlocks = models.TimeBlockList(NormalizeBlocks(updated))

	if err := s.store.UpsertPattern(ctx, pattern); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist weekly pattern")
	}
	s.patternWritten(ctx, mentorID)
	return pattern, nil
}

// RemoveBlock drops the block at index unconditionally; removal needs no
// validation.
func (s *PatternService) RemoveBlock(ctx context.Context, mentorID string, dayOfWeek, index int) (*models.WeeklyPattern, error) {
	pattern, err := s.GetPattern(ctx, mentorID, dayOfWeek)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(pattern.TimeBlocks) {
		return nil, appErrors.Validation([]string{fmt.Sprintf("block index %d is out of range", index)})
	}

	pattern.TimeBlocks = models.TimeBlockList(ExcludeIndex(pattern.TimeBlocks, index))
	if err := s.store.UpsertPattern(ctx, pattern); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist weekly pattern")
	}
	s.patternWritten(ctx, mentorID)
	return pattern, nil
}

// ApplyBulkPattern writes the same canonical block list, enabled, to every
// targeted day in one transaction. All-or-nothing: a partial failure leaves
// every day unchanged.
func (s *PatternService) ApplyBulkPattern(ctx context.Context, mentorID string, req BulkPatternRequest) ([]models.WeeklyPattern, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid bulk pattern payload")
	}
	seen := make(map[int]bool, len(req.DaysOfWeek))
	for _, day := range req.DaysOfWeek {
		if seen[day] {
			return nil, appErrors.Validation([]string{fmt.Sprintf("dayOfWeek %d targeted more than once", day)})
		}
		seen[day] = true
	}

	if violations := ValidateBlockSet(req.Blocks); len(violations) > 0 {
		return nil, appErrors.Validation(violations)
	}
	canonical := models.TimeBlockList(NormalizeBlocks(req.Blocks))

	patterns := make([]models.WeeklyPattern, 0, len(req.DaysOfWeek))
	for _, day := range req.DaysOfWeek {
		existing, err := s.GetPattern(ctx, mentorID, day)
		if err != nil {
			return nil, err
		}
		existing.IsEnabled = true
		existing.TimeBlocks = canonical.Clone()
		patterns = append(patterns, *existing)
	}

	if err := s.store.BulkUpsertPatterns(ctx, patterns); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply bulk pattern")
	}
	s.patternWritten(ctx, mentorID)
	return patterns, nil
}

// CopyDay clones the source day's enable flag and a deep copy of its blocks
// onto every target day atomically. The source is already valid and days are
// independent, so no re-validation is needed.
func (s *PatternService) CopyDay(ctx context.Context, mentorID string, sourceDay int, req CopyDayRequest) ([]models.WeeklyPattern, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid copy payload")
	}
	if !models.ValidDayOfWeek(sourceDay) {
		return nil, appErrors.Validation([]string{fmt.Sprintf("dayOfWeek %d must be between 0 and 6", sourceDay)})
	}

	source, err := s.GetPattern(ctx, mentorID, sourceDay)
	if err != nil {
		return nil, err
	}

	patterns := make([]models.WeeklyPattern, 0, len(req.TargetDays))
	for _, day := range req.TargetDays {
		if day == sourceDay {
			return nil, appErrors.Validation([]string{"cannot copy a day onto itself"})
		}
		target, err := s.GetPattern(ctx, mentorID, day)
		if err != nil {
			return nil, err
		}
		target.IsEnabled = source.IsEnabled
		target.TimeBlocks = source.TimeBlocks.Clone()
		patterns = append(patterns, *target)
	}

	if err := s.store.BulkUpsertPatterns(ctx, patterns); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to copy day pattern")
	}
	s.patternWritten(ctx, mentorID)
	return patterns, nil
}

// patternWritten runs the post-write bookkeeping: the write counter and the
// mentor's cache invalidation.
func (s *PatternService) patternWritten(ctx context.Context, mentorID string) {
	s.metrics.RecordScheduleWrite("pattern")
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMentor(ctx, mentorID); err != nil {
		s.logger.Warn("availability cache invalidation failed", zap.String("mentor_id", mentorID), zap.Error(err))
	}
}
