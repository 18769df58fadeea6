package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

type exceptionResolver interface {
	Resolve(ctx context.Context, mentorID string, date time.Time) (*models.Exception, error)
}

// AvailabilityResponse is the wire shape of GET /availability. A nil
// Schedule signals an uninitialised mentor.
type AvailabilityResponse struct {
	Schedule       *models.ScheduleSettings `json:"schedule"`
	WeeklyPatterns []models.WeeklyPattern   `json:"weeklyPatterns"`
}

// SaveAvailabilityRequest is the full settings + patterns payload accepted
// by PUT and POST /availability.
type SaveAvailabilityRequest struct {
	Schedule       models.ScheduleSettings `json:"schedule" validate:"required"`
	WeeklyPatterns []models.WeeklyPattern  `json:"weeklyPatterns" validate:"required,max=7"`
}

// AvailabilityService is the schedule aggregate: it composes settings, the
// weekly pattern store and the exception resolver into effective
// availability for concrete dates.
type AvailabilityService struct {
	store      scheduleStore
	settings   *SettingsService
	exceptions exceptionResolver
	cache      availabilityCache
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	cacheTTL   time.Duration
}

// NewAvailabilityService instantiates AvailabilityService.
func NewAvailabilityService(store scheduleStore, settings *SettingsService, exceptions exceptionResolver, cache availabilityCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, cacheTTL time.Duration) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &AvailabilityService{
		store:      store,
		settings:   settings,
		exceptions: exceptions,
		cache:      cache,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		cacheTTL:   cacheTTL,
	}
}

// Get returns the mentor's settings and stored weekly patterns. An
// uninitialised mentor yields {schedule: null} so the client can offer
// default-schedule construction.
func (s *AvailabilityService) Get(ctx context.Context, mentorID string) (*AvailabilityResponse, error) {
	settings, err := s.settings.Get(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return &AvailabilityResponse{Schedule: nil, WeeklyPatterns: []models.WeeklyPattern{}}, nil
	}

	patterns, err := s.store.ListPatterns(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list weekly patterns")
	}
	return &AvailabilityResponse{Schedule: settings, WeeklyPatterns: patterns}, nil
}

// Save validates and persists the full availability payload atomically.
func (s *AvailabilityService) Save(ctx context.Context, mentorID string, req SaveAvailabilityRequest) (*AvailabilityResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability payload")
	}

	var violations []string
	if _, err := time.LoadLocation(req.Schedule.Timezone); err != nil {
		violations = append(violations, "timezone must be a valid IANA identifier")
	}
	seenDays := make(map[int]bool, len(req.WeeklyPatterns))
	for i := range req.WeeklyPatterns {
		p := &req.WeeklyPatterns[i]
		if !models.ValidDayOfWeek(p.DayOfWeek) {
			violations = append(violations, fmt.Sprintf("dayOfWeek %d must be between 0 and 6", p.DayOfWeek))
			continue
		}
		if seenDays[p.DayOfWeek] {
			violations = append(violations, fmt.Sprintf("dayOfWeek %d appears more than once", p.DayOfWeek))
			continue
		}
		seenDays[p.DayOfWeek] = true
		violations = append(violations, ValidateBlockSet(p.TimeBlocks)...)
	}
	if len(violations) > 0 {
		return nil, appErrors.Validation(violations)
	}

	settings := req.Schedule
	settings.MentorID = mentorID
	patterns := make([]models.WeeklyPattern, len(req.WeeklyPatterns))
	for i, p := range req.WeeklyPatterns {
		p.MentorID = mentorID
		p.TimeBlocks = models.TimeBlockList(NormalizeBlocks(p.TimeBlocks))
		patterns[i] = p
	}

	if err := s.store.SaveSchedule(ctx, &settings, patterns); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save availability")
	}
	s.metrics.RecordScheduleWrite("schedule")
	if s.cache != nil {
		_ = s.cache.InvalidateMentor(ctx, mentorID)
	}
	return &AvailabilityResponse{Schedule: &settings, WeeklyPatterns: patterns}, nil
}

// EffectiveAvailability returns the final, exception-resolved block list for
// a concrete calendar date. Only the year, month and day of the argument are
// read; they name the calendar date in the mentor's timezone, regardless of
// the argument's own location. Total over all dates: every failure mode maps
// to an empty list or an infrastructure error, never a panic.
//
// Resolution order: inactive settings short-circuit to empty; a covering
// exception fully replaces the weekly pattern; otherwise the day's pattern
// applies when enabled.
func (s *AvailabilityService) EffectiveAvailability(ctx context.Context, mentorID string, date time.Time) ([]models.TimeBlock, error) {
	settings, err := s.settings.GetOrCreate(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !settings.IsActive {
		return []models.TimeBlock{}, nil
	}

	year, month, dayOfMonth := date.Date()
	day := time.Date(year, month, dayOfMonth, 0, 0, 0, 0, settings.Location())
	cacheKey := availabilityKey(mentorID, day)

	if s.cache != nil {
		var cached []models.TimeBlock
		start := time.Now()
		err := s.cache.Get(ctx, cacheKey, &cached)
		s.metrics.RecordCacheOperation(err == nil, time.Since(start))
		if err == nil {
			return cached, nil
		}
	}

	blocks, err := s.computeEffective(ctx, mentorID, day)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		start := time.Now()
		if err := s.cache.Set(ctx, cacheKey, blocks, s.cacheTTL); err != nil {
			s.logger.Warn("availability cache write failed", zap.String("mentor_id", mentorID), zap.Error(err))
		}
		s.metrics.ObserveCacheWrite(time.Since(start))
	}
	return blocks, nil
}

func (s *AvailabilityService) computeEffective(ctx context.Context, mentorID string, day time.Time) ([]models.TimeBlock, error) {
	exception, err := s.exceptions.Resolve(ctx, mentorID, day)
	if err != nil {
		return nil, err
	}
	if exception != nil {
		return exception.EffectiveBlocks(), nil
	}

	pattern, err := s.store.GetPattern(ctx, mentorID, int(day.Weekday()))
	if err != nil {
		if isNoRows(err) {
			return []models.TimeBlock{}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load weekly pattern")
	}
	if !pattern.IsEnabled {
		return []models.TimeBlock{}, nil
	}
	return NormalizeBlocks(pattern.TimeBlocks), nil
}

func availabilityKey(mentorID string, day time.Time) string {
	return fmt.Sprintf("avail:%s:%s", mentorID, day.Format("2006-01-02"))
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
