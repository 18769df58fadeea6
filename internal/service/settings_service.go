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

type scheduleStore interface {
	GetSettings(ctx context.Context, mentorID string) (*models.ScheduleSettings, error)
	UpsertSettings(ctx context.Context, settings *models.ScheduleSettings) error
	ListPatterns(ctx context.Context, mentorID string) ([]models.WeeklyPattern, error)
	GetPattern(ctx context.Context, mentorID string, dayOfWeek int) (*models.WeeklyPattern, error)
	UpsertPattern(ctx context.Context, pattern *models.WeeklyPattern) error
	BulkUpsertPatterns(ctx context.Context, patterns []models.WeeklyPattern) error
	SaveSchedule(ctx context.Context, settings *models.ScheduleSettings, patterns []models.WeeklyPattern) error
}

type availabilityCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	InvalidateMentor(ctx context.Context, mentorID string) error
}

// UpdateSettingsRequest carries a partial settings mutation; nil fields are
// left untouched.
type UpdateSettingsRequest struct {
	Timezone                      *string `json:"timezone"`
	DefaultSessionDurationMinutes *int    `json:"defaultSessionDurationMinutes" validate:"omitempty,min=15,max=480"`
	BufferMinutesBetweenSessions  *int    `json:"bufferMinutesBetweenSessions" validate:"omitempty,min=0,max=120"`
	MinAdvanceBookingHours        *int    `json:"minAdvanceBookingHours" validate:"omitempty,min=0,max=720"`
	MaxAdvanceBookingDays         *int    `json:"maxAdvanceBookingDays" validate:"omitempty,min=1,max=365"`
	DefaultStartTime              *string `json:"defaultStartTime"`
	DefaultEndTime                *string `json:"defaultEndTime"`
	IsActive                      *bool   `json:"isActive"`
	AllowInstantBooking           *bool   `json:"allowInstantBooking"`
	RequireConfirmation           *bool   `json:"requireConfirmation"`
}

// BookingLimits caps the mentor-configurable booking parameters. The values
// come from service configuration, not from the mentor.
type BookingLimits struct {
	MaxSessionDurationMinutes int
	MaxAdvanceDaysCeiling     int
}

// SettingsService owns schedule settings including lazy default creation.
type SettingsService struct {
	store           scheduleStore
	cache           availabilityCache
	metrics         *MetricsService
	validator       *validator.Validate
	logger          *zap.Logger
	defaultTimezone string
	limits          BookingLimits
}

// NewSettingsService instantiates SettingsService. Zero limits fall back to
// the service-wide ceilings.
func NewSettingsService(store scheduleStore, cache availabilityCache, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger, defaultTimezone string, limits BookingLimits) *SettingsService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if limits.MaxSessionDurationMinutes <= 0 {
		limits.MaxSessionDurationMinutes = 240
	}
	if limits.MaxAdvanceDaysCeiling <= 0 {
		limits.MaxAdvanceDaysCeiling = 365
	}
	return &SettingsService{store: store, cache: cache, metrics: metrics, validator: validate, logger: logger, defaultTimezone: defaultTimezone, limits: limits}
}

// Get returns the mentor's settings, or nil when the schedule was never
// initialised. The nil result maps to `{"schedule": null}` on the wire,
// which tells the client to offer default-schedule construction.
func (s *SettingsService) Get(ctx context.Context, mentorID string) (*models.ScheduleSettings, error) {
	settings, err := s.store.GetSettings(ctx, mentorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule settings")
	}
	return settings, nil
}

// GetOrCreate returns the mentor's settings, provisioning the default
// schedule (settings plus Mon-Fri weekly patterns) on first access.
func (s *SettingsService) GetOrCreate(ctx context.Context, mentorID string) (*models.ScheduleSettings, error) {
	settings, err := s.store.GetSettings(ctx, mentorID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule settings")
	}

	defaults := models.DefaultScheduleSettings(mentorID, s.defaultTimezone)
	patterns := models.DefaultWeeklyPatterns(mentorID)
	if err := s.store.SaveSchedule(ctx, &defaults, patterns); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create default schedule")
	}
	s.logger.Info("default schedule created", zap.String("mentor_id", mentorID))
	return &defaults, nil
}

// Update applies a partial settings mutation and invalidates cached
// availability for the mentor.
func (s *SettingsService) Update(ctx context.Context, mentorID string, req UpdateSettingsRequest) (*models.ScheduleSettings, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid settings payload")
	}
	violations := validateSettingsTimes(req)
	violations = append(violations, s.validateLimits(req)...)
	if len(violations) > 0 {
		return nil, appErrors.Validation(violations)
	}

	settings, err := s.GetOrCreate(ctx, mentorID)
	if err != nil {
		return nil, err
	}

	applySettingsUpdate(settings, req)

	if err := s.store.UpsertSettings(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule settings")
	}
	s.metrics.RecordScheduleWrite("settings")
	if s.cache != nil {
		_ = s.cache.InvalidateMentor(ctx, mentorID)
	}
	return settings, nil
}

func (s *SettingsService) validateLimits(req UpdateSettingsRequest) []string {
	var violations []string
	if req.DefaultSessionDurationMinutes != nil && *req.DefaultSessionDurationMinutes > s.limits.MaxSessionDurationMinutes {
		violations = append(violations, fmt.Sprintf("defaultSessionDurationMinutes must not exceed %d", s.limits.MaxSessionDurationMinutes))
	}
	if req.MaxAdvanceBookingDays != nil && *req.MaxAdvanceBookingDays > s.limits.MaxAdvanceDaysCeiling {
		violations = append(violations, fmt.Sprintf("maxAdvanceBookingDays must not exceed %d", s.limits.MaxAdvanceDaysCeiling))
	}
	return violations
}

func validateSettingsTimes(req UpdateSettingsRequest) []string {
	var violations []string
	if req.Timezone != nil {
		if _, err := time.LoadLocation(*req.Timezone); err != nil {
			violations = append(violations, "timezone must be a valid IANA identifier")
		}
	}
	if req.DefaultStartTime != nil {
		if _, err := models.ParseMinutes(*req.DefaultStartTime); err != nil {
			violations = append(violations, "defaultStartTime must be a valid HH:MM value")
		}
	}
	if req.DefaultEndTime != nil {
		if _, err := models.ParseMinutes(*req.DefaultEndTime); err != nil {
			violations = append(violations, "defaultEndTime must be a valid HH:MM value")
		}
	}
	return violations
}

func applySettingsUpdate(settings *models.ScheduleSettings, req UpdateSettingsRequest) {
	if req.Timezone != nil {
		settings.Timezone = *req.Timezone
	}
	if req.DefaultSessionDurationMinutes != nil {
		settings.DefaultSessionDurationMinutes = *req.DefaultSessionDurationMinutes
	}
	if req.BufferMinutesBetweenSessions != nil {
		settings.BufferMinutesBetweenSessions = *req.BufferMinutesBetweenSessions
	}
	if req.MinAdvanceBookingHours != nil {
		settings.MinAdvanceBookingHours = *req.MinAdvanceBookingHours
	}
	if req.MaxAdvanceBookingDays != nil {
		settings.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
	}
	if req.DefaultStartTime != nil {
		settings.DefaultStartTime = *req.DefaultStartTime
	}
	if req.DefaultEndTime != nil {
		settings.DefaultEndTime = *req.DefaultEndTime
	}
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}
	if req.AllowInstantBooking != nil {
		settings.AllowInstantBooking = *req.AllowInstantBooking
	}
	if req.RequireConfirmation != nil {
		settings.RequireConfirmation = *req.RequireConfirmation
	}
}
