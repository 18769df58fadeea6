package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

func newSettingsService(store *mockScheduleStore, cache *mockCache) *SettingsService {
	return NewSettingsService(store, cache, nil, validator.New(), zap.NewNop(), "UTC", BookingLimits{})
}

func TestSettingsGetUninitialisedReturnsNil(t *testing.T) {
	svc := newSettingsService(newMockScheduleStore(), nil)

	settings, err := svc.Get(context.Background(), "mentor-1")
	require.NoError(t, err)
	assert.Nil(t, settings)
}

func TestSettingsGetOrCreateProvisionsDefaults(t *testing.T) {
	store := newMockScheduleStore()
	svc := newSettingsService(store, nil)

	settings, err := svc.GetOrCreate(context.Background(), "mentor-1")
	require.NoError(t, err)
	require.NotNil(t, settings)

	assert.Equal(t, 60, settings.DefaultSessionDurationMinutes)
	assert.Equal(t, 15, settings.BufferMinutesBetweenSessions)
	assert.Equal(t, 24, settings.MinAdvanceBookingHours)
	assert.Equal(t, 90, settings.MaxAdvanceBookingDays)
	assert.True(t, settings.IsActive)
	assert.Equal(t, 1, store.saveCalls)

	patterns, err := store.ListPatterns(context.Background(), "mentor-1")
	require.NoError(t, err)
	require.Len(t, patterns, 7)
	assert.False(t, patterns[0].IsEnabled, "Sunday disabled by default")
	assert.True(t, patterns[1].IsEnabled, "Monday enabled by default")
	assert.Len(t, patterns[1].TimeBlocks, 3)
	assert.False(t, patterns[6].IsEnabled, "Saturday disabled by default")

	// Second call must not re-provision.
	_, err = svc.GetOrCreate(context.Background(), "mentor-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.saveCalls)
}

func TestSettingsUpdatePartialApply(t *testing.T) {
	store := newMockScheduleStore()
	cache := newMockCache()
	svc := newSettingsService(store, cache)

	duration := 45
	active := false
	updated, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{
		DefaultSessionDurationMinutes: &duration,
		IsActive:                      &active,
	})
	require.NoError(t, err)

	assert.Equal(t, 45, updated.DefaultSessionDurationMinutes)
	assert.False(t, updated.IsActive)
	// Untouched fields keep their defaults.
	assert.Equal(t, 15, updated.BufferMinutesBetweenSessions)
	assert.Equal(t, "UTC", updated.Timezone)
	assert.Equal(t, []string{"mentor-1"}, cache.invalidated)
}

func TestSettingsUpdateRejectsBadTimezone(t *testing.T) {
	svc := newSettingsService(newMockScheduleStore(), nil)

	tz := "Mars/Olympus_Mons"
	_, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{Timezone: &tz})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
}

func TestSettingsUpdateRejectsBadDefaultTimes(t *testing.T) {
	svc := newSettingsService(newMockScheduleStore(), nil)

	start := "nine"
	_, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{DefaultStartTime: &start})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsUpdateRejectsOutOfRangeDuration(t *testing.T) {
	svc := newSettingsService(newMockScheduleStore(), nil)

	duration := 5
	_, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{DefaultSessionDurationMinutes: &duration})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSettingsUpdateEnforcesConfiguredCeilings(t *testing.T) {
	store := newMockScheduleStore()
	svc := NewSettingsService(store, nil, nil, validator.New(), zap.NewNop(), "UTC", BookingLimits{
		MaxSessionDurationMinutes: 120,
		MaxAdvanceDaysCeiling:     180,
	})

	duration := 180
	days := 200
	_, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{
		DefaultSessionDurationMinutes: &duration,
		MaxAdvanceBookingDays:         &days,
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Details, 2)
	assert.Contains(t, appErr.Details[0], "must not exceed 120")
	assert.Contains(t, appErr.Details[1], "must not exceed 180")

	// Values at the ceiling pass.
	duration = 120
	days = 180
	updated, err := svc.Update(context.Background(), "mentor-1", UpdateSettingsRequest{
		DefaultSessionDurationMinutes: &duration,
		MaxAdvanceBookingDays:         &days,
	})
	require.NoError(t, err)
	assert.Equal(t, 120, updated.DefaultSessionDurationMinutes)
	assert.Equal(t, 180, updated.MaxAdvanceBookingDays)
}
