package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

func newExceptionService(repo *mockExceptionRepo, cache *mockCache) *ExceptionService {
	if cache == nil {
		return NewExceptionService(repo, nil, nil, validator.New(), zap.NewNop())
	}
	return NewExceptionService(repo, cache, nil, validator.New(), zap.NewNop())
}

func TestCreateFullDayException(t *testing.T) {
	repo := &mockExceptionRepo{}
	cache := newMockCache()
	svc := newExceptionService(repo, cache)

	reason := "Vacation"
	exc, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Type:      models.BlockBlocked,
		Reason:    &reason,
		IsFullDay: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, exc.ID)
	assert.True(t, exc.IsFullDay)
	assert.Empty(t, exc.TimeBlocks)
	assert.Equal(t, []string{"mentor-1"}, cache.invalidated)

	blocks := exc.EffectiveBlocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, "00:00", blocks[0].StartTime)
	assert.Equal(t, "24:00", blocks[0].EndTime)
	assert.Equal(t, models.BlockBlocked, blocks[0].Type)
}

func TestCreatePartialDayExceptionNormalizesBlocks(t *testing.T) {
	repo := &mockExceptionRepo{}
	svc := newExceptionService(repo, nil)

	exc, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-07",
		Type:      models.BlockAvailable,
		TimeBlocks: []models.TimeBlock{
			block("11:00", "13:00", models.BlockAvailable),
			block("09:00", "11:00", models.BlockAvailable),
		},
	})
	require.NoError(t, err)
	require.Len(t, exc.TimeBlocks, 1)
	assert.Equal(t, "09:00", exc.TimeBlocks[0].StartTime)
	assert.Equal(t, "13:00", exc.TimeBlocks[0].EndTime)
}

func TestCreateExceptionCollectsViolations(t *testing.T) {
	svc := newExceptionService(&mockExceptionRepo{}, nil)

	_, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "09/07/2026",
		EndDate:   "2026-09-07",
		Type:      "WEIRD",
		IsFullDay: false,
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Len(t, appErr.Details, 3)
}

func TestCreateExceptionRejectsReversedRange(t *testing.T) {
	svc := newExceptionService(&mockExceptionRepo{}, nil)

	_, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-11",
		EndDate:   "2026-09-07",
		Type:      models.BlockBlocked,
		IsFullDay: true,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateExceptionRejectsOverlap(t *testing.T) {
	repo := &mockExceptionRepo{}
	svc := newExceptionService(repo, nil)

	_, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		Type:      models.BlockBlocked,
		IsFullDay: true,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-11",
		EndDate:   "2026-09-14",
		Type:      models.BlockBlocked,
		IsFullDay: true,
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	require.Len(t, appErr.Details, 1)
	assert.Contains(t, appErr.Details[0], "overlaps existing exception")

	// A disjoint range is fine.
	_, err = svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-12",
		EndDate:   "2026-09-14",
		Type:      models.BlockBlocked,
		IsFullDay: true,
	})
	require.NoError(t, err)
}

func TestResolveLatestCreatedWins(t *testing.T) {
	repo := &mockExceptionRepo{}
	day := time.Date(2026, 9, 8, 0, 0, 0, 0, time.UTC)
	repo.items = []models.Exception{
		{ID: "old", MentorID: "mentor-1", StartDate: day, EndDate: day, Type: models.BlockBlocked, IsFullDay: true, CreatedAt: day.Add(-48 * time.Hour)},
		{ID: "new", MentorID: "mentor-1", StartDate: day, EndDate: day, Type: models.BlockAvailable, IsFullDay: true, CreatedAt: day.Add(-1 * time.Hour)},
	}
	svc := newExceptionService(repo, nil)

	exc, err := svc.Resolve(context.Background(), "mentor-1", day)
	require.NoError(t, err)
	require.NotNil(t, exc)
	assert.Equal(t, "new", exc.ID)
}

func TestResolveNoCoveringException(t *testing.T) {
	svc := newExceptionService(&mockExceptionRepo{}, nil)

	exc, err := svc.Resolve(context.Background(), "mentor-1", time.Now())
	require.NoError(t, err)
	assert.Nil(t, exc)
}

func TestQuickAddPresets(t *testing.T) {
	repo := &mockExceptionRepo{}
	svc := newExceptionService(repo, nil)

	exc, err := svc.QuickAdd(context.Background(), "mentor-1", "vacation", "2026-09-07", "2026-09-11")
	require.NoError(t, err)
	assert.True(t, exc.IsFullDay)
	assert.Equal(t, models.BlockBlocked, exc.Type)
	require.NotNil(t, exc.Reason)
	assert.Equal(t, "Vacation", *exc.Reason)
}

func TestQuickAddUnknownPreset(t *testing.T) {
	svc := newExceptionService(&mockExceptionRepo{}, nil)

	_, err := svc.QuickAdd(context.Background(), "mentor-1", "sabbatical", "2026-09-07", "2026-09-11")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDeleteExceptionsIdempotent(t *testing.T) {
	repo := &mockExceptionRepo{}
	cache := newMockCache()
	svc := newExceptionService(repo, cache)

	_, err := svc.Create(context.Background(), "mentor-1", CreateExceptionRequest{
		StartDate: "2026-09-07",
		EndDate:   "2026-09-07",
		Type:      models.BlockBlocked,
		IsFullDay: true,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "mentor-1", []string{"exc-1", "missing"}))
	require.NoError(t, svc.Delete(context.Background(), "mentor-1", []string{"exc-1"}))

	remaining, err := svc.List(context.Background(), "mentor-1")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
