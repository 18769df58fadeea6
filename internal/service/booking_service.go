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

type bookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	FindByID(ctx context.Context, id string) (*models.Booking, error)
	ListActiveBetween(ctx context.Context, mentorID string, start, end time.Time) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
}

// CreateBookingRequest asks for one session slot with a mentor.
type CreateBookingRequest struct {
	MentorID string `json:"mentorId" validate:"required"`
	StartAt  string `json:"startAt" validate:"required"`
	EndAt    string `json:"endAt" validate:"required"`
}

// BookingWindow is the admissible booking horizon derived from settings.
type BookingWindow struct {
	Earliest time.Time `json:"earliest"`
	Latest   time.Time `json:"latest"`
}

// BookingService enforces the booking window policy: advance-notice and
// max-advance bounds, session duration, buffer spacing and per-block
// capacity, on top of the aggregate's effective availability.
type BookingService struct {
	bookings     bookingRepository
	availability *AvailabilityService
	settings     *SettingsService
	metrics      *MetricsService
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewBookingService instantiates BookingService.
func NewBookingService(bookings bookingRepository, availability *AvailabilityService, settings *SettingsService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *BookingService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookingService{
		bookings:     bookings,
		availability: availability,
		settings:     settings,
		metrics:      metrics,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// AdmissibleRange derives the earliest and latest bookable instants. Both
// boundaries are inclusive and compared as absolute instants, not wall-clock.
func AdmissibleRange(now time.Time, settings *models.ScheduleSettings) BookingWindow {
	return BookingWindow{
		Earliest: now.Add(time.Duration(settings.MinAdvanceBookingHours) * time.Hour),
		Latest:   now.AddDate(0, 0, settings.MaxAdvanceBookingDays),
	}
}

// Request validates a booking request through the full policy chain and, on
// success, stores the booking. Confirmation semantics: instant booking
// disabled forces a pending booking regardless of requireConfirmation.
func (s *BookingService) Request(ctx context.Context, menteeID string, req CreateBookingRequest) (*models.Booking, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid booking payload")
	}

	start, err := time.Parse(time.RFC3339, req.StartAt)
	if err != nil {
		return nil, appErrors.Validation([]string{"startAt must be an ISO-8601 instant"})
	}
	end, err := time.Parse(time.RFC3339, req.EndAt)
	if err != nil {
		return nil, appErrors.Validation([]string{"endAt must be an ISO-8601 instant"})
	}

	settings, err := s.settings.GetOrCreate(ctx, req.MentorID)
	if err != nil {
		return nil, err
	}
	if !settings.IsActive {
		s.metrics.RecordBookingRejection("mentor_unavailable")
		return nil, appErrors.ErrMentorUnavailable
	}

	window := AdmissibleRange(s.now(), settings)
	if start.Before(window.Earliest) || start.After(window.Latest) {
		s.metrics.RecordBookingRejection("booking_window")
		return nil, appErrors.ErrBookingWindow
	}

	if end.Sub(start) != time.Duration(settings.DefaultSessionDurationMinutes)*time.Minute {
		return nil, appErrors.Validation([]string{fmt.Sprintf("session duration must be exactly %d minutes", settings.DefaultSessionDurationMinutes)})
	}

	block, err := s.coveringBlock(ctx, req.MentorID, settings, start, end)
	if err != nil {
		return nil, err
	}

	buffer := time.Duration(settings.BufferMinutesBetweenSessions) * time.Minute
	existing, err := s.bookings.ListActiveBetween(ctx, req.MentorID, start.Add(-buffer), end.Add(buffer))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing bookings")
	}

	concurrent := 0
	for i := range existing {
		b := &existing[i]
		if b.Overlaps(start, end) {
			concurrent++
			continue
		}
		// Non-overlapping neighbours must respect the buffer on both sides.
		if !b.EndAt.After(start) && start.Before(b.EndAt.Add(buffer)) {
			s.metrics.RecordBookingRejection("buffer")
			return nil, appErrors.Clone(appErrors.ErrSlotNotAvailable, "slot does not respect the buffer after an adjacent booking")
		}
		if !b.StartAt.Before(end) && b.StartAt.Before(end.Add(buffer)) {
			s.metrics.RecordBookingRejection("buffer")
			return nil, appErrors.Clone(appErrors.ErrSlotNotAvailable, "slot does not respect the buffer before an adjacent booking")
		}
	}
	if concurrent >= block.Capacity() {
		s.metrics.RecordBookingRejection("capacity")
		return nil, appErrors.Clone(appErrors.ErrSlotNotAvailable, "slot capacity is exhausted")
	}

	status := models.BookingConfirmed
	if !settings.AllowInstantBooking || settings.RequireConfirmation {
		status = models.BookingPending
	}

	booking := &models.Booking{
		MentorID: req.MentorID,
		MenteeID: menteeID,
		StartAt:  start.UTC(),
		EndAt:    end.UTC(),
		Status:   status,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create booking")
	}
	return booking, nil
}

// coveringBlock finds the AVAILABLE block whose wall-clock span contains the
// requested slot in the mentor's timezone.
func (s *BookingService) coveringBlock(ctx context.Context, mentorID string, settings *models.ScheduleSettings, start, end time.Time) (*models.TimeBlock, error) {
	loc := settings.Location()
	localStart := start.In(loc)
	localEnd := end.In(loc)

	sameDay := localStart.Year() == localEnd.Year() && localStart.YearDay() == localEnd.YearDay()
	endMinutes := localEnd.Hour()*60 + localEnd.Minute()
	if !sameDay {
		// A slot ending exactly at the next midnight still belongs to the
		// start date; anything longer crosses days and is never covered.
		if endMinutes != 0 || !localEnd.Equal(localStart.Add(end.Sub(start))) {
			s.metrics.RecordBookingRejection("slot_not_available")
			return nil, appErrors.ErrSlotNotAvailable
		}
		endMinutes = 24 * 60
	}
	startMinutes := localStart.Hour()*60 + localStart.Minute()

	blocks, err := s.availability.EffectiveAvailability(ctx, mentorID, localStart)
	if err != nil {
		return nil, err
	}
	for i := range blocks {
		block := blocks[i]
		if block.Type != models.BlockAvailable {
			continue
		}
		bs, be, err := block.Bounds()
		if err != nil {
			continue
		}
		if bs <= startMinutes && endMinutes <= be {
			return &block, nil
		}
	}
	s.metrics.RecordBookingRejection("slot_not_available")
	return nil, appErrors.ErrSlotNotAvailable
}

// Confirm transitions a pending booking to confirmed.
func (s *BookingService) Confirm(ctx context.Context, id string) (*models.Booking, error) {
	return s.transition(ctx, id, models.BookingPending, models.BookingConfirmed)
}

// Cancel cancels a pending or confirmed booking. Idempotent on cancelled
// bookings.
func (s *BookingService) Cancel(ctx context.Context, id string) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if booking.Status == models.BookingCancelled {
		return booking, nil
	}
	if err := s.bookings.UpdateStatus(ctx, id, models.BookingCancelled); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to cancel booking")
	}
	booking.Status = models.BookingCancelled
	return booking, nil
}

func (s *BookingService) transition(ctx context.Context, id string, from, to models.BookingStatus) (*models.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "booking not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load booking")
	}
	if booking.Status != from {
		return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("booking is %s, expected %s", booking.Status, from))
	}
	if err := s.bookings.UpdateStatus(ctx, id, to); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update booking")
	}
	booking.Status = to
	return booking, nil
}

// ListSlots dices the effective availability for a date into bookable
// session slots, spaced by the buffer, clipped to the admissible window and
// reduced by already-consumed capacity.
func (s *BookingService) ListSlots(ctx context.Context, mentorID, dateRaw string) ([]models.AvailableSlot, error) {
	date, err := parseISODate(dateRaw)
	if err != nil {
		return nil, appErrors.Validation([]string{"date must be an ISO-8601 date"})
	}

	settings, err := s.settings.GetOrCreate(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if !settings.IsActive {
		return []models.AvailableSlot{}, nil
	}

	loc := settings.Location()
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	blocks, err := s.availability.EffectiveAvailability(ctx, mentorID, dayStart)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookings.ListActiveBetween(ctx, mentorID, dayStart, dayEnd)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load existing bookings")
	}

	window := AdmissibleRange(s.now(), settings)
	duration := time.Duration(settings.DefaultSessionDurationMinutes) * time.Minute
	step := duration + time.Duration(settings.BufferMinutesBetweenSessions)*time.Minute

	slots := make([]models.AvailableSlot, 0)
	for _, block := range blocks {
		if block.Type != models.BlockAvailable {
			continue
		}
		bs, be, err := block.Bounds()
		if err != nil {
			continue
		}
		blockStart := dayStart.Add(time.Duration(bs) * time.Minute)
		blockEnd := dayStart.Add(time.Duration(be) * time.Minute)

		for slotStart := blockStart; !slotStart.Add(duration).After(blockEnd); slotStart = slotStart.Add(step) {
			slotEnd := slotStart.Add(duration)
			if slotStart.Before(window.Earliest) || slotStart.After(window.Latest) {
				continue
			}
			used := 0
			for i := range existing {
				if existing[i].Overlaps(slotStart, slotEnd) {
					used++
				}
			}
			remaining := block.Capacity() - used
			if remaining <= 0 {
				continue
			}
			slots = append(slots, models.AvailableSlot{
				StartAt:           slotStart.UTC(),
				EndAt:             slotEnd.UTC(),
				RemainingCapacity: remaining,
			})
		}
	}
	return slots, nil
}
