package models

import "time"

// ScheduleSettings holds a mentor's booking policy. One row per mentor,
// mutated via partial updates. IsActive=false makes the mentor wholly
// unbookable regardless of patterns or exceptions.
type ScheduleSettings struct {
	ID                            string    `db:"id" json:"id"`
	MentorID                      string    `db:"mentor_id" json:"mentorId"`
	Timezone                      string    `db:"timezone" json:"timezone"`
	DefaultSessionDurationMinutes int       `db:"default_session_duration_minutes" json:"defaultSessionDurationMinutes"`
	BufferMinutesBetweenSessions  int       `db:"buffer_minutes_between_sessions" json:"bufferMinutesBetweenSessions"`
	MinAdvanceBookingHours        int       `db:"min_advance_booking_hours" json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays         int       `db:"max_advance_booking_days" json:"maxAdvanceBookingDays"`
	DefaultStartTime              string    `db:"default_start_time" json:"defaultStartTime"`
	DefaultEndTime                string    `db:"default_end_time" json:"defaultEndTime"`
	IsActive                      bool      `db:"is_active" json:"isActive"`
	AllowInstantBooking           bool      `db:"allow_instant_booking" json:"allowInstantBooking"`
	RequireConfirmation           bool      `db:"require_confirmation" json:"requireConfirmation"`
	CreatedAt                     time.Time `db:"created_at" json:"-"`
	UpdatedAt                     time.Time `db:"updated_at" json:"-"`
}

// Location resolves the schedule timezone, falling back to UTC when the
// stored identifier cannot be loaded.
func (s *ScheduleSettings) Location() *time.Location {
	if s == nil || s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultScheduleSettings returns the lazily-created settings for a mentor
// seen for the first time.
func DefaultScheduleSettings(mentorID, timezone string) ScheduleSettings {
	if timezone == "" {
		timezone = "UTC"
	}
	return ScheduleSettings{
		MentorID:                      mentorID,
		Timezone:                      timezone,
		DefaultSessionDurationMinutes: 60,
		BufferMinutesBetweenSessions:  15,
		MinAdvanceBookingHours:        24,
		MaxAdvanceBookingDays:         90,
		DefaultStartTime:              "09:00",
		DefaultEndTime:                "17:00",
		IsActive:                      true,
		AllowInstantBooking:           true,
		RequireConfirmation:           false,
	}
}

// DefaultWeeklyPatterns is the lazily-created baseline: Mon-Fri working hours
// with a lunch break, weekends disabled.
func DefaultWeeklyPatterns(mentorID string) []WeeklyPattern {
	weekday := TimeBlockList{
		{StartTime: "09:00", EndTime: "12:00", Type: BlockAvailable},
		{StartTime: "12:00", EndTime: "13:00", Type: BlockBreak},
		{StartTime: "13:00", EndTime: "17:00", Type: BlockAvailable},
	}

	patterns := make([]WeeklyPattern, 0, 7)
	for day := 0; day <= 6; day++ {
		p := WeeklyPattern{
			MentorID:   mentorID,
			DayOfWeek:  day,
			IsEnabled:  day >= 1 && day <= 5,
			TimeBlocks: TimeBlockList{},
		}
		if p.IsEnabled {
			p.TimeBlocks = weekday.Clone()
		}
		patterns = append(patterns, p)
	}
	return patterns
}
