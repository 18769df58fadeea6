package models

import "time"

// WeeklyPattern is the recurring baseline for one day of the week.
// DayOfWeek follows time.Weekday numbering: 0 = Sunday .. 6 = Saturday.
// Exactly one row exists per mentor per day; rows are upserted, never
// duplicated. Disabling a day preserves its blocks as a dormant template.
type WeeklyPattern struct {
	ID         string        `db:"id" json:"id,omitempty"`
	MentorID   string        `db:"mentor_id" json:"-"`
	DayOfWeek  int           `db:"day_of_week" json:"dayOfWeek"`
	IsEnabled  bool          `db:"is_enabled" json:"isEnabled"`
	TimeBlocks TimeBlockList `db:"time_blocks" json:"timeBlocks"`
	CreatedAt  time.Time     `db:"created_at" json:"-"`
	UpdatedAt  time.Time     `db:"updated_at" json:"-"`
}

// DefaultPattern is the value returned for a day that was never configured.
func DefaultPattern(mentorID string, dayOfWeek int) WeeklyPattern {
	return WeeklyPattern{
		MentorID:   mentorID,
		DayOfWeek:  dayOfWeek,
		IsEnabled:  false,
		TimeBlocks: TimeBlockList{},
	}
}

// ValidDayOfWeek reports whether d is in 0..6.
func ValidDayOfWeek(d int) bool {
	return d >= 0 && d <= 6
}
