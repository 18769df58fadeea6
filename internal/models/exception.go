package models

import "time"

// Exception overrides the weekly pattern for a closed, inclusive date range.
// Edits are delete+recreate; there is no update-in-place.
type Exception struct {
	ID         string        `db:"id" json:"id"`
	MentorID   string        `db:"mentor_id" json:"-"`
	StartDate  time.Time     `db:"start_date" json:"startDate"`
	EndDate    time.Time     `db:"end_date" json:"endDate"`
	Type       BlockType     `db:"type" json:"type"`
	Reason     *string       `db:"reason" json:"reason,omitempty"`
	IsFullDay  bool          `db:"is_full_day" json:"isFullDay"`
	TimeBlocks TimeBlockList `db:"time_blocks" json:"timeBlocks,omitempty"`
	CreatedAt  time.Time     `db:"created_at" json:"createdAt"`
}

// ExceptionVariant makes the full-day/partial-day branch exhaustive instead
// of a boolean flag plus optional field.
type ExceptionVariant interface {
	isExceptionVariant()
}

// FullDayException covers whole dates uniformly with one block type.
type FullDayException struct {
	Type   BlockType
	Reason *string
}

// PartialDayException applies explicit per-day block overrides.
type PartialDayException struct {
	Blocks TimeBlockList
	Reason *string
}

func (FullDayException) isExceptionVariant()    {}
func (PartialDayException) isExceptionVariant() {}

// Variant returns the tagged form of the stored exception.
func (e *Exception) Variant() ExceptionVariant {
	if e.IsFullDay {
		return FullDayException{Type: e.Type, Reason: e.Reason}
	}
	return PartialDayException{Blocks: e.TimeBlocks, Reason: e.Reason}
}

// Covers reports whether date falls inside [StartDate, EndDate], comparing
// calendar dates only.
func (e *Exception) Covers(date time.Time) bool {
	d := truncateToDate(date)
	return !d.Before(truncateToDate(e.StartDate)) && !d.After(truncateToDate(e.EndDate))
}

// EffectiveBlocks returns the blocks this exception yields for any covered
// date. A full-day exception is replicated as a single all-day block.
func (e *Exception) EffectiveBlocks() TimeBlockList {
	switch v := e.Variant().(type) {
	case FullDayException:
		return TimeBlockList{{StartTime: "00:00", EndTime: "24:00", Type: v.Type}}
	case PartialDayException:
		return v.Blocks.Clone()
	}
	return TimeBlockList{}
}

// OverlapsRange reports whether the exception's date range intersects
// [start, end], inclusive on both sides.
func (e *Exception) OverlapsRange(start, end time.Time) bool {
	s := truncateToDate(start)
	x := truncateToDate(end)
	return !truncateToDate(e.StartDate).After(x) && !truncateToDate(e.EndDate).Before(s)
}

func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
