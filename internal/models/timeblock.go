package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// BlockType tags a time block's semantic meaning.
type BlockType string

const (
	BlockAvailable BlockType = "AVAILABLE"
	BlockBreak     BlockType = "BREAK"
	BlockBuffer    BlockType = "BUFFER"
	BlockBlocked   BlockType = "BLOCKED"
)

// Valid reports whether the block type is one of the known values.
func (t BlockType) Valid() bool {
	switch t {
	case BlockAvailable, BlockBreak, BlockBuffer, BlockBlocked:
		return true
	}
	return false
}

// TimeBlock is a contiguous same-day interval at minute resolution. Times are
// "HH:MM" 24-hour wall-clock strings interpreted in the owning schedule's
// timezone. "24:00" is accepted as an exclusive end-of-day bound.
type TimeBlock struct {
	StartTime             string    `json:"startTime"`
	EndTime               string    `json:"endTime"`
	Type                  BlockType `json:"type"`
	MaxConcurrentBookings *int      `json:"maxConcurrentBookings,omitempty"`
}

// ParseMinutes converts an "HH:MM" string into minutes since midnight.
func ParseMinutes(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid time format: %q", s)
	}
	if hour == 24 && minute == 0 {
		return 24 * 60, nil
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time: %q", s)
	}
	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight as "HH:MM".
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Bounds returns the block's start and end as minutes since midnight.
func (b TimeBlock) Bounds() (start, end int, err error) {
	start, err = ParseMinutes(b.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseMinutes(b.EndTime)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Overlaps reports whether two blocks share any minute. Blocks with
// unparseable times never overlap; the validator rejects them separately.
func (b TimeBlock) Overlaps(other TimeBlock) bool {
	bs, be, err := b.Bounds()
	if err != nil {
		return false
	}
	os, oe, err := other.Bounds()
	if err != nil {
		return false
	}
	return bs < oe && be > os
}

// Capacity returns the concurrent booking capacity, defaulting to 1.
// Only meaningful for AVAILABLE blocks.
func (b TimeBlock) Capacity() int {
	if b.MaxConcurrentBookings == nil {
		return 1
	}
	return *b.MaxConcurrentBookings
}

// Clone returns a deep copy.
func (b TimeBlock) Clone() TimeBlock {
	cp := b
	if b.MaxConcurrentBookings != nil {
		v := *b.MaxConcurrentBookings
		cp.MaxConcurrentBookings = &v
	}
	return cp
}

// TimeBlockList stores an ordered block list as a JSONB column.
type TimeBlockList []TimeBlock

// Clone returns a deep copy of the list.
func (l TimeBlockList) Clone() TimeBlockList {
	if l == nil {
		return nil
	}
	out := make(TimeBlockList, len(l))
	for i, b := range l {
		out[i] = b.Clone()
	}
	return out
}

// Value implements driver.Valuer.
func (l TimeBlockList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *TimeBlockList) Scan(src interface{}) error {
	if src == nil {
		*l = TimeBlockList{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported time block list source: %T", src)
	}
	if len(raw) == 0 {
		*l = TimeBlockList{}
		return nil
	}
	return json.Unmarshal(raw, l)
}
