package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// TemplateConfiguration is the serialisable bundle a template captures.
type TemplateConfiguration struct {
	Settings ScheduleSettings `json:"settings"`
	Patterns []WeeklyPattern  `json:"patterns"`
}

// Template is a named schedule preset a mentor can save and re-apply.
type Template struct {
	ID            string         `db:"id" json:"id"`
	MentorID      string         `db:"mentor_id" json:"-"`
	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	Configuration types.JSONText `db:"configuration" json:"configuration"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
}
