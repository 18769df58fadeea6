package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

// TemplateRepository persists named schedule presets. It is the server-side
// implementation of the template storage port; tests use in-memory stubs.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository constructs the repository.
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

// ListByMentor returns a mentor's saved templates, newest first.
func (r *TemplateRepository) ListByMentor(ctx context.Context, mentorID string) ([]models.Template, error) {
	const query = `SELECT id, mentor_id, name, description, configuration, created_at FROM schedule_templates WHERE mentor_id = $1 ORDER BY created_at DESC`
	var templates []models.Template
	if err := r.db.SelectContext(ctx, &templates, query, mentorID); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	return templates, nil
}

// FindByID loads a template.
func (r *TemplateRepository) FindByID(ctx context.Context, id string) (*models.Template, error) {
	const query = `SELECT id, mentor_id, name, description, configuration, created_at FROM schedule_templates WHERE id = $1`
	var template models.Template
	if err := r.db.GetContext(ctx, &template, query, id); err != nil {
		return nil, err
	}
	return &template, nil
}

// Create stores a new template.
func (r *TemplateRepository) Create(ctx context.Context, template *models.Template) error {
	if template.ID == "" {
		template.ID = uuid.NewString()
	}
	if template.CreatedAt.IsZero() {
		template.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO schedule_templates (id, mentor_id, name, description, configuration, created_at)
		VALUES (:id, :mentor_id, :name, :description, :configuration, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, template); err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

// Delete removes a template; deleting an absent id is a no-op.
func (r *TemplateRepository) Delete(ctx context.Context, mentorID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM schedule_templates WHERE mentor_id = $1 AND id = $2`, mentorID, id); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}
