package service

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
)

type templateRepository interface {
	ListByMentor(ctx context.Context, mentorID string) ([]models.Template, error)
	FindByID(ctx context.Context, id string) (*models.Template, error)
	Create(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, mentorID, id string) error
}

// SaveTemplateRequest names a snapshot of the mentor's current schedule.
type SaveTemplateRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=500"`
}

// TemplateService snapshots a mentor's schedule into named presets and
// re-applies them through the aggregate's atomic save.
type TemplateService struct {
	templates    templateRepository
	availability *AvailabilityService
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewTemplateService instantiates TemplateService.
func NewTemplateService(templates templateRepository, availability *AvailabilityService, validate *validator.Validate, logger *zap.Logger) *TemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templates:    templates,
		availability: availability,
		validator:    validate,
		logger:       logger,
	}
}

// List returns the mentor's saved templates.
func (s *TemplateService) List(ctx context.Context, mentorID string) ([]models.Template, error) {
	templates, err := s.templates.ListByMentor(ctx, mentorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list templates")
	}
	if templates == nil {
		templates = []models.Template{}
	}
	return templates, nil
}

// Save captures the mentor's current settings and weekly patterns into a
// named template. A mentor without an initialised schedule has nothing to
// capture.
func (s *TemplateService) Save(ctx context.Context, mentorID string, req SaveTemplateRequest) (*models.Template, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid template payload")
	}

	current, err := s.availability.Get(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	if current.Schedule == nil {
		return nil, appErrors.Validation([]string{"no schedule exists to capture"})
	}

	configuration, err := json.Marshal(models.TemplateConfiguration{
		Settings: *current.Schedule,
		Patterns: current.WeeklyPatterns,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode template configuration")
	}

	template := &models.Template{
		MentorID:      mentorID,
		Name:          req.Name,
		Description:   req.Description,
		Configuration: configuration,
	}
	if err := s.templates.Create(ctx, template); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save template")
	}
	s.logger.Info("schedule template saved", zap.String("mentor_id", mentorID), zap.String("template_id", template.ID))
	return template, nil
}

// Apply replaces the mentor's current schedule with the template's captured
// configuration. The write goes through the same validation and transaction
// as a manual full save.
func (s *TemplateService) Apply(ctx context.Context, mentorID, templateID string) (*AvailabilityResponse, error) {
	template, err := s.templates.FindByID(ctx, templateID)
	if err != nil {
		if isNoRows(err) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load template")
	}
	if template.MentorID != mentorID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
	}

	var configuration models.TemplateConfiguration
	if err := json.Unmarshal(template.Configuration, &configuration); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode template configuration")
	}

	return s.availability.Save(ctx, mentorID, SaveAvailabilityRequest{
		Schedule:       configuration.Settings,
		WeeklyPatterns: configuration.Patterns,
	})
}

// Delete removes a saved template. Deleting an absent template is a no-op.
func (s *TemplateService) Delete(ctx context.Context, mentorID, templateID string) error {
	if err := s.templates.Delete(ctx, mentorID, templateID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete template")
	}
	return nil
}
