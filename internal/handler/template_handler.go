package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// TemplateHandler serves schedule template endpoints.
type TemplateHandler struct {
	templates *service.TemplateService
}

// NewTemplateHandler constructs handler.
func NewTemplateHandler(templates *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// List godoc
// @Summary List saved schedule templates
// @Tags Templates
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List(c.Request.Context(), mentorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"templates": templates}, nil)
}

// Save godoc
// @Summary Save the current schedule as a template
// @Tags Templates
// @Accept json
// @Produce json
// @Param payload body service.SaveTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/templates [post]
func (h *TemplateHandler) Save(c *gin.Context) {
	var req service.SaveTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	template, err := h.templates.Save(c.Request.Context(), mentorIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, template)
}

// Apply godoc
// @Summary Apply a saved template to the live schedule
// @Tags Templates
// @Produce json
// @Param id path string true "Template id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/templates/{id}/apply [post]
func (h *TemplateHandler) Apply(c *gin.Context) {
	resp, err := h.templates.Apply(c.Request.Context(), mentorIDFromContext(c), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Delete godoc
// @Summary Delete a saved template
// @Tags Templates
// @Param id path string true "Template id"
// @Success 204
// @Security BearerAuth
// @Router /availability/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.templates.Delete(c.Request.Context(), mentorIDFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
