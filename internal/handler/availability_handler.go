package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// AvailabilityHandler serves the schedule aggregate endpoints.
type AvailabilityHandler struct {
	availability *service.AvailabilityService
	settings     *service.SettingsService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(availability *service.AvailabilityService, settings *service.SettingsService) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, settings: settings}
}

// Get godoc
// @Summary Get the mentor's full availability
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability [get]
func (h *AvailabilityHandler) Get(c *gin.Context) {
	resp, err := h.availability.Get(c.Request.Context(), mentorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Save godoc
// @Summary Replace the mentor's full availability
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.SaveAvailabilityRequest true "Full schedule payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability [put]
func (h *AvailabilityHandler) Save(c *gin.Context) {
	var req service.SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	resp, err := h.availability.Save(c.Request.Context(), mentorIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// UpdateSettings godoc
// @Summary Partially update schedule settings
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.UpdateSettingsRequest true "Settings patch"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/settings [patch]
func (h *AvailabilityHandler) UpdateSettings(c *gin.Context) {
	var req service.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	settings, err := h.settings.Update(c.Request.Context(), mentorIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, settings, nil)
}

// Effective godoc
// @Summary Effective blocks for one calendar date
// @Tags Availability
// @Produce json
// @Param date query string true "ISO-8601 date"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/effective [get]
func (h *AvailabilityHandler) Effective(c *gin.Context) {
	raw := c.Query("date")
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.Error(c, appErrors.Validation([]string{"date must be an ISO-8601 date"}))
		return
	}

	blocks, err := h.availability.EffectiveAvailability(c.Request.Context(), mentorIDFromContext(c), date)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"date": raw, "timeBlocks": blocks}, nil)
}
