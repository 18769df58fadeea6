package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// PatternHandler serves weekly pattern endpoints.
type PatternHandler struct {
	patterns *service.PatternService
}

// NewPatternHandler constructs handler.
func NewPatternHandler(patterns *service.PatternService) *PatternHandler {
	return &PatternHandler{patterns: patterns}
}

func dayParam(c *gin.Context) (int, bool) {
	day, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		response.Error(c, appErrors.Validation([]string{"day must be an integer between 0 and 6"}))
		return 0, false
	}
	return day, true
}

// Get godoc
// @Summary Get one day's weekly pattern
// @Tags Patterns
// @Produce json
// @Param day path int true "Day of week, 0=Sunday"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day} [get]
func (h *PatternHandler) Get(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	pattern, err := h.patterns.GetPattern(c.Request.Context(), mentorIDFromContext(c), day)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

type setEnabledRequest struct {
	IsEnabled *bool `json:"isEnabled" binding:"required"`
}

// SetEnabled godoc
// @Summary Enable or disable a day
// @Tags Patterns
// @Accept json
// @Produce json
// @Param day path int true "Day of week"
// @Param payload body setEnabledRequest true "Enable flag"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day}/enabled [patch]
func (h *PatternHandler) SetEnabled(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req setEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	pattern, err := h.patterns.SetEnabled(c.Request.Context(), mentorIDFromContext(c), day, *req.IsEnabled)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// AddBlock godoc
// @Summary Add a time block to a day
// @Tags Patterns
// @Accept json
// @Produce json
// @Param day path int true "Day of week"
// @Param payload body service.UpsertBlockRequest true "Block payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day}/blocks [post]
func (h *PatternHandler) AddBlock(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req service.UpsertBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.EditIndex = nil

	pattern, err := h.patterns.UpsertBlock(c.Request.Context(), mentorIDFromContext(c), day, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// EditBlock godoc
// @Summary Replace the block at an index
// @Tags Patterns
// @Accept json
// @Produce json
// @Param day path int true "Day of week"
// @Param index path int true "Block index"
// @Param payload body service.UpsertBlockRequest true "Block payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day}/blocks/{index} [put]
func (h *PatternHandler) EditBlock(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Validation([]string{"index must be an integer"}))
		return
	}
	var req service.UpsertBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.EditIndex = &index

	pattern, err := h.patterns.UpsertBlock(c.Request.Context(), mentorIDFromContext(c), day, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// RemoveBlock godoc
// @Summary Remove the block at an index
// @Tags Patterns
// @Produce json
// @Param day path int true "Day of week"
// @Param index path int true "Block index"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day}/blocks/{index} [delete]
func (h *PatternHandler) RemoveBlock(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.Error(c, appErrors.Validation([]string{"index must be an integer"}))
		return
	}

	pattern, err := h.patterns.RemoveBlock(c.Request.Context(), mentorIDFromContext(c), day, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pattern, nil)
}

// Bulk godoc
// @Summary Apply one block list to several days
// @Tags Patterns
// @Accept json
// @Produce json
// @Param payload body service.BulkPatternRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/bulk [post]
func (h *PatternHandler) Bulk(c *gin.Context) {
	var req service.BulkPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	patterns, err := h.patterns.ApplyBulkPattern(c.Request.Context(), mentorIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patterns, nil)
}

// Copy godoc
// @Summary Copy a day's pattern onto other days
// @Tags Patterns
// @Accept json
// @Produce json
// @Param day path int true "Source day of week"
// @Param payload body service.CopyDayRequest true "Target days"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/patterns/{day}/copy [post]
func (h *PatternHandler) Copy(c *gin.Context) {
	day, ok := dayParam(c)
	if !ok {
		return
	}
	var req service.CopyDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	patterns, err := h.patterns.CopyDay(c.Request.Context(), mentorIDFromContext(c), day, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, patterns, nil)
}
