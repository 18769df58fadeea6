package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// ExceptionHandler serves date-range exception endpoints.
type ExceptionHandler struct {
	exceptions *service.ExceptionService
}

// NewExceptionHandler constructs handler.
func NewExceptionHandler(exceptions *service.ExceptionService) *ExceptionHandler {
	return &ExceptionHandler{exceptions: exceptions}
}

// List godoc
// @Summary List the mentor's exceptions
// @Tags Exceptions
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/exceptions [get]
func (h *ExceptionHandler) List(c *gin.Context) {
	exceptions, err := h.exceptions.List(c.Request.Context(), mentorIDFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"exceptions": exceptions}, nil)
}

// Create godoc
// @Summary Create an exception
// @Tags Exceptions
// @Accept json
// @Produce json
// @Param payload body service.CreateExceptionRequest true "Exception payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/exceptions [post]
func (h *ExceptionHandler) Create(c *gin.Context) {
	var req service.CreateExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	exception, err := h.exceptions.Create(c.Request.Context(), mentorIDFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exception)
}

type deleteExceptionsRequest struct {
	ExceptionIDs []string `json:"exceptionIds" binding:"required"`
}

// Delete godoc
// @Summary Delete exceptions by id
// @Tags Exceptions
// @Accept json
// @Produce json
// @Param payload body deleteExceptionsRequest true "Exception ids"
// @Success 204
// @Security BearerAuth
// @Router /availability/exceptions [delete]
func (h *ExceptionHandler) Delete(c *gin.Context) {
	var req deleteExceptionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	if err := h.exceptions.Delete(c.Request.Context(), mentorIDFromContext(c), req.ExceptionIDs); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type quickAddRequest struct {
	Preset    string `json:"preset" binding:"required"`
	StartDate string `json:"startDate" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
}

// QuickAdd godoc
// @Summary Create a full-day blocked exception from a preset
// @Tags Exceptions
// @Accept json
// @Produce json
// @Param payload body quickAddRequest true "Preset payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/exceptions/quick-add [post]
func (h *ExceptionHandler) QuickAdd(c *gin.Context) {
	var req quickAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	exception, err := h.exceptions.QuickAdd(c.Request.Context(), mentorIDFromContext(c), req.Preset, req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, exception)
}
