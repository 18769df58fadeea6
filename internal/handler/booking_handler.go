package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// BookingHandler serves slot listing and booking lifecycle endpoints.
type BookingHandler struct {
	bookings *service.BookingService
}

// NewBookingHandler constructs handler.
func NewBookingHandler(bookings *service.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// Slots godoc
// @Summary List bookable slots for a date
// @Tags Bookings
// @Produce json
// @Param date query string true "ISO-8601 date"
// @Param mentorId query string false "Mentor id, defaults to the authenticated user"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/slots [get]
func (h *BookingHandler) Slots(c *gin.Context) {
	mentorID := c.Query("mentorId")
	if mentorID == "" {
		mentorID = mentorIDFromContext(c)
	}

	slots, err := h.bookings.ListSlots(c.Request.Context(), mentorID, c.Query("date"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"slots": slots}, nil)
}

// Create godoc
// @Summary Request a booking
// @Tags Bookings
// @Accept json
// @Produce json
// @Param payload body service.CreateBookingRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req service.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	booking, err := h.bookings.Request(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}

// Confirm godoc
// @Summary Confirm a pending booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) Confirm(c *gin.Context) {
	booking, err := h.bookings.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}

// Cancel godoc
// @Summary Cancel a booking
// @Tags Bookings
// @Produce json
// @Param id path string true "Booking id"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	booking, err := h.bookings.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, booking, nil)
}
