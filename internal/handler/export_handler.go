package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/service"
	appErrors "github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/errors"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/pkg/response"
)

// ExportHandler serves schedule export endpoints.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Export godoc
// @Summary Export the weekly schedule as CSV or PDF
// @Tags Exports
// @Produce json
// @Param format query string true "csv or pdf"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /availability/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", "csv"))

	result, err := h.exports.Export(c.Request.Context(), mentorIDFromContext(c), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Download godoc
// @Summary Download an export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Router /availability/export/download [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Error(c, appErrors.Validation([]string{"token is required"}))
		return
	}

	file, name, err := h.exports.Download(token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}
