package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/middleware"
	"github.com/abdur-rahman-shawl/young-minds-availability-api/internal/models"
)

func newTestContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "mentor-1", Role: models.RoleMentor})
	return c, w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

func TestAvailabilityHandlerSaveInvalidBody(t *testing.T) {
	h := NewAvailabilityHandler(nil, nil)
	c, w := newTestContext(t, http.MethodPut, "/availability", []byte(`not json`))

	h.Save(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	envelope := decodeEnvelope(t, w)
	require.NotNil(t, envelope["error"])
}

func TestAvailabilityHandlerEffectiveBadDate(t *testing.T) {
	h := NewAvailabilityHandler(nil, nil)
	c, w := newTestContext(t, http.MethodGet, "/availability/effective?date=next-week", nil)

	h.Effective(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityHandlerUpdateSettingsInvalidBody(t *testing.T) {
	h := NewAvailabilityHandler(nil, nil)
	c, w := newTestContext(t, http.MethodPatch, "/availability/settings", []byte(`{"timezone": 42`))

	h.UpdateSettings(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatternHandlerBadDayParam(t *testing.T) {
	h := NewPatternHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/availability/patterns/tuesday", nil)
	c.Params = gin.Params{{Key: "day", Value: "tuesday"}}

	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatternHandlerSetEnabledRequiresFlag(t *testing.T) {
	h := NewPatternHandler(nil)
	c, w := newTestContext(t, http.MethodPatch, "/availability/patterns/1/enabled", []byte(`{}`))
	c.Params = gin.Params{{Key: "day", Value: "1"}}

	h.SetEnabled(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatternHandlerEditBlockBadIndex(t *testing.T) {
	h := NewPatternHandler(nil)
	c, w := newTestContext(t, http.MethodPut, "/availability/patterns/1/blocks/first", []byte(`{}`))
	c.Params = gin.Params{{Key: "day", Value: "1"}, {Key: "index", Value: "first"}}

	h.EditBlock(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExceptionHandlerCreateInvalidBody(t *testing.T) {
	h := NewExceptionHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/availability/exceptions", []byte(`[]`))

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExceptionHandlerDeleteRequiresIDs(t *testing.T) {
	h := NewExceptionHandler(nil)
	c, w := newTestContext(t, http.MethodDelete, "/availability/exceptions", []byte(`{}`))

	h.Delete(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerCreateInvalidBody(t *testing.T) {
	h := NewBookingHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/bookings", []byte(`{`))

	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingHandlerCreateWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{
		"mentorId": "mentor-1",
		"startAt":  "2026-09-08T10:00:00Z",
		"endAt":    "2026-09-08T11:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	h.Create(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExportHandlerDownloadRequiresToken(t *testing.T) {
	h := NewExportHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/availability/export/download", nil)

	h.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTemplateHandlerSaveInvalidBody(t *testing.T) {
	h := NewTemplateHandler(nil)
	c, w := newTestContext(t, http.MethodPost, "/availability/templates", []byte(`"name"`))

	h.Save(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsHandlerHealth(t *testing.T) {
	h := NewMetricsHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/health", nil)

	h.Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")
}

func TestMetricsHandlerPrometheusWithoutService(t *testing.T) {
	h := NewMetricsHandler(nil)
	c, w := newTestContext(t, http.MethodGet, "/metrics", nil)

	h.Prometheus(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
