package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// AnalyticsHandler records activity and serves the admin snapshot.
type AnalyticsHandler struct {
	service *service.AnalyticsService
}

// NewAnalyticsHandler creates a new handler.
func NewAnalyticsHandler(svc *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: svc}
}

// Track godoc
// @Summary Record a user action
// @Description Anonymous or pending identities are acknowledged but not recorded
// @Tags Analytics
// @Accept json
// @Produce json
// @Param payload body models.TrackRequest true "Track payload"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/track [post]
func (h *AnalyticsHandler) Track(c *gin.Context) {
	var req models.TrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid track payload"))
		return
	}

	userName := ""
	status := models.UserStatus("")
	if claims := claimsFromContext(c); claims != nil {
		userName = claims.Name
		status = claims.Status
	}

	if err := h.service.Track(c.Request.Context(), userName, status, req); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusAccepted, gin.H{"recorded": true}, nil)
}

// Snapshot godoc
// @Summary Analytics dashboard data
// @Description Counters, the full activity log and system metrics
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/analytics [get]
func (h *AnalyticsHandler) Snapshot(c *gin.Context) {
	data, err := h.service.Snapshot(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data, nil)
}

// Export godoc
// @Summary Download the analytics report
// @Description Renders counters and the activity log as CSV or PDF
// @Tags Analytics
// @Produce octet-stream
// @Security BearerAuth
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} byte
// @Failure 400 {object} response.Envelope
// @Router /admin/analytics/export [get]
func (h *AnalyticsHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	rendered, filename, err := h.service.Export(c.Request.Context(), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	contentType := "text/csv"
	if format == "pdf" {
		contentType = "application/pdf"
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, rendered)
}
