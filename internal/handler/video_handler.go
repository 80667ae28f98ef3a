package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// VideoHandler serves the review video catalog.
type VideoHandler struct {
	service *service.VideoService
}

// NewVideoHandler creates a new handler.
func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{service: svc}
}

// List godoc
// @Summary List review videos
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /videos [get]
func (h *VideoHandler) List(c *gin.Context) {
	videos, degraded, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, videos, degradedMeta(degraded))
}

// Create godoc
// @Summary Register a review video
// @Description Accepts a raw YouTube URL and stores the extracted id
// @Tags Videos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateVideoRequest true "Video payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/videos [post]
func (h *VideoHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid video payload"))
		return
	}

	video, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, video)
}

// Delete godoc
// @Summary Delete a review video
// @Tags Videos
// @Produce json
// @Security BearerAuth
// @Param id path string true "Video id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/videos/{id} [delete]
func (h *VideoHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.service.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
