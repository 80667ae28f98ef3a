package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// ContentHandler serves the course content catalog.
type ContentHandler struct {
	service *service.ContentService
}

// NewContentHandler creates a new handler.
func NewContentHandler(svc *service.ContentService) *ContentHandler {
	return &ContentHandler{service: svc}
}

// List godoc
// @Summary List course contents
// @Tags Contents
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /contents [get]
func (h *ContentHandler) List(c *gin.Context) {
	contents, degraded, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, contents, degradedMeta(degraded))
}

// Create godoc
// @Summary Create a content card
// @Tags Contents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreateContentRequest true "Content payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/contents [post]
func (h *ContentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid content payload"))
		return
	}

	content, err := h.service.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, content)
}

// Delete godoc
// @Summary Delete a content card
// @Tags Contents
// @Produce json
// @Security BearerAuth
// @Param id path string true "Content id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/contents/{id} [delete]
func (h *ContentHandler) Delete(c *gin.Context) {
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
