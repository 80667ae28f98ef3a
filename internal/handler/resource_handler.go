package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// ResourceHandler serves downloadable study materials.
type ResourceHandler struct {
	service *service.ResourceService
}

// NewResourceHandler creates a new handler.
func NewResourceHandler(svc *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// List godoc
// @Summary List resources
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	resources, degraded, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resources, degradedMeta(degraded))
}

// Upload godoc
// @Summary Upload a resource file
// @Tags Resources
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File body"
// @Param name formData string false "Display name"
// @Param description formData string false "Description"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/resources [post]
func (h *ResourceHandler) Upload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read uploaded file"))
		return
	}
	defer file.Close() //nolint:errcheck

	resource, err := h.service.Upload(c.Request.Context(), claims.UserID, service.UploadRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Filename:    fileHeader.Filename,
		Size:        fileHeader.Size,
		Body:        file,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, resource)
}

// Delete godoc
// @Summary Delete a resource
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
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

// IssueDownload godoc
// @Summary Issue a signed download link
// @Description Grants a short-lived token URL and records the download
// @Tags Resources
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id}/download [get]
func (h *ResourceHandler) IssueDownload(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	grant, err := h.service.IssueDownloadURL(c.Request.Context(), claims.Name, claims.Status, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, grant, nil)
}

// RedeemDownload godoc
// @Summary Redeem a signed download token
// @Description Streams the file; the token itself is the authorization
// @Tags Resources
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /downloads/{token} [get]
func (h *ResourceHandler) RedeemDownload(c *gin.Context) {
	resource, file, err := h.service.RedeemDownload(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	info, err := file.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read resource file"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+resource.Name+`"`)
	http.ServeContent(c.Writer, c.Request, resource.Name, info.ModTime(), file)
}
