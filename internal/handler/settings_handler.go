package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// SettingsHandler serves the branding and instructor singletons and the
// slogan generator.
type SettingsHandler struct {
	settings *service.SettingsService
	slogan   *service.SloganService
}

// NewSettingsHandler creates a new handler.
func NewSettingsHandler(settings *service.SettingsService, slogan *service.SloganService) *SettingsHandler {
	return &SettingsHandler{settings: settings, slogan: slogan}
}

// GetBranding godoc
// @Summary Branding settings
// @Description Public branding for the landing page; defaults when unset
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/branding [get]
func (h *SettingsHandler) GetBranding(c *gin.Context) {
	branding, degraded, err := h.settings.GetBranding(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, branding, degradedMeta(degraded))
}

// GetInstructor godoc
// @Summary Instructor profile
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings/instructor [get]
func (h *SettingsHandler) GetInstructor(c *gin.Context) {
	instructor, degraded, err := h.settings.GetInstructor(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, instructor, degradedMeta(degraded))
}

// SaveBranding godoc
// @Summary Overwrite branding settings
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.BrandingSettings true "Branding payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/settings/branding [put]
func (h *SettingsHandler) SaveBranding(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var branding models.BrandingSettings
	if err := c.ShouldBindJSON(&branding); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid branding payload"))
		return
	}

	if err := h.settings.SaveBranding(c.Request.Context(), claims.UserID, branding); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, branding, nil)
}

// SaveInstructor godoc
// @Summary Overwrite the instructor profile
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.InstructorInfo true "Instructor payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/settings/instructor [put]
func (h *SettingsHandler) SaveInstructor(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var instructor models.InstructorInfo
	if err := c.ShouldBindJSON(&instructor); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid instructor payload"))
		return
	}

	if err := h.settings.SaveInstructor(c.Request.Context(), claims.UserID, instructor); err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, instructor, nil)
}

// GenerateSlogan godoc
// @Summary Generate a marketing slogan
// @Description Calls the generative-text service; falls back to a fixed line
// @Tags Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/settings/slogan [post]
func (h *SettingsHandler) GenerateSlogan(c *gin.Context) {
	var req struct {
		BrandName string `json:"brand_name"`
	}
	// Body is optional; an empty brand name falls back to current branding.
	_ = c.ShouldBindJSON(&req)

	brandName := req.BrandName
	if brandName == "" {
		branding, _, err := h.settings.GetBranding(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		brandName = branding.BrandName
	}

	slogan, generated := h.slogan.Generate(c.Request.Context(), brandName)
	response.JSON(c, http.StatusOK, gin.H{"slogan": slogan}, map[string]interface{}{"generated": generated})
}
