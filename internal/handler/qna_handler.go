package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// QnAHandler serves question threads.
type QnAHandler struct {
	service *service.QnAService
}

// NewQnAHandler creates a new handler.
func NewQnAHandler(svc *service.QnAService) *QnAHandler {
	return &QnAHandler{service: svc}
}

// List godoc
// @Summary List question threads
// @Tags QnA
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /qna [get]
func (h *QnAHandler) List(c *gin.Context) {
	posts, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, nil)
}

// Create godoc
// @Summary Open a question thread
// @Tags QnA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body models.CreatePostRequest true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /qna [post]
func (h *QnAHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid post payload"))
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), claims.Name, claims.Status, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, post)
}

// Reply godoc
// @Summary Append an admin answer
// @Tags QnA
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post id"
// @Param payload body models.CreateReplyRequest true "Reply payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/qna/{id}/replies [post]
func (h *QnAHandler) Reply(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req models.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid reply payload"))
		return
	}

	reply, err := h.service.AppendReply(c.Request.Context(), claims.Name, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, reply)
}
