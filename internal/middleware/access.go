package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/response"
)

// RequireAccess gates the student area: approved students and the admin
// pass, pending accounts do not.
func RequireAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !models.CanAccess(claims.Status) {
			response.Error(c, appErrors.ErrPendingApproval)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin gates the admin surface. Approved students are not admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := currentClaims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if claims.Status != models.StatusAdmin {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok
}
