package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/middleware"
	"github.com/elitehub/portal-api/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func degradedMeta(degraded bool) map[string]interface{} {
	if !degraded {
		return nil
	}
	return map[string]interface{}{"degraded": true}
}
