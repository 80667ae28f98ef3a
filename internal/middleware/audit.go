package middleware

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/repository"
)

// Audit creates a middleware that records audit logs after successful requests.
func Audit(repo *repository.UserRepository, action, resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		actor := "anonymous"
		if claims, ok := currentClaims(c); ok {
			actor = claims.UserID
		}

		var resourceID *string
		if id := c.Param("id"); id != "" {
			resourceID = &id
		}

		body, _ := json.Marshal(map[string]interface{}{
			"path":    c.FullPath(),
			"method":  c.Request.Method,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).Milliseconds(),
			"ip":      c.ClientIP(),
		})

		_ = repo.CreateAuditLog(c.Request.Context(), &models.AuditLog{
			Actor:      actor,
			Action:     action,
			Resource:   resource,
			ResourceID: resourceID,
			Detail:     body,
		})
	}
}
