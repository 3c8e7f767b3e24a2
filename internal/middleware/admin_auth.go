package middleware

import (
	"crypto/subtle"
	"net/http"

	apperrors "github.com/codeelevater/alumni-connect/pkg/errors"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminTokenHeader carries the admin API token
const AdminTokenHeader = "x-admin-api-token"

// AdminTokenMiddleware guards destructive and export routes. With an empty
// token the routes stay open, which is only meant for local development.
func AdminTokenMiddleware(validToken string) gin.HandlerFunc {
	if validToken == "" {
		logger.Warn("Admin API token is not configured, admin routes are unprotected")
	}

	return func(c *gin.Context) {
		if validToken == "" {
			c.Next()
			return
		}

		token := c.GetHeader(AdminTokenHeader)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(validToken)) != 1 {
			logger.Warn("Invalid admin API token",
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			_ = c.Error(apperrors.ErrUnauthorized) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or missing admin API token"})
			c.Abort()
			return
		}

		c.Next()
	}
}
