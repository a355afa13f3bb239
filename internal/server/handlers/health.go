package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const healthPingTimeout = 2 * time.Second

// HandleHealth handles GET /health by pinging the database.
func HandleHealth(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()

		db := s.GetDB()
		if err := db.Ping(ctx); err != nil {
			s.GetLogger().Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"error":    err.Error(),
				"database": db.Kind(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"database":  db.Kind(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}
