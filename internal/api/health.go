package api

import (
	"context"                          // Ping timeout
	"leave_system/internal/middleware" // Request logger
	"net/http"                         // HTTP status codes
	"time"                             // Timestamps

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// HealthHandler reports whether the service and its database are reachable
func HealthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		now := time.Now().UTC().Format(time.RFC3339)
		if err != nil {
			middleware.Logger(c).WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "ERROR", "timestamp": now, "error": "Database unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": now})
	}
}
