package api

import (
	"leave_system/internal/middleware" // Caller identity
	"leave_system/internal/service"    // Leave workflow
	"net/http"                         // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// AllLeavesHandler returns every leave request with owner details, newest first
func AllLeavesHandler(leaves *service.LeaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		result, err := leaves.ListAll(c.Request.Context(), middleware.CurrentIdentity(c), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
