package api

import (
	"leave_system/internal/domain"     // Importing domain models
	"leave_system/internal/middleware" // Auth, logging and rate limiting
	"leave_system/internal/service"    // Services behind the handlers
	"net/http"                         // HTTP status codes
	"time"                             // CORS cache age

	"github.com/gin-contrib/cors"                             // CORS middleware
	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/sirupsen/logrus"                              // Logging library
	"gorm.io/gorm"                                            // GORM ORM library
)

// Deps are the collaborators the HTTP layer is built from
type Deps struct {
	DB          *gorm.DB                 // Used by the health check
	Auth        *service.AuthService     // Registration and login
	Leaves      *service.LeaveService    // Leave workflow
	Tokens      middleware.TokenVerifier // Bearer token verification
	Users       middleware.UserLookup    // Resolves token subjects
	Uploads     Uploader                 // Attachment storage
	CORSOrigins []string                 // Allowed origins, empty allows all
	RateLimit   float64                  // Auth requests per second per client, 0 disables
	RateBurst   int                      // Auth burst size per client
	Log         logrus.FieldLogger       // Request log
}

// NewRouter wires every route of the service
func NewRouter(d Deps) (*gin.Engine, error) {
	useJSONFieldNames()

	r := gin.New() // Gin router instance
	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Log), middleware.Metrics(), cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/health", HealthHandler(d.DB))            // Liveness and database check
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus scrape endpoint
	r.Static("/"+UploadRoute, d.Uploads.Dir)         // Stored attachments

	// Auth routes (public, rate limited)
	authGroup := r.Group("/api/auth")
	if d.RateLimit > 0 {
		authGroup.Use(middleware.NewRateLimiter(d.RateLimit, d.RateBurst).Middleware())
	}
	authGroup.POST("/register", RegisterHandler(d.Auth)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Auth))       // Login endpoint

	// Leave routes (protected by JWT)
	leaveGroup := r.Group("/api/leaves")
	leaveGroup.Use(middleware.Authenticate(d.Tokens, d.Users))
	leaveGroup.POST("", SubmitLeaveHandler(d.Leaves, d.Uploads)) // Submit a leave request
	leaveGroup.GET("/my", MyLeavesHandler(d.Leaves))             // Caller's own requests

	// Admin only
	admin := middleware.RequireRoles(domain.RoleAdmin)
	leaveGroup.GET("", admin, AllLeavesHandler(d.Leaves))       // Every request with owner details
	leaveGroup.PUT("/:id", admin, DecideLeaveHandler(d.Leaves)) // Approve or reject

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
