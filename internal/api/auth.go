package api

import (
	"leave_system/internal/domain"  // Importing domain models
	"leave_system/internal/service" // Auth service
	"net/http"                      // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework
)

// Request struct for registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`                // Login email, unique
	Password  string `json:"password" binding:"required,min=6,max=72"`      // Plain password, hashed before storage
	FirstName string `json:"first_name" binding:"required,min=2,max=50"`    // First name
	LastName  string `json:"last_name" binding:"required,min=2,max=50"`     // Last name
	Role      string `json:"role" binding:"omitempty,oneof=admin employee"` // Defaults to employee
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"` // Login email
	Password string `json:"password" binding:"required"`    // Plain password
}

// RegisterHandler creates an account and returns it with a token
func RegisterHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
			return
		}
		res, err := auth.Register(c.Request.Context(), service.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Role:      domain.Role(req.Role),
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "User registered successfully",
			"token":   res.Token,
			"user":    res.User,
		})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
			return
		}
		res, err := auth.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   res.Token,
			"user":    res.User,
		})
	}
}
