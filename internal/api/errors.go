package api

import (
	"errors"                           // Error matching
	"fmt"                              // Message formatting
	"leave_system/internal/domain"     // Importing domain models
	"leave_system/internal/middleware" // Request logger
	"net/http"                         // HTTP status codes
	"reflect"                          // Struct tag lookup
	"strings"                          // String manipulation
	"sync"                             // One-time validator setup

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Request binding
	"github.com/go-playground/validator/v10" // Validation errors
	"github.com/sirupsen/logrus"             // Logging library
)

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// bindingMessage turns a binding failure into the first failing field's message
func bindingMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf(`"%s" is required`, field)
	case "email":
		return fmt.Sprintf(`"%s" must be a valid email`, field)
	case "min":
		return fmt.Sprintf(`"%s" length must be at least %s characters long`, field, fe.Param())
	case "max":
		return fmt.Sprintf(`"%s" length must be less than or equal to %s characters long`, field, fe.Param())
	case "oneof":
		return fmt.Sprintf(`"%s" must be one of [%s]`, field, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return fmt.Sprintf(`"%s" is invalid`, field)
	}
}

// respondError maps a service error to its HTTP status and {error} body
func respondError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, domain.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, domain.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
	case errors.Is(err, domain.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Leave request has already been decided"})
	default:
		_ = c.Error(err) // Surface in the request log
		middleware.Logger(c).WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Unhandled error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
