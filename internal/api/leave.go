package api

import (
	"errors"                           // Error matching
	"fmt"                              // Message formatting
	"leave_system/internal/middleware" // Caller identity
	"leave_system/internal/service"    // Leave workflow
	"net/http"                         // HTTP status codes
	"strconv"                          // String conversion

	"github.com/gin-gonic/gin" // Gin web framework
)

// DecideRequest represents an approve or reject decision
type DecideRequest struct {
	Status       string  `json:"status" binding:"required,oneof=approved rejected"` // New status
	AdminComment *string `json:"admin_comment" binding:"omitempty,max=500"`         // Optional note to the employee
}

// SubmitLeaveHandler stores a new pending leave request for the caller.
// Expects multipart form fields leave_type, start_date, end_date, reason and an optional attachment.
func SubmitLeaveHandler(leaves *service.LeaveService, uploads Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uploads.MaxBytes > 0 {
			// Cap the whole body a little above the file limit to leave room for the form fields
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, uploads.MaxBytes+1<<20)
		}
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("File too large. Maximum size is %dMB", uploads.MaxBytes>>20)})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
			return
		}
		in := service.SubmitInput{
			LeaveType: c.PostForm("leave_type"),
			StartDate: c.PostForm("start_date"),
			EndDate:   c.PostForm("end_date"),
			Reason:    c.PostForm("reason"),
		}
		// Reject bad fields before touching the disk
		if _, err := in.Validate(); err != nil {
			respondError(c, err)
			return
		}

		var onDisk string
		header, err := c.FormFile("attachment")
		switch {
		case err == nil:
			ext, err := uploads.Check(header)
			if err != nil {
				respondError(c, err)
				return
			}
			stored, saved, err := uploads.Save(c, header, ext)
			if err != nil {
				respondError(c, err)
				return
			}
			in.AttachmentPath, onDisk = &stored, saved
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			// No attachment
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid attachment"})
			return
		}

		leave, err := leaves.Submit(c.Request.Context(), middleware.CurrentIdentity(c), in)
		if err != nil {
			if onDisk != "" {
				// Drop the orphaned upload
				if rmErr := uploads.Remove(onDisk); rmErr != nil {
					middleware.Logger(c).WithError(rmErr).WithField("path", onDisk).Warn("Failed to remove attachment")
				}
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message":      "Leave request created successfully",
			"leaveRequest": leave,
		})
	}
}

// MyLeavesHandler returns the caller's own leave requests, newest first
func MyLeavesHandler(leaves *service.LeaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, limit := pageParams(c)
		result, err := leaves.ListMine(c.Request.Context(), middleware.CurrentIdentity(c), page, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// DecideLeaveHandler approves or rejects a pending leave request
func DecideLeaveHandler(leaves *service.LeaveService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil || id == 0 {
			// A malformed id cannot name an existing request
			c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
			return
		}
		var req DecideRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err)})
			return
		}
		leave, err := leaves.Decide(c.Request.Context(), middleware.CurrentIdentity(c), uint(id), req.Status, req.AdminComment)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":      "Leave request updated successfully",
			"leaveRequest": leave,
		})
	}
}
