package api

import (
	"fmt"                          // Message formatting
	"leave_system/internal/domain" // Importing domain models
	"mime/multipart"               // Uploaded file headers
	"os"                           // File removal
	"path"                         // Stored path joins
	"path/filepath"                // Filesystem paths
	"strings"                      // String manipulation

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Collision-free file names
)

// UploadRoute is the URL prefix attachments are served under and the prefix of stored paths
const UploadRoute = "uploads"

// allowedExtensions lists attachment types accepted on submission
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// Uploader stores leave attachments on local disk
type Uploader struct {
	Dir      string // Target directory
	MaxBytes int64  // Per-file size limit
}

// Check validates an attachment before anything is written and returns its extension
func (u Uploader) Check(h *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(h.Filename))
	if !allowedExtensions[ext] {
		return "", domain.Invalid("attachment", "Only images (jpg, jpeg, png) and documents (pdf, doc, docx) are allowed")
	}
	if u.MaxBytes > 0 && h.Size > u.MaxBytes {
		return "", domain.Invalid("attachment", fmt.Sprintf("File too large. Maximum size is %dMB", u.MaxBytes>>20))
	}
	return ext, nil
}

// Save writes the attachment under a fresh name and returns the stored relative path
// together with the file's location on disk
func (u Uploader) Save(c *gin.Context, h *multipart.FileHeader, ext string) (stored, onDisk string, err error) {
	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	onDisk = filepath.Join(u.Dir, name)
	if err := c.SaveUploadedFile(h, onDisk); err != nil {
		return "", "", fmt.Errorf("save attachment: %w", err)
	}
	return path.Join(UploadRoute, name), onDisk, nil
}

// Remove deletes a saved attachment, ignoring files that are already gone
func (u Uploader) Remove(onDisk string) error {
	if err := os.Remove(onDisk); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
