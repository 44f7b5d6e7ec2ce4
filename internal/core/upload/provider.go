// Package upload mirrors finished report files to an archive store.
package upload

import (
	"context"
	"io"
	"strings"
)

// UploadResult represents the result of a file upload
type UploadResult struct {
	URL      string `json:"url"`       // Public URL to access the file
	FileName string `json:"file_name"` // Original filename
	Size     int64  `json:"size"`      // File size in bytes
	Format   string `json:"format"`    // File extension without dot
	PublicID string `json:"public_id"` // Provider-specific identifier
}

// UploadOptions represents upload configuration options
type UploadOptions struct {
	Folder       string   `json:"folder"`        // Folder/prefix to upload to
	PublicID     string   `json:"public_id"`     // Custom name without extension
	Overwrite    bool     `json:"overwrite"`     // Overwrite existing file
	AllowedTypes []string `json:"allowed_types"` // Allowed file extensions
	MaxSize      int64    `json:"max_size"`      // Max file size in bytes
}

// Provider defines the interface for archive providers
type Provider interface {
	// Upload stores a file and returns where it went
	Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error)

	// Delete deletes a file by public ID
	Delete(ctx context.Context, publicID string) error

	// GetURL gets the public URL for a file
	GetURL(publicID string) string

	// GetProviderName returns the provider name
	GetProviderName() string
}

// DefaultUploadOptions returns default upload options
func DefaultUploadOptions() *UploadOptions {
	return &UploadOptions{
		Folder:       "reports",
		AllowedTypes: []string{".html", ".pdf", ".xlsx"},
		MaxSize:      50 * 1024 * 1024, // 50MB
	}
}

// MergeOptions merges custom options with defaults
func MergeOptions(custom *UploadOptions) *UploadOptions {
	defaults := DefaultUploadOptions()

	if custom == nil {
		return defaults
	}

	if custom.Folder != "" {
		defaults.Folder = custom.Folder
	}
	if custom.PublicID != "" {
		defaults.PublicID = custom.PublicID
	}
	if len(custom.AllowedTypes) > 0 {
		defaults.AllowedTypes = custom.AllowedTypes
	}
	if custom.MaxSize > 0 {
		defaults.MaxSize = custom.MaxSize
	}

	defaults.Overwrite = custom.Overwrite

	return defaults
}

func allowedExt(ext string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, ext) {
			return true
		}
	}
	return false
}

// contentType maps report file extensions to MIME types
func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
