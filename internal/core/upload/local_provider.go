package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalProvider archives files below a directory on disk
type LocalProvider struct {
	basePath string // Base directory for archived reports
	baseURL  string // Base URL the directory is served under, may be empty
}

// NewLocalProvider creates a new local archive provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}

	return &LocalProvider{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Upload copies a file into the archive directory
func (p *LocalProvider) Upload(ctx context.Context, file io.Reader, filename string, options *UploadOptions) (*UploadResult, error) {
	options = MergeOptions(options)

	ext := filepath.Ext(filename)
	if !allowedExt(ext, options.AllowedTypes) {
		return nil, fmt.Errorf("file type not allowed: %s", ext)
	}
	finalFilename := archiveName(filename, options)

	folderPath := filepath.Join(p.basePath, options.Folder)
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}
	filePath := filepath.Join(folderPath, finalFilename)

	if !options.Overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return nil, fmt.Errorf("file already exists: %s", finalFilename)
		}
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, file)
	if err != nil {
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	if options.MaxSize > 0 && size > options.MaxSize {
		out.Close()
		os.Remove(filePath)
		return nil, fmt.Errorf("file size exceeds maximum allowed size: %d bytes", options.MaxSize)
	}

	publicID := options.Folder + "/" + finalFilename

	return &UploadResult{
		URL:      p.GetURL(publicID),
		FileName: filename,
		Size:     size,
		Format:   strings.TrimPrefix(ext, "."),
		PublicID: publicID,
	}, nil
}

// Delete deletes a file from the archive directory
func (p *LocalProvider) Delete(ctx context.Context, publicID string) error {
	filePath := filepath.Join(p.basePath, filepath.FromSlash(publicID))

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", publicID)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetURL returns the served URL, or the file path when no URL is configured
func (p *LocalProvider) GetURL(publicID string) string {
	if p.baseURL == "" {
		return filepath.Join(p.basePath, filepath.FromSlash(publicID))
	}
	return p.baseURL + "/" + publicID
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}

// archiveName keeps the report name readable and makes it unique
func archiveName(filename string, options *UploadOptions) string {
	ext := filepath.Ext(filename)
	if options.PublicID != "" {
		return options.PublicID + ext
	}
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filename), ext)
	uniqueID := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%d_%s%s", nameWithoutExt, time.Now().Unix(), uniqueID, ext)
}
