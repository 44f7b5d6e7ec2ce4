package upload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Config selects and configures the archive provider
type Config struct {
	Provider        string // "", "none", "local" or "s3"
	ArchiveDir      string
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
}

// NewProvider builds the configured provider. A nil provider means archiving
// is disabled.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		return nil, nil
	case "local":
		return NewLocalProvider(cfg.ArchiveDir, "")
	case "s3":
		return NewS3Provider(ctx, cfg.AccessKeyID, cfg.SecretAccessKey, cfg.Region, cfg.Bucket)
	default:
		return nil, fmt.Errorf("unknown upload provider: %s", cfg.Provider)
	}
}

// Service mirrors finished report files to the configured provider
type Service struct {
	provider Provider
}

// NewService creates a new upload service; a nil provider disables it
func NewService(provider Provider) *Service {
	return &Service{provider: provider}
}

// Enabled reports whether a provider is configured
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// MirrorFile uploads a file from disk under its base name
func (s *Service) MirrorFile(ctx context.Context, path string, options *UploadOptions) (*UploadResult, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("upload provider not configured")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	result, err := s.provider.Upload(ctx, f, filepath.Base(path), options)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("provider", s.provider.GetProviderName()).
		Str("url", result.URL).
		Msg("☁️ Report archived")
	return result, nil
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	if !s.Enabled() {
		return ""
	}
	return s.provider.GetProviderName()
}
