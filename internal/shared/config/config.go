package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	DatabaseURL    string
	DatabaseDriver string // "postgres" or "sqlite"
	Port           string
	Env            string

	TemplateDir string
	TmpDir      string
	DownloadDir string
	ColorsFile  string

	ChromePath     string
	PDFLoadTimeout time.Duration
	PDFFallback    string // "native" enables the gofpdf renderer when Chrome is missing
	PaperFormat    string

	HolidayCountry  string
	EmptyColorMode  string // "white" or "none"
	TrailingRowMode string // "lockstep" or "independent"

	TmpCleanupSchedule string
	TmpMaxAge          time.Duration

	UploadProvider     string // "", "local" or "s3"
	ArchiveDir         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	S3Bucket           string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		DatabaseDriver:     os.Getenv("DATABASE_DRIVER"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		TemplateDir:        os.Getenv("TEMPLATE_DIR"),
		TmpDir:             os.Getenv("TMP_DIR"),
		DownloadDir:        os.Getenv("DOWNLOAD_DIR"),
		ColorsFile:         os.Getenv("COLORS_FILE"),
		ChromePath:         os.Getenv("CHROME_PATH"),
		PDFFallback:        os.Getenv("PDF_FALLBACK"),
		PaperFormat:        os.Getenv("PAPER_FORMAT"),
		HolidayCountry:     os.Getenv("HOLIDAY_COUNTRY"),
		EmptyColorMode:     os.Getenv("EMPTY_COLOR_MODE"),
		TrailingRowMode:    os.Getenv("TRAILING_ROW_MODE"),
		TmpCleanupSchedule: os.Getenv("TMP_CLEANUP_SCHEDULE"),
		UploadProvider:     os.Getenv("UPLOAD_PROVIDER"),
		ArchiveDir:         os.Getenv("ARCHIVE_DIR"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AWSRegion:          os.Getenv("AWS_REGION"),
		S3Bucket:           os.Getenv("S3_BUCKET"),
		PDFLoadTimeout:     durationEnv("PDF_LOAD_TIMEOUT", 5*time.Second),
		TmpMaxAge:          durationEnv("TMP_MAX_AGE", 24*time.Hour),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "postgres"
	}
	if cfg.TemplateDir == "" {
		cfg.TemplateDir = "templates"
	}
	if cfg.TmpDir == "" {
		cfg.TmpDir = "tmp_files"
	}
	if cfg.DownloadDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.DownloadDir = filepath.Join(home, "Downloads")
		}
	}
	if cfg.PaperFormat == "" {
		cfg.PaperFormat = "a4"
	}
	if cfg.HolidayCountry == "" {
		cfg.HolidayCountry = "AT"
	}
	if cfg.EmptyColorMode == "" {
		cfg.EmptyColorMode = "white"
	}
	if cfg.TrailingRowMode == "" {
		cfg.TrailingRowMode = "lockstep"
	}
	if cfg.TmpCleanupSchedule == "" {
		cfg.TmpCleanupSchedule = "@hourly"
	}
	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = "archive"
	}

	return cfg
}

// durationEnv accepts Go durations ("5s") or plain seconds ("5").
func durationEnv(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	log.Warn().Str("key", key).Str("value", raw).Msg("invalid duration, using default")
	return def
}
