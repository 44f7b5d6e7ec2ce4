package janitor

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// TmpSweeper deletes files in a directory that are older than MaxAge. The
// lock is shared with the exporter so a sweep never races a running export.
type TmpSweeper struct {
	Dir    string
	MaxAge time.Duration
	Lock   sync.Locker
}

// Sweep removes stale files and returns how many were deleted.
func (s *TmpSweeper) Sweep(now time.Time) (int, error) {
	if s.Lock != nil {
		s.Lock.Lock()
		defer s.Lock.Unlock()
	}

	entries, err := os.ReadDir(s.Dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", s.Dir, err)
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < s.MaxAge {
			continue
		}
		if err := os.Remove(filepath.Join(s.Dir, entry.Name())); err != nil {
			log.Warn().Err(err).Str("file", entry.Name()).Msg("⚠️ Failed to remove temp file")
			continue
		}
		removed++
	}
	return removed, nil
}

// Job adapts Sweep to a cron callback.
func (s *TmpSweeper) Job() func() {
	return func() {
		removed, err := s.Sweep(time.Now())
		if err != nil {
			log.Error().Err(err).Msg("❌ Temp sweep failed")
			return
		}
		if removed > 0 {
			log.Info().Int("removed", removed).Str("dir", s.Dir).Msg("🧹 Removed stale temp files")
		}
	}
}
