// Package prepareservice makes sure every directory and log file the
// pipeline writes to exists with the expected permissions before any step
// runs.
package prepareservice

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/opennas/imagecust/internal/config"
)

// Prepare creates the hook, handoff and log locations. It is safe to call
// repeatedly.
func Prepare(cfg *config.BuildConfig) error {
	dirs := []string{
		filepath.Dir(cfg.HookPath),
		filepath.Dir(cfg.HandoffPath),
		filepath.Dir(cfg.LogPath),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	// Touch the log file without truncating an existing one.
	f, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to prepare log file %s: %w", cfg.LogPath, err)
	}
	return f.Close()
}
