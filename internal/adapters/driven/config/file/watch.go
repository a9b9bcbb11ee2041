package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/wbrank/internal/logger"
)

// reloadDebounce coalesces the burst of events editors emit per save.
const reloadDebounce = 100 * time.Millisecond

// Watch reloads the configuration whenever the file changes.
// The directory is watched rather than the file so atomic replacements
// (write to temp, rename) are seen. Blocks until ctx is done.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}

	timer := time.NewTimer(reloadDebounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(reloadDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)

		case <-timer.C:
			if err := s.Load(); err != nil {
				logger.Warn("Config reload failed, keeping previous values: %v", err)
				continue
			}
			logger.Info("Reloaded configuration from %s", s.filePath)
			if onChange != nil {
				onChange()
			}
		}
	}
}
