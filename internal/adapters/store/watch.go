package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/notafinal/notafinal/internal/domain/policy"
	"github.com/notafinal/notafinal/pkg/logger"
)

// Watch monitors the snapshot file and calls onChange with the reloaded
// policy each time the file changes. It runs until ctx is cancelled.
//
// The watch is attached to the parent directory, not the file: Save
// replaces the snapshot via rename, which a file-level watch only sees as
// the old inode disappearing. A directory watch survives renames and also
// covers the file being created after the service starts.
//
// A reload that fails to parse or validate is logged and ignored; the
// previous policy stays active and onChange is not called.
func (s *FileStore) Watch(ctx context.Context, log logger.Logger, onChange func(policy.Policy)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWatchSnapshot, err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWatchSnapshot, err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("%w: %w", ErrWatchSnapshot, err)
	}

	log.Info(ctx, "watching policy snapshot", logger.String("path", s.path))

	base := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			// Rename delivers Create for the new name; direct edits deliver
			// Write. Remove/Rename of the snapshot itself carry nothing to
			// reload.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			pol, err := s.Load()
			if err != nil {
				log.Warn(ctx, "policy snapshot reload failed; keeping previous policy",
					logger.String("path", s.path), logger.Error(err))
				continue
			}

			log.Info(ctx, "policy snapshot reloaded",
				logger.String("start", pol.Start.String()),
				logger.String("cutoff", pol.Cutoff.String()),
				logger.Float64("max_percent", pol.MaxPercent),
			)
			onChange(pol)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(ctx, "policy snapshot watcher error", logger.Error(err))
		}
	}
}
