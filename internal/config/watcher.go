package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/qdb-debug/qdb/internal/ctxlog"
)

// Watch reloads the store whenever one of its source paths changes. It
// blocks until ctx is cancelled; reload failures are logged and the
// previous cache stays in place. Run it in its own goroutine.
//
// File paths are watched through their parent directory: editors save
// atomically (write a temp file, then rename it over the target), which
// would drop a watch placed on the file itself after the first save.
func (s *Store) Watch(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create configuration watcher: %w", err)
	}
	defer watcher.Close()

	files := make(map[string]struct{})
	var dirRoots []string
	watchDirs := make(map[string]struct{})
	for _, path := range s.paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("failed to watch %q: %w", path, err)
		}
		clean := filepath.Clean(path)
		if info.IsDir() {
			dirRoots = append(dirRoots, clean)
			watchDirs[clean] = struct{}{}
		} else {
			files[clean] = struct{}{}
			watchDirs[filepath.Dir(clean)] = struct{}{}
		}
	}
	for dir := range watchDirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
	}
	logger.Debug("Configuration watcher started.", "paths", s.paths)

	relevant := func(name string) bool {
		name = filepath.Clean(name)
		if _, ok := files[name]; ok {
			return true
		}
		for _, root := range dirRoots {
			if name == root || strings.HasPrefix(name, root+string(filepath.Separator)) {
				return true
			}
		}
		return false
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Configuration watcher stopping.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !relevant(event.Name) {
				continue
			}
			logger.Info("Stored configuration changed, reloading.", "path", event.Name, "op", event.Op.String())
			if err := s.Reload(ctx); err != nil {
				logger.Warn("Reload after configuration change failed; keeping previous configurations.", "error", err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Configuration watcher error.", "error", err)
		}
	}
}
