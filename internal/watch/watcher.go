package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultExclude skips editor swap and backup files
var DefaultExclude = []string{"*.swp", "*.swx", "*~", ".#*", "*.tmp"}

// FileWatcher watches files for changes based on patterns
type FileWatcher struct {
	watcher  *fsnotify.Watcher
	patterns []string
	exclude  []string
	onChange func(path string, op fsnotify.Op)
	logger   zerolog.Logger
}

// NewFileWatcher creates a new file watcher
func NewFileWatcher(patterns []string, exclude []string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &FileWatcher{
		watcher:  watcher,
		patterns: patterns,
		exclude:  exclude,
		onChange: onChange,
		logger:   logger.With().Str("component", "watch").Logger(),
	}, nil
}

// NewSchemaWatcher watches a single schema file.
// The parent directory is watched because editors often replace files instead of writing them in place.
func NewSchemaWatcher(path string, onChange func(path string, op fsnotify.Op), logger zerolog.Logger) (*FileWatcher, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat schema file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("schema path %s is a directory", path)
	}

	fw, err := NewFileWatcher([]string{filepath.Base(path)}, DefaultExclude, onChange, logger)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	if err := fw.watcher.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	return fw, nil
}

// AddDirectory recursively adds a directory to the watcher
func (fw *FileWatcher) AddDirectory(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		// Skip excluded paths
		for _, pattern := range fw.exclude {
			matched, _ := filepath.Match(pattern, filepath.Base(path))
			if matched {
				if info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}

		// Only watch directories
		if info.IsDir() {
			if err := fw.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch directory %s: %w", path, err)
			}
		}

		return nil
	})
}

// Start begins watching for file changes
func (fw *FileWatcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}

			// chmod alone never changes content
			if event.Op == fsnotify.Chmod {
				continue
			}

			if fw.shouldWatch(event.Name) {
				fw.logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("file changed")
				fw.onChange(event.Name, event.Op)
			}

			// If a new directory is created, add it to the watcher
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.AddDirectory(event.Name); err != nil {
						fw.logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
					}
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			if err != nil {
				// Log error but continue watching
				fw.logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

// shouldWatch checks if a file should trigger a change event based on patterns
func (fw *FileWatcher) shouldWatch(path string) bool {
	base := filepath.Base(path)

	// Check excludes first
	for _, pattern := range fw.exclude {
		if matched, _ := filepath.Match(pattern, base); matched {
			return false
		}
	}

	for _, pattern := range fw.patterns {
		// **/*.ext matches the extension at any depth
		if strings.HasPrefix(pattern, "**/*.") {
			if strings.HasSuffix(path, strings.TrimPrefix(pattern, "**/*")) {
				return true
			}
		} else if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
	}

	return false
}

// Close stops the watcher
func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
