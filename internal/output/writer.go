// Package output persists rendered modules under a destination URL.
// Any scheme supported by afs works: local paths, file://, mem:// and cloud storage.
package output

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/okra-platform/kubetypes/internal/codegen/tsast"
	"github.com/rs/zerolog"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of uploads in flight
const DefaultConcurrency = 8

// Writer uploads rendered files
type Writer struct {
	fs          afs.Service
	logger      zerolog.Logger
	concurrency int
}

// NewWriter creates a writer backed by fs. A nil fs uses afs.New().
func NewWriter(fs afs.Service, logger zerolog.Logger) *Writer {
	if fs == nil {
		fs = afs.New()
	}
	return &Writer{
		fs:          fs,
		logger:      logger.With().Str("component", "output").Logger(),
		concurrency: DefaultConcurrency,
	}
}

// WithConcurrency sets the upload limit; values below one mean one
func (w *Writer) WithConcurrency(n int) *Writer {
	if n < 1 {
		n = 1
	}
	w.concurrency = n
	return w
}

// Write stores every file at baseURL/PATH and returns the written URLs sorted.
// The first failed upload cancels the remaining ones.
func (w *Writer) Write(ctx context.Context, baseURL string, files []*tsast.File) ([]string, error) {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(w.concurrency)

	urls := make([]string, len(files))
	for i, f := range files {
		i, f := i, f
		target := url.Join(baseURL, f.Path())
		urls[i] = target

		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			text := f.Text()
			if err := w.fs.Upload(ctx, target, file.DefaultFileOsMode, strings.NewReader(text)); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}
			w.logger.Info().Str("path", target).Int("bytes", len(text)).Msg("wrote file")
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(urls)
	return urls, nil
}
