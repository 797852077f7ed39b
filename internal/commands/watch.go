package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/okra-platform/kubetypes/internal/watch"
)

// ErrNoSchemaFile is returned by watch when neither the flags nor kubetypes.json name a local schema
var ErrNoSchemaFile = errors.New("watch requires a local schema file (--schema-file or schema.file)")

// SignalNotifier abstracts os/signal for testing
type SignalNotifier interface {
	Notify(c chan<- os.Signal, sig ...os.Signal)
	Stop(c chan<- os.Signal)
}

type defaultSignalNotifier struct{}

func (n *defaultSignalNotifier) Notify(c chan<- os.Signal, sig ...os.Signal) {
	signal.Notify(c, sig...)
}

func (n *defaultSignalNotifier) Stop(c chan<- os.Signal) {
	signal.Stop(c)
}

// WatchCommand regenerates on every change of the schema file
type WatchCommand struct {
	generate       *GenerateCommand
	signalNotifier SignalNotifier
	debounce       time.Duration
	logger         zerolog.Logger

	// serializes runs triggered by the debouncer
	mu sync.Mutex
}

// NewWatchCommand creates a new watch command with default dependencies
func NewWatchCommand(flags *Flags, logger zerolog.Logger) *WatchCommand {
	return &WatchCommand{
		generate:       NewGenerateCommand(flags, logger),
		signalNotifier: &defaultSignalNotifier{},
		debounce:       watch.DefaultDebounce,
		logger:         logger.With().Str("component", "watch").Logger(),
	}
}

// Execute runs one generation, then one more after each burst of changes until ctx is
// canceled or an interrupt arrives. Failed runs are logged and watching continues.
func (wc *WatchCommand) Execute(ctx context.Context) error {
	cfg, err := wc.generate.resolveConfig()
	if err != nil {
		return err
	}
	if cfg.Schema.File == "" {
		return ErrNoSchemaFile
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	wc.signalNotifier.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer wc.signalNotifier.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			wc.logger.Info().Msg("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	wc.run(ctx)

	debouncer := watch.NewDebouncer(wc.debounce, func() { wc.run(ctx) })
	defer debouncer.Stop()

	watcher, err := watch.NewSchemaWatcher(cfg.Schema.File, func(path string, op fsnotify.Op) {
		debouncer.Trigger()
	}, wc.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	wc.logger.Info().Str("path", cfg.Schema.File).Msg("watching schema for changes")

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch error: %w", err)
	}
	return nil
}

func (wc *WatchCommand) run(ctx context.Context) {
	wc.mu.Lock()
	defer wc.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if _, err := wc.generate.Execute(ctx); err != nil {
		wc.logger.Error().Err(err).Msg("generation failed")
	}
}
