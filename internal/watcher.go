package internal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// ErrTooManyIterations is the watcher's liveness fault: the notifier kept
// signalling without the clipboard ever producing text.
var ErrTooManyIterations = errors.New("too many iterations without a clipboard change")

const (
	defaultMaxIterations = 100

	// Short pause after a stored item so copying the converted text back
	// does not race the next notifier wait.
	defaultSettleDelay = 100 * time.Millisecond
)

// Watcher is the background loop: block on the notifier, read the
// clipboard, store what was copied. Each stored item reloads the items
// file first, so the watcher and the menu can run side by side.
type Watcher struct {
	paths    Paths
	settings Settings
	notifier NotifierPort
	clip     ClipboardPort
	logger   *log.Logger

	maxIterations int
	settleDelay   time.Duration
}

func NewWatcher(paths Paths, settings Settings, notifier NotifierPort, clip ClipboardPort, logger *log.Logger) *Watcher {
	return &Watcher{
		paths:         paths,
		settings:      settings,
		notifier:      notifier,
		clip:          clip,
		logger:        logger,
		maxIterations: defaultMaxIterations,
		settleDelay:   defaultSettleDelay,
	}
}

// Run loops until the context is cancelled or the iteration cap trips.
// Iteration errors are logged and swallowed; only the cap is fatal. The
// cap guards against a notifier that returns immediately in a tight loop.
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reload := w.watchSettings(ctx)
	iterations := 0
	w.logger.Info("watcher started")

	for {
		iterations++
		if iterations > w.maxIterations {
			w.logger.Error("too many iterations")
			return ErrTooManyIterations
		}

		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			w.reloadSettings()
		default:
		}

		stored, err := w.iterate(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			w.logger.Error("iteration failed", "err", err)
			continue
		}

		if stored {
			iterations = 0
			time.Sleep(w.settleDelay)
		}
	}
}

// iterate runs one watch cycle and reports whether text was stored.
func (w *Watcher) iterate(ctx context.Context) (bool, error) {
	if err := w.notifier.Wait(ctx); err != nil {
		return false, fmt.Errorf("notifier: %w", err)
	}

	text, err := w.clip.Get(ctx)
	if err != nil {
		return false, err
	}
	if text == "" {
		return false, nil
	}

	settings := w.settings
	var titles TitlePort
	if settings.EnableTitles {
		titles = NewTitleResolver()
	}

	store := NewItemStore(settings, FilePersistence{Path: w.paths.ItemsPath}, titles)
	if err := store.Load(); err != nil {
		return false, err
	}

	pipe := NewPipeline(settings.Converters)
	if err := InsertClip(ctx, store, pipe, w.clip, settings, text); err != nil {
		return false, err
	}
	return true, nil
}

// watchSettings watches the settings file so a long-running watcher picks
// up changed toggles without a restart. Returns nil (never ready) when the
// file watch cannot be established.
func (w *Watcher) watchSettings(ctx context.Context) <-chan struct{} {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.Warn("settings watch unavailable", "err", err)
		return nil
	}

	if err := fsw.Add(w.paths.ConfigDir); err != nil {
		fsw.Close()
		w.logger.Warn("settings watch unavailable", "err", err)
		return nil
	}

	ch := make(chan struct{}, 1)
	go func() {
		defer fsw.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				if event.Name != w.paths.SettingsPath {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				select {
				case ch <- struct{}{}:
				default:
				}
			case _, ok := <-fsw.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return ch
}

func (w *Watcher) reloadSettings() {
	settings, err := LoadSettings(w.paths.SettingsPath)
	if err != nil {
		w.logger.Warn("settings reload failed", "err", err)
		return
	}
	w.settings = settings
	w.logger.Info("settings reloaded")
}
