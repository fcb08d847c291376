package lexicon

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Holder publishes the current lexicon to readers. Readers take one snapshot
// per turn with Current.
type Holder struct {
	current atomic.Pointer[Lexicon]
}

// NewHolder returns a Holder serving lex.
func NewHolder(lex *Lexicon) *Holder {
	h := &Holder{}
	h.current.Store(lex)

	return h
}

// Current returns the lexicon in effect.
func (h *Holder) Current() *Lexicon {
	return h.current.Load()
}

// Replace swaps in a new lexicon.
func (h *Holder) Replace(lex *Lexicon) {
	if lex == nil {
		return
	}

	h.current.Store(lex)
}

// Watch reloads path into the holder whenever the file is written, until ctx
// is done. A file that fails to load keeps the previous lexicon in place.
func (h *Holder) Watch(ctx context.Context, fileSys afero.Fs, path string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create lexicon watcher: %w", err)
	}

	// editors replace files on save, so watch the directory rather than the file
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()

		return fmt.Errorf("watch lexicon dir: %w", err)
	}

	target := filepath.Clean(path)

	go func() {
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != target {
					continue
				}

				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}

				lex, loadErr := LoadFile(fileSys, path)
				if loadErr != nil {
					logger.Warn("Lexicon reload failed", slog.String("path", path), slog.String("error", loadErr.Error()))

					continue
				}

				h.Replace(lex)
				logger.Info("Lexicon reloaded", slog.String("path", path))
			case watchErr, ok := <-watcher.Errors:
				if !ok {
					return
				}

				logger.Warn("Lexicon watcher error", slog.String("error", watchErr.Error()))
			}
		}
	}()

	return nil
}
