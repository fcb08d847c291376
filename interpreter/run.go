package interpreter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"grocery-voice-ledger/clients/translator"
	"grocery-voice-ledger/display"
	"grocery-voice-ledger/ledger"
)

// maxListenFailures in a row end the session; the listener is assumed gone.
const maxListenFailures = 5

type RunConfig struct {
	Listener Listener
	// Translator is optional; nil passes text through untranslated.
	Translator translator.Translator
	// Display is optional; nil skips rendering the ledger at shutdown.
	Display display.Interface
}

func (i *interpreterImpl) Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Listener == nil {
		return fmt.Errorf("listener is nil")
	}

	tr := cfg.Translator
	if tr == nil {
		tr = translator.NewPassthrough()
	}

	i.speaker.Speak(phraseReady)

	failures := 0

	for !i.state.Terminated() {
		if ctx.Err() != nil {
			i.logger.Info("Session interrupted")

			break
		}

		i.logger.Debug("Waiting for speech", slog.String("state", i.state.String()))

		spoken, err := cfg.Listener.Listen(ctx)
		if errors.Is(err, io.EOF) {
			if err != io.EOF {
				i.logger.Warn("Input closed", slog.String("error", err.Error()))
			} else {
				i.logger.Info("End of input")
			}

			break
		}

		if err != nil {
			if ctx.Err() != nil {
				break
			}

			// a failed listen is a turn where nothing was heard
			failures++
			i.logger.Warn("Listen failed", slog.String("error", err.Error()), slog.Int("consecutive", failures))
			i.metrics.Turn(outcomeNoSpeech)

			if failures >= maxListenFailures {
				i.logger.Error("Listener keeps failing, ending session")

				break
			}

			continue
		}

		failures = 0

		if strings.TrimSpace(spoken) == "" {
			i.logger.Debug("No speech detected")
			i.metrics.Turn(outcomeNoSpeech)

			continue
		}

		english := tr.ToEnglish(ctx, spoken)

		i.logger.Info("Heard", slog.String("original", spoken), slog.String("english", english))

		if i.HandleTurn(ctx, english) {
			break
		}
	}

	return i.shutdown(cfg.Display)
}

// shutdown shows the final ledger and exports it to CSV.
func (i *interpreterImpl) shutdown(d display.Interface) error {
	entries, err := i.ledger.Entries()
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}

	if d != nil {
		if err := d.Show(entries); err != nil {
			i.logger.Warn("Display failed", slog.String("error", err.Error()))
		}
	}

	n, err := i.ledger.ExportCSV(i.exportPath)
	switch {
	case errors.Is(err, ledger.ErrNoEntries):
		i.logger.Info("Nothing to export")
	case err != nil:
		i.logger.Error("CSV export error", slog.String("path", i.exportPath), slog.String("error", err.Error()))
		i.speaker.Speak(phraseExportFailed)
	default:
		i.logger.Info("Ledger exported", slog.String("path", i.exportPath), slog.Int("rows", n))
	}

	return nil
}
