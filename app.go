package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"grocery-voice-ledger/clients/events"
	"grocery-voice-ledger/clients/speaker"
	"grocery-voice-ledger/clients/translator"
	"grocery-voice-ledger/config"
	"grocery-voice-ledger/display"
	"grocery-voice-ledger/interpreter"
	"grocery-voice-ledger/ledger"
	"grocery-voice-ledger/lexicon"
	"grocery-voice-ledger/metrics"
)

// app holds what every command shares: loaded config, filesystem, logger
// and the output streams.
type app struct {
	cfg     *config.Config
	fileSys afero.Fs
	logger  *slog.Logger
	out     io.Writer
	prompt  io.Writer
}

func newApp(fileSys afero.Fs, homeDir, configPath, logLevel string, out, errOut io.Writer) (*app, error) {
	bootLogger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: parseLevel(logLevel)}))

	cfg, err := config.NewLoader(fileSys, homeDir, bootLogger).Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.OverrideLogLevel(logLevel); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: parseLevel(cfg.Log.Level)}))
	slog.SetDefault(logger)

	return &app{
		cfg:     cfg,
		fileSys: fileSys,
		logger:  logger,
		out:     out,
		prompt:  out,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (a *app) openLedger() (ledger.Interface, error) {
	return ledger.New(&ledger.Config{
		FileSys: a.fileSys,
		Path:    a.cfg.Ledger.Path,
		Logger:  a.logger,
	})
}

// loadLexicon returns the built-in lexicon merged with the configured
// table, reloading it on change when watching is enabled.
func (a *app) loadLexicon(ctx context.Context) (*lexicon.Holder, error) {
	path := a.cfg.Lexicon.Path
	if path == "" {
		return lexicon.NewHolder(lexicon.Default()), nil
	}

	lex, err := lexicon.LoadFile(a.fileSys, path)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	holder := lexicon.NewHolder(lex)

	if a.cfg.Lexicon.Watch {
		if err := holder.Watch(ctx, a.fileSys, path, a.logger); err != nil {
			a.logger.Warn("Lexicon reload disabled", "error", err)
		}
	}

	return holder, nil
}

func (a *app) newSpeaker() (speaker.Interface, error) {
	sc := a.cfg.Speaker
	if sc.Command == "" {
		return speaker.NewLog(a.out), nil
	}

	return speaker.New(&speaker.Config{
		Command:     sc.Command,
		Args:        sc.Args,
		Player:      sc.Player,
		SilencePath: sc.SilencePath,
		FileSys:     a.fileSys,
		Out:         a.out,
		Logger:      a.logger,
	})
}

func (a *app) newTranslator() (translator.Translator, error) {
	tc := a.cfg.Translator
	if tc.APIHost == "" {
		return translator.NewPassthrough(), nil
	}

	return translator.NewClient(&translator.Config{
		ApiHost: tc.APIHost,
		Source:  tc.Source,
		Timeout: tc.Timeout,
		Logger:  a.logger,
	})
}

// connectEvents falls back to dropping events when NATS is unreachable;
// the ledger works without a subscriber.
func (a *app) connectEvents() events.Publisher {
	ec := a.cfg.Events
	if ec.NATSURL == "" {
		return events.Nop()
	}

	pub, err := events.Connect(&events.Config{
		URL:     ec.NATSURL,
		Subject: ec.Subject,
		Logger:  a.logger,
	})
	if err != nil {
		a.logger.Warn("Ledger events disabled", "url", ec.NATSURL, "error", err)

		return events.Nop()
	}

	return pub
}

// runSession wires the interpreter to listener and runs it until exit,
// end of input or ctx cancellation.
func (a *app) runSession(ctx context.Context, listener interpreter.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	holder, err := a.loadLexicon(ctx)
	if err != nil {
		return err
	}

	store, err := a.openLedger()
	if err != nil {
		return err
	}

	voice, err := a.newSpeaker()
	if err != nil {
		return err
	}

	tr, err := a.newTranslator()
	if err != nil {
		return err
	}

	pub := a.connectEvents()
	defer pub.Close()

	m := metrics.New()

	if addr := a.cfg.Metrics.Listen; addr != "" {
		go func() {
			if err := m.Serve(ctx, addr, a.logger); err != nil {
				a.logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	table, err := display.New(&display.Config{Out: a.out})
	if err != nil {
		return err
	}

	interp, err := interpreter.New(&interpreter.Config{
		Lexicon:         holder,
		Ledger:          store,
		Speaker:         voice,
		Events:          pub,
		Metrics:         m,
		Logger:          a.logger,
		ExportPath:      a.cfg.Export.Path,
		WakeMaxDistance: a.cfg.Wake.MaxDistance,
	})
	if err != nil {
		return err
	}

	return interp.Run(ctx, &interpreter.RunConfig{
		Listener:   listener,
		Translator: tr,
		Display:    table,
	})
}
