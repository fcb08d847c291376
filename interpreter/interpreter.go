// Package interpreter runs the turn loop: each utterance goes through the
// session machine, the resulting command is applied to the ledger and the
// outcome is spoken back.
package interpreter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"grocery-voice-ledger/clients/events"
	"grocery-voice-ledger/clients/speaker"
	"grocery-voice-ledger/command"
	"grocery-voice-ledger/extractor"
	"grocery-voice-ledger/ledger"
	"grocery-voice-ledger/lexicon"
	"grocery-voice-ledger/metrics"
	"grocery-voice-ledger/normalizer"
	"grocery-voice-ledger/session"
)

const defaultExportPath = "grocery_list.csv"

// turn outcomes, used as metric labels
const (
	outcomeNoSpeech   = "no_speech"
	outcomeIgnored    = "ignored"
	outcomeDispatched = "dispatched"
	outcomeFailed     = "failed"
	outcomeExit       = "exit"
)

type interpreterImpl struct {
	lexicon         *lexicon.Holder
	ledger          ledger.Interface
	speaker         speaker.Interface
	events          events.Publisher
	metrics         *metrics.Metrics
	logger          *slog.Logger
	exportPath      string
	wakeMaxDistance int
	now             func() time.Time

	state    session.State
	machine  session.Interface
	builtFor *lexicon.Lexicon
}

type Config struct {
	Lexicon *lexicon.Holder
	Ledger  ledger.Interface
	Speaker speaker.Interface
	// Events is optional; nil drops ledger events.
	Events events.Publisher
	// Metrics is optional.
	Metrics    *metrics.Metrics
	Logger     *slog.Logger
	ExportPath string
	// WakeMaxDistance enables fuzzy wake phrase matching when positive.
	WakeMaxDistance int
	Now             func() time.Time
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Lexicon == nil || cfg.Lexicon.Current() == nil {
		return nil, fmt.Errorf("lexicon is nil")
	}

	if cfg.Ledger == nil {
		return nil, fmt.Errorf("ledger is nil")
	}

	if cfg.Speaker == nil {
		return nil, fmt.Errorf("speaker is nil")
	}

	pub := cfg.Events
	if pub == nil {
		pub = events.Nop()
	}

	m := cfg.Metrics
	if m == nil {
		m = metrics.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	exportPath := cfg.ExportPath
	if exportPath == "" {
		exportPath = defaultExportPath
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	i := &interpreterImpl{
		lexicon:         cfg.Lexicon,
		ledger:          cfg.Ledger,
		speaker:         cfg.Speaker,
		events:          pub,
		metrics:         m,
		logger:          logger,
		exportPath:      exportPath,
		wakeMaxDistance: cfg.WakeMaxDistance,
		now:             now,
		state:           session.Start(),
	}

	if _, err := i.currentMachine(); err != nil {
		return nil, err
	}

	return i, nil
}

func (i *interpreterImpl) State() session.State {
	return i.state
}

// currentMachine rebuilds the session machine when the lexicon was reloaded
// since the last turn.
func (i *interpreterImpl) currentMachine() (session.Interface, error) {
	lex := i.lexicon.Current()
	if i.machine != nil && lex == i.builtFor {
		return i.machine, nil
	}

	ex, err := extractor.New(&extractor.Config{Lexicon: lex})
	if err != nil {
		return nil, err
	}

	cl, err := command.New(&command.Config{Extractor: ex})
	if err != nil {
		return nil, err
	}

	m, err := session.New(&session.Config{
		Classifier:      cl,
		Lexicon:         lex,
		WakeMaxDistance: i.wakeMaxDistance,
	})
	if err != nil {
		return nil, err
	}

	i.machine = m
	i.builtFor = lex

	return m, nil
}

func (i *interpreterImpl) HandleTurn(ctx context.Context, english string) bool {
	if i.state.Terminated() {
		return true
	}

	u := normalizer.Normalize(english)
	if u.Empty() {
		i.metrics.Turn(outcomeNoSpeech)

		return false
	}

	machine, err := i.currentMachine()
	if err != nil {
		i.logger.Error("Interpreter unavailable", slog.String("error", err.Error()))
		i.metrics.Turn(outcomeFailed)

		return false
	}

	before := i.state

	cmd, next, err := machine.Step(i.state, u)
	i.state = next

	i.logger.Info("Turn",
		slog.String("line", u.Line),
		slog.String("state", before.String()),
		slog.String("next", next.String()),
		slog.String("kind", string(cmd.Kind)))

	if err != nil {
		i.metrics.Command(string(cmd.Kind))

		if errors.Is(err, command.ErrExtractionFailed) || errors.Is(err, command.ErrUnrecognized) {
			i.metrics.Extraction(string(extractor.PathNone))
		}

		i.metrics.Turn(outcomeFailed)
		i.logger.Info("Turn not understood", slog.String("error", err.Error()))
		i.speaker.Speak(phraseForError(err))

		return false
	}

	if cmd.Kind == command.KindNone {
		i.metrics.Turn(outcomeIgnored)

		return false
	}

	i.metrics.Command(string(cmd.Kind))

	if cmd.Entry.Path != "" {
		i.metrics.Extraction(string(cmd.Entry.Path))
	}

	if cmd.Kind == command.KindExit {
		i.metrics.Turn(outcomeExit)
		i.speaker.Speak(phraseGoodbye)

		return true
	}

	i.dispatch(ctx, cmd)
	i.metrics.Turn(outcomeDispatched)

	return false
}

// dispatch applies cmd to the ledger and speaks the result.
func (i *interpreterImpl) dispatch(ctx context.Context, cmd command.Command) {
	var (
		affected int
		phrase   string
		err      error
	)

	switch cmd.Kind {
	case command.KindWake:
		i.speaker.Speak(phraseAwake)

		return

	case command.KindUpdateNamedInteractive:
		i.speaker.Speak(phraseAskValue(cmd.Target))

		return

	case command.KindAddItem:
		_, err = i.ledger.Add(cmd.Entry.Quantity, cmd.Entry.Unit, cmd.Entry.Item)
		affected = 1
		phrase = phraseAdded(cmd.Entry)

	case command.KindDeleteAll:
		affected, err = i.ledger.DeleteAll()
		phrase = phraseAllDeleted

	case command.KindDeleteLast:
		var (
			deleted ledger.Entry
			ok      bool
		)

		deleted, ok, err = i.ledger.DeleteLast()
		if err == nil && !ok {
			i.speaker.Speak(phraseNoData)

			return
		}

		affected = 1
		phrase = phraseDeletedLast(deleted.Item)

	case command.KindDeleteByName:
		affected, err = i.ledger.DeleteByName(cmd.Target)
		phrase = phraseDeleted(affected)

	case command.KindUpdateLastTo:
		affected, err = i.ledger.UpdateLast(cmd.Entry.Quantity, cmd.Entry.Unit, cmd.Entry.Item)
		phrase = phraseNoItem

		if affected > 0 {
			phrase = phraseLastUpdated
		}

	case command.KindUpdateNamedTo:
		affected, err = i.ledger.UpdateByName(cmd.Target, cmd.Entry.Quantity, cmd.Entry.Unit, cmd.Entry.Item)
		phrase = phraseUpdated(affected)

	case command.KindRename:
		affected, err = i.ledger.RenameByName(cmd.Target, cmd.NewName)
		phrase = phraseRenamed(affected, cmd.NewName)

	case command.KindExport:
		affected, phrase = i.export()

		if affected == 0 {
			i.speaker.Speak(phrase)

			return
		}

	default:
		i.logger.Warn("Unhandled command", slog.String("kind", string(cmd.Kind)))

		return
	}

	if err != nil {
		i.logger.Error("Ledger operation failed", slog.String("kind", string(cmd.Kind)), slog.String("error", err.Error()))
		i.speaker.Speak(phraseLedgerFailed)

		return
	}

	i.speaker.Speak(phrase)
	i.publish(ctx, cmd, affected)
}

func (i *interpreterImpl) export() (int, string) {
	n, err := i.ledger.ExportCSV(i.exportPath)

	switch {
	case errors.Is(err, ledger.ErrNoEntries):
		return 0, phraseNoExportData
	case err != nil:
		i.logger.Error("CSV export error", slog.String("path", i.exportPath), slog.String("error", err.Error()))

		return 0, phraseExportFailed
	default:
		return n, phraseExported(i.exportPath)
	}
}

func (i *interpreterImpl) publish(ctx context.Context, cmd command.Command, affected int) {
	event := events.Event{
		Kind:     string(cmd.Kind),
		Quantity: cmd.Entry.Quantity,
		Unit:     cmd.Entry.Unit,
		Item:     cmd.Entry.Item,
		Target:   cmd.Target,
		Affected: affected,
		At:       i.now(),
	}

	if cmd.Kind == command.KindRename {
		event.Item = cmd.NewName
	}

	if err := i.events.Publish(ctx, event); err != nil {
		i.logger.Warn("Event publish failed", slog.String("kind", event.Kind), slog.String("error", err.Error()))
	}
}
