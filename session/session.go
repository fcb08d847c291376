// Package session owns whether the interpreter is willing to act on what it
// hears. It decides exit and wake, hands active lines to the classifier and
// keeps the pending target of a two-turn update.
package session

import (
	"fmt"

	"grocery-voice-ledger/command"
	"grocery-voice-ledger/lexicon"
	"grocery-voice-ledger/normalizer"
)

type machineImpl struct {
	classifier command.Interface
	phrases    phraseMatcher
}

type Config struct {
	Classifier command.Interface
	Lexicon    *lexicon.Lexicon
	// WakeMaxDistance enables fuzzy wake phrase matching when positive.
	WakeMaxDistance int
}

func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Classifier == nil {
		return nil, fmt.Errorf("classifier is nil")
	}

	if cfg.Lexicon == nil {
		return nil, fmt.Errorf("lexicon is nil")
	}

	return &machineImpl{
		classifier: cfg.Classifier,
		phrases: phraseMatcher{
			wake:        cfg.Lexicon.WakePhrases(),
			exit:        cfg.Lexicon.ExitPhrases(),
			maxDistance: cfg.WakeMaxDistance,
		},
	}, nil
}

func (m *machineImpl) Step(st State, u normalizer.Utterance) (command.Command, State, error) {
	if st.Terminated() {
		return command.Command{Kind: command.KindNone}, st, nil
	}

	// an empty turn is no speech: nothing changes, not even a pending update
	if u.Empty() {
		return command.Command{Kind: command.KindNone}, st, nil
	}

	if m.phrases.isExit(u.Line) {
		return command.Command{Kind: command.KindExit}, State{Phase: PhaseTerminated}, nil
	}

	switch st.Phase {
	case PhaseAsleep:
		if m.phrases.isWake(u.Line, u.Tokens) {
			return command.Command{Kind: command.KindWake}, Active(), nil
		}

		// anything else heard while asleep is ambient noise
		return command.Command{Kind: command.KindNone}, st, nil

	case PhaseAwaitingUpdate:
		// the pending update is cleared whatever the answer was
		cmd, err := m.classifier.ClassifyFollowUp(st.PendingTarget, u)

		return cmd, Active(), err

	case PhaseActive:
		cmd, err := m.classifier.Classify(u)
		if err != nil {
			return cmd, st, err
		}

		if cmd.Kind == command.KindUpdateNamedInteractive {
			return cmd, AwaitingUpdate(cmd.Target), nil
		}

		return cmd, st, nil

	default:
		return command.Command{Kind: command.KindNone}, st, fmt.Errorf("unknown session phase %q", st.Phase)
	}
}
