package session

import (
	"grocery-voice-ledger/command"
	"grocery-voice-ledger/normalizer"
)

type Interface interface {
	// Step consumes one non-empty utterance in state st and returns the
	// command to dispatch together with the next state.
	Step(st State, u normalizer.Utterance) (command.Command, State, error)
}
