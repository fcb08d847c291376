package session

import "fmt"

// Phase is the coarse state of a session.
type Phase string

const (
	PhaseAsleep         Phase = "asleep"
	PhaseActive         Phase = "active"
	PhaseAwaitingUpdate Phase = "awaiting_update"
	PhaseTerminated     Phase = "terminated"
)

// State is the full session state. PendingTarget is only set while the
// phase is PhaseAwaitingUpdate.
type State struct {
	Phase         Phase
	PendingTarget string
}

// Start is the state of a new session.
func Start() State {
	return State{Phase: PhaseAsleep}
}

func Active() State {
	return State{Phase: PhaseActive}
}

func AwaitingUpdate(target string) State {
	return State{Phase: PhaseAwaitingUpdate, PendingTarget: target}
}

func (s State) Terminated() bool {
	return s.Phase == PhaseTerminated
}

func (s State) String() string {
	if s.Phase == PhaseAwaitingUpdate {
		return fmt.Sprintf("%s(%s)", s.Phase, s.PendingTarget)
	}

	return string(s.Phase)
}
