package command

import "grocery-voice-ledger/normalizer"

type Interface interface {
	// Classify interprets a line spoken while the session is active.
	Classify(u normalizer.Utterance) (Command, error)
	// ClassifyFollowUp interprets the answer to an interactive update of target.
	ClassifyFollowUp(target string, u normalizer.Utterance) (Command, error)
}
