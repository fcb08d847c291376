package interpreter

import (
	"context"

	"grocery-voice-ledger/session"
)

type Interface interface {
	// HandleTurn processes one English utterance to completion and reports
	// whether the session has ended.
	HandleTurn(ctx context.Context, english string) bool
	// Run listens, translates and handles turns until the session ends or the
	// input runs out, then shows and exports the ledger.
	Run(ctx context.Context, cfg *RunConfig) error
	State() session.State
}

// Listener produces one transcribed utterance per call. An empty string
// means nothing was heard; io.EOF means no more input will arrive.
type Listener interface {
	Listen(ctx context.Context) (string, error)
}
