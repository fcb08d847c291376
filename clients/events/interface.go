package events

import "context"

// Publisher announces ledger changes to other services.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}
