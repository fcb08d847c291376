// Package command turns a normalized line into one ledger command.
package command

import (
	"errors"
	"fmt"

	"grocery-voice-ledger/extractor"
)

// Kind identifies a command variant.
type Kind string

const (
	KindNone                   Kind = "none"
	KindExit                   Kind = "exit"
	KindWake                   Kind = "wake"
	KindDeleteAll              Kind = "delete_all"
	KindDeleteLast             Kind = "delete_last"
	KindDeleteByName           Kind = "delete_by_name"
	KindUpdateLastTo           Kind = "update_last_to"
	KindUpdateNamedTo          Kind = "update_named_to"
	KindRename                 Kind = "rename"
	KindUpdateNamedInteractive Kind = "update_named_interactive"
	KindExport                 Kind = "export"
	KindAddItem                Kind = "add_item"
)

var (
	// ErrUnrecognized means the line matched no command pattern.
	ErrUnrecognized = errors.New("format not understood")
	// ErrExtractionFailed means a command needed a quantity/unit/item triple and none was found.
	ErrExtractionFailed = errors.New("no quantity, unit and item found")
	// ErrEmptyArgument means a delete or update target resolved to an empty name.
	ErrEmptyArgument = errors.New("no item name given")
)

// Command is the result of classifying one utterance. Which fields are set
// depends on Kind:
//
//	AddItem, UpdateLastTo   Entry
//	UpdateNamedTo           Target, Entry
//	Rename                  Target, NewName
//	DeleteByName            Target
//	UpdateNamedInteractive  Target
type Command struct {
	Kind    Kind
	Entry   extractor.Entry
	Target  string
	NewName string
}

// Mutates reports whether the command changes the ledger.
func (c Command) Mutates() bool {
	switch c.Kind {
	case KindAddItem, KindDeleteAll, KindDeleteLast, KindDeleteByName,
		KindUpdateLastTo, KindUpdateNamedTo, KindRename:
		return true
	default:
		return false
	}
}

// ClassifyError reports which command was being built when classification
// failed. Err is one of the package sentinels.
type ClassifyError struct {
	Kind Kind
	Err  error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *ClassifyError) Unwrap() error {
	return e.Err
}

func classifyErr(kind Kind, err error) error {
	return &ClassifyError{Kind: kind, Err: err}
}
