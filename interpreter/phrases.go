package interpreter

import (
	"errors"
	"fmt"

	"grocery-voice-ledger/command"
	"grocery-voice-ledger/extractor"
)

const (
	phraseReady          = "System ready. Say hello device."
	phraseAwake          = "I am ready to make list"
	phraseGoodbye        = "Goodbye"
	phraseAllDeleted     = "All data deleted"
	phraseNoData         = "No data found"
	phraseLastUpdated    = "Last item updated"
	phraseNoItem         = "No item found"
	phraseNoExportData   = "No data to export"
	phraseExportFailed   = "Export failed"
	phraseLedgerFailed   = "Sorry, the list could not be saved"
	phraseFormatUnknown  = "Format not understood. Say like two kilo aloo."
	phraseNoDeleteName   = "No item name given to delete"
	phraseNoUpdateName   = "No item name given to update"
	phraseUpdateLastHint = "Unable to update last, say like update last to two kilo aloo"
	phraseUpdateUnclear  = "Could not understand update command"
	phraseUpdateFailed   = "Update failed. Say like two kilo aloo."
)

func phraseAdded(e extractor.Entry) string {
	return fmt.Sprintf("%s added", e)
}

func phraseDeletedLast(item string) string {
	return fmt.Sprintf("Deleted last item %s", item)
}

func phraseDeleted(n int) string {
	return fmt.Sprintf("%d item deleted", n)
}

func phraseUpdated(n int) string {
	return fmt.Sprintf("%d item updated", n)
}

func phraseRenamed(n int, name string) string {
	return fmt.Sprintf("%d item renamed to %s", n, name)
}

func phraseAskValue(target string) string {
	return fmt.Sprintf("Tell me the new value for %s", target)
}

func phraseExported(path string) string {
	return fmt.Sprintf("CSV file %s created", path)
}

// phraseForError picks the corrective hint for a classification failure.
func phraseForError(err error) string {
	var ce *command.ClassifyError
	if !errors.As(err, &ce) {
		return phraseFormatUnknown
	}

	switch {
	case errors.Is(err, command.ErrEmptyArgument) && ce.Kind == command.KindDeleteByName:
		return phraseNoDeleteName
	case errors.Is(err, command.ErrEmptyArgument):
		return phraseNoUpdateName
	case ce.Kind == command.KindUpdateLastTo:
		return phraseUpdateLastHint
	case ce.Kind == command.KindUpdateNamedTo:
		return phraseUpdateUnclear
	case ce.Kind == command.KindUpdateNamedInteractive:
		return phraseUpdateFailed
	default:
		return phraseFormatUnknown
	}
}
