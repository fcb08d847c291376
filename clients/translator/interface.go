package translator

import "context"

// Translator turns foreign-language text into English. It is best-effort:
// on any failure the input comes back unchanged.
type Translator interface {
	ToEnglish(ctx context.Context, text string) string
}
