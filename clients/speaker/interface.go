package speaker

// Interface is the speech output. Speak is fire-and-forget: failures are
// logged, never returned.
type Interface interface {
	Speak(text string)
}
