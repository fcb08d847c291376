package speech_extraction

import "context"

type Interface interface {
	// Listen captures one utterance from the microphone and returns its
	// transcription. It returns "" when nothing was said before the listen
	// timeout.
	Listen(ctx context.Context) (string, error)
	// Close releases the audio device.
	Close() error
}
