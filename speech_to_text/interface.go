package speech_to_text

import (
	"github.com/go-audio/audio"
	"github.com/spf13/afero"
)

type Interface interface {
	// Process transcribes a 16 kHz mono buffer.
	Process(wavBuffer audio.Buffer) ([]Segment, error)
	// ProcessFile decodes a wav file and transcribes it.
	ProcessFile(fileSys afero.Fs, path string) ([]Segment, error)
}
