package speaker

import (
	"fmt"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/spf13/afero"
)

const (
	silenceSampleRate = 16000
	silenceBitDepth   = 16
	silenceSeconds    = 0.5
	pcmFormat         = 1
)

// EnsureSilence writes a half second of 16 kHz mono silence to path unless
// the file already exists.
func EnsureSilence(fileSys afero.Fs, path string) error {
	exists, err := afero.Exists(fileSys, path)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	file, err := fileSys.Create(path)
	if err != nil {
		return fmt.Errorf("create silence file: %w", err)
	}

	defer file.Close()

	enc := wav.NewEncoder(file, silenceSampleRate, silenceBitDepth, 1, pcmFormat)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  silenceSampleRate,
		},
		Data:           make([]int, int(silenceSampleRate*silenceSeconds)),
		SourceBitDepth: silenceBitDepth,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write silence: %w", err)
	}

	return enc.Close()
}
