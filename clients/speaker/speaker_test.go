package speaker

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-audio/wav"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

func TestLogSpeaker(t *testing.T) {
	var out bytes.Buffer

	s := NewLog(&out)
	s.Speak("Goodbye")
	s.Speak("")

	assert.Equal(t, "VOICE: Goodbye\n", out.String())
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{})
	assert.Error(t, err)

	_, err = New(&Config{Command: "espeak-ng", Player: []string{"aplay"}})
	assert.Error(t, err, "player without a filesystem")
}

func TestCommandSpeaker(t *testing.T) {
	t.Run("runs the tts command with the phrase last", func(t *testing.T) {
		var calls []call
		var out bytes.Buffer

		s, err := New(&Config{
			Command: "espeak-ng",
			Args:    []string{"-v", "en"},
			Out:     &out,
			Runner: func(name string, args ...string) error {
				calls = append(calls, call{name: name, args: args})
				return nil
			},
		})
		require.NoError(t, err)

		s.Speak("2 kg aloo added")

		require.Len(t, calls, 1)
		assert.Equal(t, "espeak-ng", calls[0].name)
		assert.Equal(t, []string{"-v", "en", "2 kg aloo added"}, calls[0].args)
		assert.Equal(t, "VOICE: 2 kg aloo added\n", out.String())
	})

	t.Run("plays the silence preamble first and creates it once", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		var calls []call

		s, err := New(&Config{
			Command:     "espeak-ng",
			Player:      []string{"aplay", "-q"},
			SilencePath: "silence.wav",
			FileSys:     fs,
			Out:         &bytes.Buffer{},
			Runner: func(name string, args ...string) error {
				calls = append(calls, call{name: name, args: args})
				return nil
			},
		})
		require.NoError(t, err)

		s.Speak("one")
		s.Speak("two")

		require.Len(t, calls, 4)
		assert.Equal(t, "aplay", calls[0].name)
		assert.Equal(t, "-q", calls[0].args[0])
		assert.Equal(t, "espeak-ng", calls[1].name)

		exists, err := afero.Exists(fs, "silence.wav")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("tts failures are swallowed", func(t *testing.T) {
		s, err := New(&Config{
			Command: "missing-tts",
			Out:     &bytes.Buffer{},
			Runner: func(string, ...string) error {
				return errors.New("not found")
			},
		})
		require.NoError(t, err)

		assert.NotPanics(t, func() { s.Speak("hello") })
	})
}

func TestEnsureSilence(t *testing.T) {
	fs := afero.NewMemMapFs()

	require.NoError(t, EnsureSilence(fs, "silence.wav"))

	f, err := fs.Open("silence.wav")
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)

	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 8000, len(buf.Data))
	assert.Equal(t, 16000, buf.Format.SampleRate)

	for _, v := range buf.Data {
		if v != 0 {
			t.Fatalf("expected silence, got sample %d", v)
		}
	}

	t.Run("existing file is left alone", func(t *testing.T) {
		require.NoError(t, afero.WriteFile(fs, "other.wav", []byte("keep"), 0o644))
		require.NoError(t, EnsureSilence(fs, "other.wav"))

		data, _ := afero.ReadFile(fs, "other.wav")
		assert.Equal(t, "keep", string(data))
	})
}
