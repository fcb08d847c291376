package speaker

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
)

type logSpeaker struct {
	out io.Writer
}

// NewLog returns a speaker that prints each phrase as "VOICE: <text>".
func NewLog(out io.Writer) Interface {
	if out == nil {
		out = os.Stdout
	}

	return &logSpeaker{out: out}
}

func (s *logSpeaker) Speak(text string) {
	if text == "" {
		return
	}

	fmt.Fprintf(s.out, "VOICE: %s\n", text)
}

// Runner runs an external program to completion.
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

type commandSpeaker struct {
	command  string
	args     []string
	player   []string
	silence  string
	fileSys  afero.Fs
	echo     Interface
	run      Runner
	logger   *slog.Logger
	prepared bool
}

type Config struct {
	// Command is the TTS program; the phrase is appended as its last argument.
	Command string
	Args    []string
	// Player plays the silence preamble, e.g. ["aplay", "-q"]. Empty disables the preamble.
	Player []string
	// SilencePath is where the preamble wav is kept.
	SilencePath string
	FileSys     afero.Fs
	Out         io.Writer
	Runner      Runner
	Logger      *slog.Logger
}

// New returns a speaker that shells out to a TTS program. Some Bluetooth
// speakers clip the first syllable after idling, so a short silence is played
// first when a player is configured.
func New(cfg *Config) (Interface, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	if cfg.Command == "" {
		return nil, fmt.Errorf("command is empty")
	}

	if len(cfg.Player) > 0 && cfg.FileSys == nil {
		return nil, fmt.Errorf("fileSys is nil")
	}

	run := cfg.Runner
	if run == nil {
		run = execRunner
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	silence := cfg.SilencePath
	if silence == "" {
		silence = "silence.wav"
	}

	return &commandSpeaker{
		command: cfg.Command,
		args:    cfg.Args,
		player:  cfg.Player,
		silence: silence,
		fileSys: cfg.FileSys,
		echo:    NewLog(cfg.Out),
		run:     run,
		logger:  logger,
	}, nil
}

func (s *commandSpeaker) Speak(text string) {
	if text == "" {
		return
	}

	s.echo.Speak(text)

	if len(s.player) > 0 {
		if err := s.playSilence(); err != nil {
			s.logger.Warn("Silence preamble failed", slog.String("error", err.Error()))
		}
	}

	args := append(append([]string{}, s.args...), text)

	if err := s.run(s.command, args...); err != nil {
		s.logger.Warn("TTS error", slog.String("command", s.command), slog.String("error", err.Error()))
	}
}

func (s *commandSpeaker) playSilence() error {
	if !s.prepared {
		if err := EnsureSilence(s.fileSys, s.silence); err != nil {
			return err
		}

		s.prepared = true
	}

	path := s.silence
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	args := append(append([]string{}, s.player[1:]...), path)

	if err := s.run(s.player[0], args...); err != nil {
		return errors.Join(fmt.Errorf("play %s", path), err)
	}

	return nil
}
