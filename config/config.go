// Package config provides configuration loading for the grocery ledger.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Lexicon    LexiconConfig    `yaml:"lexicon"`
	Wake       WakeConfig       `yaml:"wake"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Export     ExportConfig     `yaml:"export"`
	Speech     SpeechConfig     `yaml:"speech"`
	Translator TranslatorConfig `yaml:"translator"`
	Speaker    SpeakerConfig    `yaml:"speaker"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Events     EventsConfig     `yaml:"events"`
}

type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
}

type LexiconConfig struct {
	// Path is an optional YAML table merged onto the built-in lexicon
	Path string `yaml:"path"`
	// Watch reloads Path when it changes
	Watch bool `yaml:"watch"`
}

type WakeConfig struct {
	// MaxDistance is the Levenshtein tolerance for wake phrases (0 = exact)
	MaxDistance int `yaml:"max_distance"`
}

type LedgerConfig struct {
	// Path is the YAML file holding the ledger (empty = memory only)
	Path string `yaml:"path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// SpeechConfig configures microphone capture and whisper transcription
type SpeechConfig struct {
	Model         string        `yaml:"model"`
	Language      string        `yaml:"language"`
	QuietTime     time.Duration `yaml:"quiet_time"`
	ListenTimeout time.Duration `yaml:"listen_timeout"`
	PhraseLimit   time.Duration `yaml:"phrase_limit"`
	// DumpDir, when set, keeps a wav file of every captured utterance
	DumpDir string `yaml:"dump_dir"`
}

type TranslatorConfig struct {
	// APIHost of a LibreTranslate compatible server (empty = no translation)
	APIHost string        `yaml:"api_host"`
	Source  string        `yaml:"source"`
	Timeout time.Duration `yaml:"timeout"`
}

type SpeakerConfig struct {
	// Command is the TTS program (empty = print phrases only)
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	// Player plays the silence preamble before each phrase (empty = none)
	Player      []string `yaml:"player"`
	SilencePath string   `yaml:"silence_path"`
}

type MetricsConfig struct {
	// Listen is the address for /metrics (empty = disabled)
	Listen string `yaml:"listen"`
}

type EventsConfig struct {
	// NATSURL enables ledger events when set
	NATSURL string `yaml:"nats_url"`
	Subject string `yaml:"subject"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level: "info",
		},
		Ledger: LedgerConfig{
			Path: "grocery_ledger.yaml",
		},
		Export: ExportConfig{
			Path: "grocery_list.csv",
		},
		Speech: SpeechConfig{
			QuietTime:     200 * time.Millisecond,
			ListenTimeout: 8 * time.Second,
			PhraseLimit:   10 * time.Second,
		},
		Translator: TranslatorConfig{
			Source:  "auto",
			Timeout: 5 * time.Second,
		},
		Speaker: SpeakerConfig{
			SilencePath: "silence.wav",
		},
		Events: EventsConfig{
			Subject: "grocery.ledger",
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	if c.Wake.MaxDistance < 0 {
		return fmt.Errorf("wake.max_distance must not be negative")
	}

	if c.Export.Path == "" {
		return fmt.Errorf("export.path is required")
	}

	if c.Lexicon.Watch && c.Lexicon.Path == "" {
		return fmt.Errorf("lexicon.watch requires lexicon.path")
	}

	if c.Speech.QuietTime <= 0 {
		return fmt.Errorf("speech.quiet_time must be positive")
	}

	if c.Speech.PhraseLimit < 0 || c.Speech.ListenTimeout < 0 {
		return fmt.Errorf("speech timeouts must not be negative")
	}

	if len(c.Speaker.Player) > 0 && c.Speaker.Command == "" {
		return fmt.Errorf("speaker.player requires speaker.command")
	}

	return nil
}

// OverrideLogLevel applies a command line log level and checks it. An empty
// level keeps the configured one.
func (c *Config) OverrideLogLevel(level string) error {
	if level == "" {
		return nil
	}

	previous := c.Log.Level
	c.Log.Level = level

	if err := c.Validate(); err != nil {
		c.Log.Level = previous

		return err
	}

	return nil
}

// LoadFromFile loads configuration from a YAML file on fileSys
func LoadFromFile(fileSys afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fileSys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(fileSys afero.Fs, path string) error {
	if err := fileSys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(fileSys, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}

	if other.Lexicon.Path != "" {
		c.Lexicon.Path = other.Lexicon.Path
	}
	if other.Lexicon.Watch {
		c.Lexicon.Watch = true
	}

	if other.Wake.MaxDistance != 0 {
		c.Wake.MaxDistance = other.Wake.MaxDistance
	}

	if other.Ledger.Path != "" {
		c.Ledger.Path = other.Ledger.Path
	}

	if other.Export.Path != "" {
		c.Export.Path = other.Export.Path
	}

	// Speech
	if other.Speech.Model != "" {
		c.Speech.Model = other.Speech.Model
	}
	if other.Speech.Language != "" {
		c.Speech.Language = other.Speech.Language
	}
	if other.Speech.QuietTime != 0 {
		c.Speech.QuietTime = other.Speech.QuietTime
	}
	if other.Speech.ListenTimeout != 0 {
		c.Speech.ListenTimeout = other.Speech.ListenTimeout
	}
	if other.Speech.PhraseLimit != 0 {
		c.Speech.PhraseLimit = other.Speech.PhraseLimit
	}
	if other.Speech.DumpDir != "" {
		c.Speech.DumpDir = other.Speech.DumpDir
	}

	// Translator
	if other.Translator.APIHost != "" {
		c.Translator.APIHost = other.Translator.APIHost
	}
	if other.Translator.Source != "" {
		c.Translator.Source = other.Translator.Source
	}
	if other.Translator.Timeout != 0 {
		c.Translator.Timeout = other.Translator.Timeout
	}

	// Speaker
	if other.Speaker.Command != "" {
		c.Speaker.Command = other.Speaker.Command
		c.Speaker.Args = other.Speaker.Args
	}
	if len(other.Speaker.Player) > 0 {
		c.Speaker.Player = other.Speaker.Player
	}
	if other.Speaker.SilencePath != "" {
		c.Speaker.SilencePath = other.Speaker.SilencePath
	}

	if other.Metrics.Listen != "" {
		c.Metrics.Listen = other.Metrics.Listen
	}

	// Events
	if other.Events.NATSURL != "" {
		c.Events.NATSURL = other.Events.NATSURL
	}
	if other.Events.Subject != "" {
		c.Events.Subject = other.Events.Subject
	}
}
