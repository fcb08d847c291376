package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	// ProjectConfigFile is looked up in the working directory
	ProjectConfigFile = "grocery.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/grocery-voice-ledger"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	fileSys afero.Fs
	homeDir string
	logger  *slog.Logger
}

// NewLoader creates a new configuration loader. homeDir may be empty to skip
// the user config.
func NewLoader(fileSys afero.Fs, homeDir string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}

	return &Loader{fileSys: fileSys, homeDir: homeDir, logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/grocery-voice-ledger/config.yaml)
// 3. Project config (grocery.yaml in the working directory)
// 4. explicit, when non-empty (--config)
func (l *Loader) Load(explicit string) (*Config, error) {
	config := DefaultConfig()

	if l.homeDir != "" {
		l.mergeFile(config, filepath.Join(l.homeDir, UserConfigDir, UserConfigFile))
	}

	l.mergeFile(config, ProjectConfigFile)

	if explicit != "" {
		other, err := LoadFromFile(l.fileSys, explicit)
		if err != nil {
			return nil, err
		}

		l.logger.Debug("Loaded config", slog.String("path", explicit))
		config.Merge(other)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (l *Loader) mergeFile(config *Config, path string) {
	other, err := LoadFromFile(l.fileSys, path)
	if err == nil {
		l.logger.Debug("Loaded config", slog.String("path", path))
		config.Merge(other)

		return
	}

	if errors.Is(err, os.ErrNotExist) {
		return
	}

	l.logger.Warn("Failed to load config", slog.String("path", path), slog.String("error", err.Error()))
}
