package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvModelPath overrides the configured model artifact path.
	EnvModelPath = "EIDOS_MODEL_PATH"
	// EnvTokenizerPath overrides the configured tokenizer path.
	EnvTokenizerPath = "EIDOS_TOKENIZER_PATH"

	// LocalConfigFile is the per-project config file name.
	LocalConfigFile = "eidos.json"
	// ConfigDir is the directory name under ~/.config.
	ConfigDir = "eidos"
	// ConfigFile is the user config file name.
	ConfigFile = "config.json"
)

// FileSystem abstracts file and environment access for testability.
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Stat(path string) (os.FileInfo, error)
	Getenv(key string) string
}

// OSFileSystem implements FileSystem using the real OS.
type OSFileSystem struct{}

func (OSFileSystem) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) Getenv(key string) string {
	return os.Getenv(key)
}

// Loader handles configuration loading with injected dependencies.
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem.
func NewLoader() *Loader {
	return &Loader{fs: OSFileSystem{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing).
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load builds the effective configuration. Sources are merged from lowest to
/// highest precedence:
//
//  1. built-in defaults
//  2. user config file (~/.config/eidos/config.json)
//  3. local config file (./eidos.json)
//  4. environment variables (EIDOS_MODEL_PATH, EIDOS_TOKENIZER_PATH)
//
// Missing files are fine; a file that exists but does not parse is an error.
// Present keys overwrite lower-precedence values, including explicit zeros,
// while missing keys leave them untouched.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if homeDir, err := l.fs.UserHomeDir(); err == nil {
		userPath := filepath.Join(homeDir, ".config", ConfigDir, ConfigFile)
		if err := l.mergeFile(userPath, cfg); err != nil {
			return nil, err
		}
	}

	if err := l.mergeFile(LocalConfigFile, cfg); err != nil {
		return nil, err
	}

	if v := l.fs.Getenv(EnvModelPath); v != "" {
		cfg.Model.ModelPath = v
	}
	if v := l.fs.Getenv(EnvTokenizerPath); v != "" {
		cfg.Model.TokenizerPath = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *Loader) mergeFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// Load is a convenience function using the default loader.
func Load() (*Config, error) {
	return NewLoader().Load()
}
