package configs

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// Settings is the resolved configuration for one session. Paths are absolute.
// It is built once at startup and handed to the core components.
type Settings struct {
	HomeDir    string
	ConfigPath string
	KeysDir    string
	LogsDir    string
	KeyPrefix  string
	Cipher     string
	Audit      bool
}

// Resolve turns a Config into Settings rooted at homeDir.
func Resolve(homeDir, configPath string, cfg Config) (*Settings, error) {
	home, err := filepath.Abs(homeDir)
	if err != nil {
		return nil, fmt.Errorf("resolving home directory %s: %w", homeDir, err)
	}

	return &Settings{
		HomeDir:    home,
		ConfigPath: configPath,
		KeysDir:    resolveDir(home, cfg.KeysDir),
		LogsDir:    resolveDir(home, cfg.LogsDir),
		KeyPrefix:  cfg.KeyPrefix,
		Cipher:     cfg.Cipher,
		Audit:      cfg.Audit,
	}, nil
}

// LoadSettings loads the configuration file and resolves it against homeDir.
// An empty configPath means <homeDir>/cryptora.toml.
func LoadSettings(homeDir, configPath string) (*Settings, error) {
	if configPath == "" {
		configPath = filepath.Join(homeDir, FileName)
	}

	cfg, err := Load(configPath)
	if err != nil {
		return nil, err
	}

	return Resolve(homeDir, configPath, cfg)
}

// EnsureDirs creates the keys and logs directories if they are missing.
func (s *Settings) EnsureDirs() error {
	for _, dir := range []string{s.KeysDir, s.LogsDir} {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("%w: creating %s: %v", kerrors.ErrIOFailure, dir, err)
		}
	}
	return nil
}

func resolveDir(home, dir string) string {
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Join(home, dir)
}
