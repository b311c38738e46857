package configs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// FileName is the default configuration file name, looked up in the home directory.
const FileName = "cryptora.toml"

// Cipher names accepted in the configuration.
const (
	CipherSecretbox         = "secretbox"
	CipherXChaCha20Poly1305 = "xchacha20poly1305"
)

// Config is the on-disk configuration.
type Config struct {
	// KeysDir holds key files. Relative paths are resolved against the home directory.
	KeysDir string `toml:"keys_dir"`

	// LogsDir holds the daily activity logs.
	LogsDir string `toml:"logs_dir"`

	// KeyPrefix is the leading part of generated key file names.
	KeyPrefix string `toml:"key_prefix"`

	// Cipher selects the algorithm used for new ciphertexts.
	Cipher string `toml:"cipher"`

	// Audit enables the activity log.
	Audit bool `toml:"audit"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		KeysDir:   "keys",
		LogsDir:   "logs",
		KeyPrefix: "cryptora",
		Cipher:    CipherSecretbox,
		Audit:     true,
	}
}

// Load reads the configuration at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	if err := LoadTOML(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := SaveTOML(path, cfg); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrIOFailure, path, err)
	}
	return nil
}

// Validate checks the values that would otherwise break key naming or cipher selection.
func (c Config) Validate() error {
	if c.KeysDir == "" {
		return fmt.Errorf("%w: keys_dir must not be empty", kerrors.ErrInvalidConfig)
	}
	if c.LogsDir == "" {
		return fmt.Errorf("%w: logs_dir must not be empty", kerrors.ErrInvalidConfig)
	}
	if c.KeyPrefix == "" || strings.ContainsAny(c.KeyPrefix, `/\`) {
		return fmt.Errorf("%w: key_prefix %q must be a non-empty file name", kerrors.ErrInvalidConfig, c.KeyPrefix)
	}
	// The prefix ends up in ciphertext names, where it must not look like a marker.
	if strings.Contains(c.KeyPrefix, ".enc_") {
		return fmt.Errorf("%w: key_prefix %q must not contain .enc_", kerrors.ErrInvalidConfig, c.KeyPrefix)
	}
	switch c.Cipher {
	case CipherSecretbox, CipherXChaCha20Poly1305:
	default:
		return fmt.Errorf("%w: cipher %q (want %s or %s)", kerrors.ErrInvalidConfig, c.Cipher, CipherSecretbox, CipherXChaCha20Poly1305)
	}
	return nil
}
