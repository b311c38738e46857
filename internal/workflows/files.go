package workflows

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/keystore"
)

// checkInputs applies the preconditions shared by encrypt and decrypt:
// the input must be an existing regular file and the key file must exist.
func checkInputs(path string, key keystore.KeyFile) error {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", kerrors.ErrIOFailure, path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", kerrors.ErrIOFailure, path)
	}

	if !key.Exists() {
		return fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, key.Path)
	}
	return nil
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrIOFailure, path, err)
	}
	return data, nil
}

// writeFile writes the whole output at once. A crash mid-write leaves a
// truncated file behind; nothing here tries to recover it.
func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", kerrors.ErrIOFailure, path, err)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadKey reads the key file and warns when it is readable by others.
func (s *Session) loadKey(key keystore.KeyFile) ([]byte, error) {
	if info, err := os.Stat(key.Path); err == nil && info.Mode().Perm()&0077 != 0 {
		s.Logger.WarnfAlways("Key file %s has overly permissive permissions (%o), consider running 'chmod 600 %s'",
			key.Path, info.Mode().Perm(), key.Path)
	}
	return s.Store.Load(key)
}
