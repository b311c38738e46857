package keystore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// Extension is the file extension of key files.
const Extension = ".key"

const timestampLayout = "20060102_150405"

// KeyGenerator produces new keys in their stored form.
type KeyGenerator interface {
	GenerateKey() ([]byte, error)
}

// KeyFile is a handle to a key file on disk.
type KeyFile struct {
	Path string
}

// Name returns the base name of the key file.
func (k KeyFile) Name() string {
	return filepath.Base(k.Path)
}

// ID returns the base name without extension. It tags ciphertext names.
func (k KeyFile) ID() string {
	name := k.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// Exists reports whether the key file is present.
func (k KeyFile) Exists() bool {
	info, err := os.Stat(k.Path)
	return err == nil && !info.IsDir()
}

// Store is a directory of key files.
type Store struct {
	dir    string
	prefix string
	gen    KeyGenerator
	now    func() time.Time
}

// New returns a Store over settings.KeysDir generating keys with gen.
func New(settings *configs.Settings, gen KeyGenerator) *Store {
	return &Store{
		dir:    settings.KeysDir,
		prefix: settings.KeyPrefix,
		gen:    gen,
		now:    time.Now,
	}
}

// Dir returns the keys directory.
func (s *Store) Dir() string {
	return s.dir
}

// Generate creates a new key file named after the current local time.
func (s *Store) Generate() (KeyFile, error) {
	key, err := s.gen.GenerateKey()
	if err != nil {
		return KeyFile{}, err
	}

	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return KeyFile{}, fmt.Errorf("%w: creating %s: %v", kerrors.ErrIOFailure, s.dir, err)
	}

	name := fmt.Sprintf("%s_%s%s", s.prefix, s.now().Format(timestampLayout), Extension)
	kf := KeyFile{Path: filepath.Join(s.dir, name)}

	f, err := os.OpenFile(kf.Path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return KeyFile{}, fmt.Errorf("%w: key file %s already exists, wait a second and retry", kerrors.ErrIOFailure, kf.Path)
		}
		return KeyFile{}, fmt.Errorf("%w: creating %s: %v", kerrors.ErrIOFailure, kf.Path, err)
	}

	if _, err := f.Write(key); err != nil {
		f.Close()
		return KeyFile{}, fmt.Errorf("%w: writing %s: %v", kerrors.ErrIOFailure, kf.Path, err)
	}
	if err := f.Close(); err != nil {
		return KeyFile{}, fmt.Errorf("%w: writing %s: %v", kerrors.ErrIOFailure, kf.Path, err)
	}

	return kf, nil
}

// List returns all key files sorted by name, oldest first.
// A missing directory is an empty store.
func (s *Store) List() ([]KeyFile, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", kerrors.ErrIOFailure, s.dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	keys := make([]KeyFile, len(names))
	for i, name := range names {
		keys[i] = KeyFile{Path: filepath.Join(s.dir, name)}
	}
	return keys, nil
}

// Latest returns the key file with the greatest name.
func (s *Store) Latest() (KeyFile, bool, error) {
	keys, err := s.List()
	if err != nil || len(keys) == 0 {
		return KeyFile{}, false, err
	}
	return keys[len(keys)-1], true, nil
}

// Find returns the key file whose ID is id.
func (s *Store) Find(id string) (KeyFile, bool, error) {
	keys, err := s.List()
	if err != nil {
		return KeyFile{}, false, err
	}
	for _, k := range keys {
		if k.ID() == id {
			return k, true, nil
		}
	}
	return KeyFile{}, false, nil
}

// Load reads the raw contents of a key file. The bytes are not validated;
// a malformed key is rejected later by the cipher.
func (s *Store) Load(k KeyFile) ([]byte, error) {
	data, err := os.ReadFile(k.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrKeyFileNotFound, k.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", kerrors.ErrIOFailure, k.Path, err)
	}
	return data, nil
}
