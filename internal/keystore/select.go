package keystore

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// SelectOptions describes how to resolve the key for an operation.
type SelectOptions struct {
	// Path is an explicit key file. It wins over everything else.
	Path string

	// Interactive prompts for a numbered choice on Out, reading from In.
	Interactive bool

	// PreferID picks the key with this ID when neither Path nor Interactive
	// is set and such a key exists. Decrypt passes the tag of the ciphertext.
	PreferID string

	In  io.Reader
	Out io.Writer
}

// Select resolves a key file. In order: the explicit path, an interactive
// choice, the preferred ID, then the latest key.
func (s *Store) Select(opts SelectOptions) (KeyFile, error) {
	var kf KeyFile

	switch {
	case opts.Path != "":
		kf = KeyFile{Path: opts.Path}
	case opts.Interactive:
		chosen, err := s.prompt(opts.In, opts.Out)
		if err != nil {
			return KeyFile{}, err
		}
		kf = chosen
	default:
		if opts.PreferID != "" {
			found, ok, err := s.Find(opts.PreferID)
			if err != nil {
				return KeyFile{}, err
			}
			if ok {
				return found, nil
			}
		}

		latest, ok, err := s.Latest()
		if err != nil {
			return KeyFile{}, err
		}
		if !ok {
			return KeyFile{}, kerrors.ErrNoKeys
		}
		kf = latest
	}

	if !kf.Exists() {
		return KeyFile{}, fmt.Errorf("%w: %s", kerrors.ErrKeyNotFound, kf.Path)
	}
	return kf, nil
}

// prompt lists the keys and reads a 1-based choice. An empty line means
// the latest key; invalid input re-prompts until a choice or EOF.
func (s *Store) prompt(in io.Reader, out io.Writer) (KeyFile, error) {
	keys, err := s.List()
	if err != nil {
		return KeyFile{}, err
	}
	if len(keys) == 0 {
		return KeyFile{}, kerrors.ErrNoKeys
	}

	fmt.Fprintln(out, "Select a key from the list below:")
	for i, k := range keys {
		fmt.Fprintf(out, "%d. %s\n", i+1, k.Name())
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprintf(out, "Enter number (1-%d) or press Enter for latest: ", len(keys))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			if err := scanner.Err(); err != nil {
				return KeyFile{}, fmt.Errorf("%w: reading selection: %v", kerrors.ErrIOFailure, err)
			}
			return KeyFile{}, kerrors.ErrNoKeySelected
		}

		choice := strings.TrimSpace(scanner.Text())
		if choice == "" {
			return keys[len(keys)-1], nil
		}
		if isDigits(choice) {
			if n, err := strconv.Atoi(choice); err == nil && n >= 1 && n <= len(keys) {
				return keys[n-1], nil
			}
		}
		fmt.Fprintln(out, "Invalid choice, try again.")
	}
}

// isDigits reports whether s is made of ASCII digits only, so signs and
// spaces inside the answer are rejected.
func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
