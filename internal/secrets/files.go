package secrets

import (
	"fmt"
	"os"
	"strings"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/bmatcuk/doublestar/v4"
)

// ResolveFiles expands user-provided paths and globs into file paths.
// A pattern naming an existing regular file is used as is. Other literal
// paths are passed through untouched, even when missing, so the
// caller reports them as not found. Globs (with ** support) expand to
// regular files only; a glob matching nothing is ErrNoFilesFound.
// forEncryption keeps only plaintext names when true and only ciphertext
// names when false, applied to glob matches only. A malformed glob is
// ErrInvalidUsage.
func ResolveFiles(patterns []string, forEncryption bool) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		resolved, err := resolvePattern(pattern, forEncryption)
		if err != nil {
			return nil, err
		}

		for _, f := range resolved {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}

	return files, nil
}

func resolvePattern(pattern string, forEncryption bool) ([]string, error) {
	// An existing file is taken literally, even if its name has glob characters.
	if info, err := os.Stat(pattern); err == nil && info.Mode().IsRegular() {
		return []string{pattern}, nil
	}
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid glob pattern %q: %v", kerrors.ErrInvalidUsage, pattern, err)
	}

	var filtered []string
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if IsEncryptedPath(m) == forEncryption {
			continue
		}
		filtered = append(filtered, m)
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNoFilesFound, pattern)
	}

	return filtered, nil
}
