package workflows

import (
	"context"

	"github.com/PolarWolf314/cryptora/internal/keystore"
	"github.com/PolarWolf314/cryptora/internal/secrets"
)

// BatchOptions configures Encrypt and Decrypt over several files.
type BatchOptions struct {
	// FilePatterns are literal paths or globs (** supported).
	FilePatterns []string

	// Select resolves the key. Explicit and interactive choices are made
	// once for the whole batch; otherwise decrypt prefers the key each
	// file is tagged with and falls back to the latest key.
	Select keystore.SelectOptions

	// DryRun runs the checks without writing.
	DryRun bool
}

// FileOutcome is the result of one file in a batch. Exactly one of
// Encrypted, Decrypted and Err is set.
type FileOutcome struct {
	File      string
	Encrypted *EncryptResult
	Decrypted *DecryptResult
	Err       error
}

// BatchResult lists per-file outcomes in input order.
type BatchResult struct {
	Outcomes []FileOutcome
}

// Failed returns the outcomes that ended in an error.
func (r *BatchResult) Failed() []FileOutcome {
	var failed []FileOutcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			failed = append(failed, o)
		}
	}
	return failed
}

// Encrypt encrypts every file matched by opts.FilePatterns with one key.
// A failing file does not stop the others. The returned error covers only
// pattern and key resolution.
func Encrypt(ctx context.Context, s *Session, opts BatchOptions) (*BatchResult, error) {
	files, err := secrets.ResolveFiles(opts.FilePatterns, true)
	if err != nil {
		return nil, err
	}

	key, err := s.Store.Select(opts.Select)
	if err != nil {
		return nil, err
	}
	s.Logger.Infof("Using key %s for %d file(s)", key.Path, len(files))

	result := &BatchResult{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		res, err := EncryptFile(ctx, s, EncryptOptions{FilePath: f, Key: key, DryRun: opts.DryRun})
		result.Outcomes = append(result.Outcomes, FileOutcome{File: f, Encrypted: res, Err: err})
	}
	return result, nil
}

// Decrypt decrypts every file matched by opts.FilePatterns.
// See Encrypt for error semantics.
func Decrypt(ctx context.Context, s *Session, opts BatchOptions) (*BatchResult, error) {
	files, err := secrets.ResolveFiles(opts.FilePatterns, false)
	if err != nil {
		return nil, err
	}

	perFile := opts.Select.Path == "" && !opts.Select.Interactive

	var shared keystore.KeyFile
	if !perFile {
		shared, err = s.Store.Select(opts.Select)
		if err != nil {
			return nil, err
		}
		s.Logger.Infof("Using key %s for %d file(s)", shared.Path, len(files))
	}

	result := &BatchResult{}
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		key := shared
		if perFile {
			sel := opts.Select
			sel.PreferID, _ = secrets.KeyIDFromPath(f)
			key, err = s.Store.Select(sel)
			if err != nil {
				return result, err
			}
		}

		res, err := DecryptFile(ctx, s, DecryptOptions{FilePath: f, Key: key, DryRun: opts.DryRun})
		result.Outcomes = append(result.Outcomes, FileOutcome{File: f, Decrypted: res, Err: err})
	}
	return result, nil
}
