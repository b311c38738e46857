package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cryptora/internal/audit"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/keystore"
	"github.com/PolarWolf314/cryptora/internal/secrets"
)

// EncryptOptions configures the encryption of one file.
type EncryptOptions struct {
	// FilePath is the plaintext file.
	FilePath string

	// Key is the key file to encrypt with.
	Key keystore.KeyFile

	// DryRun runs the checks and reports the output path without writing.
	DryRun bool
}

// EncryptResult contains the outcome of encrypting one file.
type EncryptResult struct {
	// SourceFile is the plaintext that was read.
	SourceFile string

	// EncryptedFile is <SourceFile>.enc_<key id>.
	EncryptedFile string

	// Key is the key file that was used.
	Key keystore.KeyFile

	// Overwritten reports that EncryptedFile existed before.
	Overwritten bool

	// DryRun indicates nothing was written.
	DryRun bool
}

// EncryptFile encrypts a whole file with the given key file and writes the
// ciphertext next to it. The plaintext is left untouched.
//
// Returns ErrFileNotFound if the input does not exist.
// Returns ErrKeyNotFound if the key file does not exist.
// Returns ErrAlreadyEncrypted if the input path contains ".enc_"; nothing is written.
// Returns ErrInvalidKey if the key file does not hold a valid key.
func EncryptFile(ctx context.Context, s *Session, opts EncryptOptions) (*EncryptResult, error) {
	result, err := encryptFile(s, opts)

	entry := audit.Entry{Operation: "encrypt", File: opts.FilePath, Key: opts.Key.Path}
	if err != nil {
		s.Logger.Errorf("Encrypting %s failed: %v", opts.FilePath, err)
		entry.Outcome = audit.OutcomeFailed
		entry.Error = err.Error()
	} else {
		entry.Outcome = audit.OutcomeOK
		entry.Output = result.EncryptedFile
	}
	if !opts.DryRun {
		s.Audit.Log(entry)
	}

	return result, err
}

func encryptFile(s *Session, opts EncryptOptions) (*EncryptResult, error) {
	if err := checkInputs(opts.FilePath, opts.Key); err != nil {
		return nil, err
	}
	if secrets.IsEncryptedPath(opts.FilePath) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrAlreadyEncrypted, opts.FilePath)
	}

	result := &EncryptResult{
		SourceFile:    opts.FilePath,
		EncryptedFile: secrets.EncryptedPath(opts.FilePath, opts.Key.ID()),
		Key:           opts.Key,
		DryRun:        opts.DryRun,
	}
	result.Overwritten = exists(result.EncryptedFile)

	if opts.DryRun {
		return result, nil
	}

	key, err := s.loadKey(opts.Key)
	if err != nil {
		return nil, err
	}

	plaintext, err := readFile(opts.FilePath)
	if err != nil {
		return nil, err
	}
	s.Logger.Debugf("Encrypting %d bytes from %s with %s", len(plaintext), opts.FilePath, s.Cipher.Name())

	ciphertext, err := s.Cipher.Encrypt(key, plaintext)
	if err != nil {
		return nil, err
	}

	if err := writeFile(result.EncryptedFile, ciphertext); err != nil {
		return nil, err
	}

	s.Logger.Infof("Encrypted %s -> %s", opts.FilePath, result.EncryptedFile)
	return result, nil
}
