package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/cryptora/internal/audit"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/keystore"
	"github.com/PolarWolf314/cryptora/internal/secrets"
)

// DecryptOptions configures the decryption of one file.
type DecryptOptions struct {
	// FilePath is the ciphertext file.
	FilePath string

	// Key is the key file to decrypt with.
	Key keystore.KeyFile

	// DryRun runs the checks and reports the output path without writing.
	DryRun bool
}

// DecryptResult contains the outcome of decrypting one file.
type DecryptResult struct {
	// SourceFile is the ciphertext that was read.
	SourceFile string

	// DecryptedFile is SourceFile cut at the first ".enc_".
	DecryptedFile string

	// Key is the key file that was used.
	Key keystore.KeyFile

	// KeyMismatch reports that the key id in the file name differs from Key.
	KeyMismatch bool

	// Overwritten reports that DecryptedFile existed before.
	Overwritten bool

	// DryRun indicates nothing was written.
	DryRun bool
}

// DecryptFile decrypts a ciphertext file and writes the plaintext under the
// original name. The ciphertext is left in place.
//
// Returns ErrFileNotFound if the input does not exist.
// Returns ErrKeyNotFound if the key file does not exist.
// Returns ErrNotEncrypted if the input path lacks ".enc_"; nothing is written.
// Returns ErrInvalidKeyOrCorruptData if the key is wrong or the data was
// altered, without saying which.
func DecryptFile(ctx context.Context, s *Session, opts DecryptOptions) (*DecryptResult, error) {
	result, err := decryptFile(s, opts)

	entry := audit.Entry{Operation: "decrypt", File: opts.FilePath, Key: opts.Key.Path}
	if err != nil {
		s.Logger.Errorf("Decrypting %s failed: %v", opts.FilePath, err)
		entry.Outcome = audit.OutcomeFailed
		entry.Error = err.Error()
	} else {
		entry.Outcome = audit.OutcomeOK
		entry.Output = result.DecryptedFile
	}
	if !opts.DryRun {
		s.Audit.Log(entry)
	}

	return result, err
}

func decryptFile(s *Session, opts DecryptOptions) (*DecryptResult, error) {
	if err := checkInputs(opts.FilePath, opts.Key); err != nil {
		return nil, err
	}
	if !secrets.IsEncryptedPath(opts.FilePath) {
		return nil, fmt.Errorf("%w: %s", kerrors.ErrNotEncrypted, opts.FilePath)
	}

	result := &DecryptResult{
		SourceFile:    opts.FilePath,
		DecryptedFile: secrets.DecryptedPath(opts.FilePath),
		Key:           opts.Key,
		DryRun:        opts.DryRun,
	}
	result.Overwritten = exists(result.DecryptedFile)

	if tag, ok := secrets.KeyIDFromPath(opts.FilePath); ok && tag != opts.Key.ID() {
		result.KeyMismatch = true
		s.Logger.Warnf("%s was tagged with key %s but %s is being used", opts.FilePath, tag, opts.Key.Name())
	}

	if opts.DryRun {
		return result, nil
	}

	key, err := s.loadKey(opts.Key)
	if err != nil {
		return nil, err
	}

	ciphertext, err := readFile(opts.FilePath)
	if err != nil {
		return nil, err
	}

	cipher, err := secrets.CipherFor(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", opts.FilePath, err)
	}
	s.Logger.Debugf("Decrypting %d bytes from %s with %s", len(ciphertext), opts.FilePath, cipher.Name())

	plaintext, err := cipher.Decrypt(key, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("decrypting %s: %w", opts.FilePath, err)
	}

	if err := writeFile(result.DecryptedFile, plaintext); err != nil {
		return nil, err
	}

	s.Logger.Infof("Decrypted %s -> %s", opts.FilePath, result.DecryptedFile)
	return result, nil
}
