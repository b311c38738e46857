// Package errors provides typed error values for Cryptora.
//
// Every failure the core can produce is one of the sentinel errors below,
// usually wrapped with extra context via fmt.Errorf and %w. Front ends use
// errors.Is to pick a message and ExitCode to pick a process exit status,
// so the core never needs to know how its errors are rendered.
//
// # Error Categories
//
//   - File errors: ErrFileNotFound, ErrAlreadyEncrypted, ErrNotEncrypted, ErrIOFailure
//   - Key errors: ErrKeyNotFound, ErrKeyFileNotFound, ErrNoKeys, ErrNoKeySelected
//   - Crypto errors: ErrInvalidKeyOrCorruptData, ErrInvalidKey, ErrKeyGenerationFailure
//   - Configuration and usage errors: ErrInvalidConfig, ErrUnknownCipher, ErrInvalidUsage
//
// # Usage
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", kerrors.ErrFileNotFound, path)
//
// Handle errors in the CLI layer:
//
//	result, err := workflows.EncryptFile(ctx, session, opts)
//	if errors.Is(err, kerrors.ErrAlreadyEncrypted) {
//	    // Show a non-fatal notice
//	}
//
// ErrInvalidKeyOrCorruptData is deliberately the only error a failed
// decryption produces. Callers must not try to tell a wrong key apart from
// a tampered file.
package errors
