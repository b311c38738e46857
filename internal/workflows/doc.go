// Package workflows provides high-level orchestration for Cryptora commands.
//
// Workflows coordinate the key store, the cipher and the activity log to
// implement complete user-facing operations. They know nothing about flag
// parsing, spinners or colors, so any front end can drive them.
//
// # Session
//
// A Session is built once per front-end session from configs.Settings. It
// owns the key store, the configured cipher, the activity recorder and
// the logger, and every workflow takes it as an argument. Nothing here
// reads global state, so tests run each case against its own temp directory.
//
// # Available Workflows
//
//   - EncryptFile / DecryptFile: transform one file
//   - Encrypt / Decrypt: transform every file matched by a set of patterns
//   - GenerateKey: write a new key file
//   - ListKeys: list key files, oldest first
//   - ReadLog: read one day of the activity log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package:
//
//	result, err := workflows.DecryptFile(ctx, session, opts)
//	if errors.Is(err, kerrors.ErrInvalidKeyOrCorruptData) {
//	    // "wrong key", whatever the actual cause
//	}
//
// Every operation runs once. There are no retries and no partial-write
// recovery; a crash while writing leaves a truncated output file.
//
// # Context Usage
//
// Workflow functions accept a context.Context as their first parameter.
// Batch workflows stop between files once it is done; a single file
// transform always runs to completion.
package workflows
