package errors

import "errors"

// Process exit codes returned by the CLI.
const (
	ExitOK                  = 0
	ExitFailure             = 1
	ExitUsage               = 2
	ExitFileNotFound        = 3
	ExitKeyNotFound         = 4
	ExitAlreadyEncrypted    = 5
	ExitNotEncrypted        = 6
	ExitInvalidKeyOrData    = 7
	ExitKeyGenerationFailed = 8
)

var exitCodes = []struct {
	err  error
	code int
}{
	{ErrFileNotFound, ExitFileNotFound},
	{ErrNoFilesFound, ExitFileNotFound},
	{ErrKeyNotFound, ExitKeyNotFound},
	{ErrKeyFileNotFound, ExitKeyNotFound},
	{ErrNoKeys, ExitKeyNotFound},
	{ErrNoKeySelected, ExitKeyNotFound},
	{ErrAlreadyEncrypted, ExitAlreadyEncrypted},
	{ErrNotEncrypted, ExitNotEncrypted},
	{ErrInvalidKeyOrCorruptData, ExitInvalidKeyOrData},
	{ErrInvalidKey, ExitInvalidKeyOrData},
	{ErrKeyGenerationFailure, ExitKeyGenerationFailed},
	{ErrInvalidUsage, ExitUsage},
	{ErrInvalidConfig, ExitUsage},
	{ErrUnknownCipher, ExitUsage},
	{ErrInvalidDateFormat, ExitUsage},
}

// ExitCode maps an error to the process exit code for its kind.
// A nil error is ExitOK; anything unrecognised is ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	for _, e := range exitCodes {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return ExitFailure
}
