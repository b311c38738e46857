package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/ui"
	"github.com/PolarWolf314/cryptora/internal/utils"
	"github.com/PolarWolf314/cryptora/internal/workflows"
	"github.com/briandowns/spinner"
)

// startSpinner creates a spinner with the given message. It only animates
// when stdout is a terminal and neither verbose nor debug output is on, so
// log lines and prompts are never interleaved with it.
// Returns the spinner and a function that should be deferred to clean up.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message and prints it to stdout.
func startSpinner(message string, animate bool) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	active := animate && !verbose && !debug && utils.IsTerminal(os.Stdout)
	if active {
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if active {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Print(finalMsg)
		}
	}

	return s, cleanup
}

// formatError renders one failure line plus a hint where there is an
// obvious next step.
func formatError(err error) string {
	switch {
	case errors.Is(err, kerrors.ErrNoKeys):
		return ui.Failed("No keys found.") + "\n" +
			ui.Hint("Run "+ui.Code.Sprint("cryptora genkey")+" to create one")

	case errors.Is(err, kerrors.ErrNoKeySelected):
		return ui.Failed("No key selected.")

	case errors.Is(err, kerrors.ErrKeyNotFound), errors.Is(err, kerrors.ErrKeyFileNotFound):
		return ui.Failed("Key not found: "+ui.Path.Sprint(errDetail(err))) + "\n" +
			ui.Hint("Run "+ui.Code.Sprint("cryptora listkeys")+" to see available keys")

	case errors.Is(err, kerrors.ErrFileNotFound):
		return ui.Failed("File not found: " + ui.Path.Sprint(errDetail(err)))

	case errors.Is(err, kerrors.ErrNoFilesFound):
		return ui.Failed("No matching files found for " + ui.Path.Sprint(errDetail(err)))

	case errors.Is(err, kerrors.ErrAlreadyEncrypted):
		return ui.Failed(ui.Path.Sprint(errDetail(err)) + " is already encrypted.")

	case errors.Is(err, kerrors.ErrNotEncrypted):
		return ui.Failed(ui.Path.Sprint(errDetail(err)) + " does not appear to be encrypted.")

	case errors.Is(err, kerrors.ErrInvalidKeyOrCorruptData):
		return ui.Failed("Decryption failed: incorrect key for this file, or the file is corrupted.")

	case errors.Is(err, kerrors.ErrInvalidKey):
		return ui.Failed("The key file does not contain a valid key.")

	case errors.Is(err, kerrors.ErrKeyGenerationFailure):
		return ui.Failed("Failed to generate a key: " + err.Error())

	case errors.Is(err, kerrors.ErrInvalidConfig), errors.Is(err, kerrors.ErrUnknownCipher):
		return ui.Failed("Invalid configuration: " + err.Error())

	default:
		return ui.Failed(err.Error())
	}
}

// errDetail returns the context a sentinel was wrapped with, which is the
// offending path for file and key errors.
func errDetail(err error) string {
	msg := err.Error()
	for _, sentinel := range []error{
		kerrors.ErrFileNotFound, kerrors.ErrNoFilesFound, kerrors.ErrKeyNotFound,
		kerrors.ErrKeyFileNotFound, kerrors.ErrAlreadyEncrypted, kerrors.ErrNotEncrypted,
	} {
		if detail, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
			return detail
		}
	}
	return msg
}

// batchFailure returns the error of the first failed file, or nil.
func batchFailure(result *workflows.BatchResult) error {
	if failed := result.Failed(); len(failed) > 0 {
		return failed[0].Err
	}
	return nil
}
