package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/cryptora/internal/configs"
	"github.com/PolarWolf314/cryptora/internal/secrets"
)

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() int) (string, int) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	stdoutChan := make(chan string, 1)
	stderrChan := make(chan string, 1)

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stdoutReader); err != nil {
			log.Fatalf("Failed to copy stdout: %s", err)
		}
		stdoutChan <- buf.String()
	}()

	go func() {
		var buf bytes.Buffer
		if _, err := io.Copy(&buf, stderrReader); err != nil {
			log.Fatalf("Failed to copy stderr: %s", err)
		}
		stderrChan <- buf.String()
	}()

	code := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-stdoutChan + <-stderrChan, code
}

// runCLI runs the command tree against home with the given arguments and
// returns the combined output and exit code.
func runCLI(t *testing.T, home string, args ...string) (string, int) {
	t.Helper()
	return runCLIWithInput(t, home, "", args...)
}

// runCLIWithInput is runCLI with stdin answered from input.
func runCLIWithInput(t *testing.T, home, input string, args ...string) (string, int) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	ResetGlobalState()
	t.Cleanup(func() {
		ResetGlobalState()
		RootCmd.SetIn(nil)
		RootCmd.SetArgs(nil)
	})

	RootCmd.SetIn(strings.NewReader(input))
	RootCmd.SetArgs(append([]string{"--home", home}, args...))

	return captureOutput(Execute)
}

// writeTestKey stores a fresh key named name in the keys directory of home.
func writeTestKey(t *testing.T, home, name string) string {
	t.Helper()
	cipher, err := secrets.NewCipher(configs.CipherSecretbox)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	key, err := cipher.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}

	dir := filepath.Join(home, "keys")
	if err := os.MkdirAll(dir, 0700); err != nil {
		t.Fatalf("Failed to create keys directory: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, key, 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return path
}

// writeTestFile writes content to name inside dir.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// countFiles returns the number of entries in dir.
func countFiles(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	return len(entries)
}
