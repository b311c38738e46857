package secrets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// writeTestFile is a helper to write test files with 0644 permissions.
// #nosec G306 -- Test files are temporary and don't contain sensitive data.
func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil { // #nosec G306
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestResolveFiles_LiteralPathPassesThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	files, err := ResolveFiles([]string{missing}, true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || files[0] != missing {
		t.Errorf("Expected literal path to pass through, got: %v", files)
	}
}

func TestResolveFiles_GlobForEncryption(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeTestFile(t, filepath.Join(tmpDir, "b.txt"), "b")
	writeTestFile(t, filepath.Join(tmpDir, "a.txt.enc_cryptora_20250101_000000"), "x")

	files, err := ResolveFiles([]string{filepath.Join(tmpDir, "*")}, true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 plaintext files, got: %v", files)
	}
	for _, f := range files {
		if IsEncryptedPath(f) {
			t.Errorf("Ciphertext %s returned for encryption", f)
		}
	}
}

func TestResolveFiles_GlobForDecryption(t *testing.T) {
	tmpDir := t.TempDir()
	writeTestFile(t, filepath.Join(tmpDir, "a.txt"), "a")
	writeTestFile(t, filepath.Join(tmpDir, "a.txt.enc_k1"), "x")
	writeTestFile(t, filepath.Join(tmpDir, "nested", "b.txt.enc_k1"), "y")

	files, err := ResolveFiles([]string{filepath.Join(tmpDir, "**", "*.enc_*")}, false)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 ciphertext files, got: %v", files)
	}
}

func TestResolveFiles_SkipsDirectories(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, "dir.txt"), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	writeTestFile(t, filepath.Join(tmpDir, "file.txt"), "f")

	files, err := ResolveFiles([]string{filepath.Join(tmpDir, "*.txt")}, true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "file.txt" {
		t.Errorf("Expected only file.txt, got: %v", files)
	}
}

func TestResolveFiles_Deduplicates(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "a.txt")
	writeTestFile(t, path, "a")

	files, err := ResolveFiles([]string{path, filepath.Join(tmpDir, "*.txt")}, true)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file after deduplication, got: %v", files)
	}
}

func TestResolveFiles_NoMatches(t *testing.T) {
	_, err := ResolveFiles([]string{filepath.Join(t.TempDir(), "*.pdf")}, true)
	if !errors.Is(err, kerrors.ErrNoFilesFound) {
		t.Errorf("Expected ErrNoFilesFound, got: %v", err)
	}
}

func TestResolveFiles_InvalidPattern(t *testing.T) {
	_, err := ResolveFiles([]string{filepath.Join(t.TempDir(), "[unclosed")}, true)
	if !errors.Is(err, kerrors.ErrInvalidUsage) {
		t.Errorf("Expected ErrInvalidUsage, got: %v", err)
	}
}

func TestResolveFiles_ExistingFileWithGlobCharacters(t *testing.T) {
	tmpDir := t.TempDir()
	names := []string{
		"report[1].pdf",
		"notes{draft}.txt",
		"report[1].pdf.enc_cryptora_20250101_000000",
		"[unclosed",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(tmpDir, name)
			writeTestFile(t, path, "x")

			for _, forEncryption := range []bool{true, false} {
				files, err := ResolveFiles([]string{path}, forEncryption)
				if err != nil {
					t.Fatalf("Expected no error (forEncryption=%t), got: %v", forEncryption, err)
				}
				if len(files) != 1 || files[0] != path {
					t.Errorf("Expected %s taken literally, got: %v", path, files)
				}
			}
		})
	}
}
