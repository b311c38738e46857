package workflows

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/PolarWolf314/cryptora/internal/audit"
	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"github.com/PolarWolf314/cryptora/internal/keystore"
	logger "github.com/PolarWolf314/cryptora/internal/logging"
	"github.com/PolarWolf314/cryptora/internal/secrets"
)

// newTestSession builds a session rooted in a fresh temp directory.
func newTestSession(t *testing.T, cfg configs.Config) *Session {
	t.Helper()
	settings, err := configs.Resolve(t.TempDir(), "", cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	s, err := NewSession(settings, logger.Logger{})
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return s
}

// writeKeyFile stores a fresh key under name in the session's key store.
func writeKeyFile(t *testing.T, s *Session, name string) keystore.KeyFile {
	t.Helper()
	key, err := s.Cipher.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey failed: %v", err)
	}
	path := filepath.Join(s.Settings.KeysDir, name)
	if err := os.WriteFile(path, key, 0600); err != nil {
		t.Fatalf("Failed to write key: %v", err)
	}
	return keystore.KeyFile{Path: path}
}

// writePlain writes a plaintext file into a work directory.
func writePlain(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

// listDir returns the sorted names in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestNewSessionCreatesDirectories(t *testing.T) {
	s := newTestSession(t, configs.Default())

	for _, dir := range []string{s.Settings.KeysDir, s.Settings.LogsDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Errorf("Expected %s to be created", dir)
		}
	}
	if s.ID == "" {
		t.Errorf("Expected session id")
	}
	if s.Cipher.Name() != configs.CipherSecretbox {
		t.Errorf("Expected default cipher secretbox, got %s", s.Cipher.Name())
	}
}

func TestEncryptDecryptNaming(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")

	work := t.TempDir()
	plain := writePlain(t, work, "report.pdf", "%PDF-1.7 quarterly numbers")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	wantEnc := filepath.Join(work, "report.pdf.enc_cryptora_20250101_120000")
	if enc.EncryptedFile != wantEnc {
		t.Errorf("EncryptedFile = %s, want %s", enc.EncryptedFile, wantEnc)
	}
	if enc.Key.Path != key.Path {
		t.Errorf("Result key = %s, want %s", enc.Key.Path, key.Path)
	}

	// The plaintext is left alone; remove it to prove decrypt recreates it.
	if _, err := os.Stat(plain); err != nil {
		t.Fatalf("Plaintext was removed by encrypt: %v", err)
	}
	if err := os.Remove(plain); err != nil {
		t.Fatalf("Failed to remove plaintext: %v", err)
	}

	dec, err := DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: key})
	if err != nil {
		t.Fatalf("DecryptFile failed: %v", err)
	}
	if dec.DecryptedFile != plain {
		t.Errorf("DecryptedFile = %s, want %s", dec.DecryptedFile, plain)
	}

	got, err := os.ReadFile(plain)
	if err != nil {
		t.Fatalf("Decrypted file missing: %v", err)
	}
	if string(got) != "%PDF-1.7 quarterly numbers" {
		t.Errorf("Decrypted content = %q", got)
	}
	if _, err := os.Stat(enc.EncryptedFile); err != nil {
		t.Errorf("Ciphertext should be left in place: %v", err)
	}
}

func TestEncryptEmptyFile(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "empty.txt", "")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if err := os.Remove(plain); err != nil {
		t.Fatalf("Failed to remove plaintext: %v", err)
	}
	if _, err := DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: key}); err != nil {
		t.Fatalf("DecryptFile failed: %v", err)
	}

	info, err := os.Stat(plain)
	if err != nil || info.Size() != 0 {
		t.Errorf("Expected empty decrypted file, got err=%v", err)
	}
}

func TestEncryptPreconditions(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	work := t.TempDir()
	plain := writePlain(t, work, "a.txt", "a")
	already := writePlain(t, work, "a.txt.enc_cryptora_20250101_120000", "x")

	tests := []struct {
		name string
		opts EncryptOptions
		want error
	}{
		{"missing file", EncryptOptions{FilePath: filepath.Join(work, "missing.txt"), Key: key}, kerrors.ErrFileNotFound},
		{"missing key", EncryptOptions{FilePath: plain, Key: keystore.KeyFile{Path: filepath.Join(work, "nope.key")}}, kerrors.ErrKeyNotFound},
		{"already encrypted", EncryptOptions{FilePath: already, Key: key}, kerrors.ErrAlreadyEncrypted},
		{"file checked before key", EncryptOptions{FilePath: filepath.Join(work, "missing.txt"), Key: keystore.KeyFile{Path: "nope.key"}}, kerrors.ErrFileNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := listDir(t, work)

			_, err := EncryptFile(ctx, s, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got: %v", tt.want, err)
			}

			if after := listDir(t, work); len(after) != len(before) {
				t.Errorf("Expected no files written, before=%v after=%v", before, after)
			}
		})
	}
}

func TestDecryptPreconditions(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	work := t.TempDir()
	plain := writePlain(t, work, "a.txt", "a")
	enc := writePlain(t, work, "b.txt.enc_cryptora_20250101_120000", "x")

	tests := []struct {
		name string
		opts DecryptOptions
		want error
	}{
		{"missing file", DecryptOptions{FilePath: filepath.Join(work, "c.txt.enc_k"), Key: key}, kerrors.ErrFileNotFound},
		{"missing key", DecryptOptions{FilePath: enc, Key: keystore.KeyFile{Path: filepath.Join(work, "nope.key")}}, kerrors.ErrKeyNotFound},
		{"not encrypted", DecryptOptions{FilePath: plain, Key: key}, kerrors.ErrNotEncrypted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := listDir(t, work)

			_, err := DecryptFile(ctx, s, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Expected %v, got: %v", tt.want, err)
			}

			if after := listDir(t, work); len(after) != len(before) {
				t.Errorf("Expected no files written, before=%v after=%v", before, after)
			}
		})
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	right := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	wrong := writeKeyFile(t, s, "cryptora_20250102_120000.key")
	work := t.TempDir()
	plain := writePlain(t, work, "a.txt", "secret")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: right})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if err := os.Remove(plain); err != nil {
		t.Fatalf("Failed to remove plaintext: %v", err)
	}

	_, err = DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: wrong})
	if !errors.Is(err, kerrors.ErrInvalidKeyOrCorruptData) {
		t.Fatalf("Expected ErrInvalidKeyOrCorruptData, got: %v", err)
	}
	if _, err := os.Stat(plain); !os.IsNotExist(err) {
		t.Errorf("Expected no plaintext written after a failed decrypt")
	}
}

func TestDecryptTamperedFile(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "a.txt", "secret")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}

	data, err := os.ReadFile(enc.EncryptedFile)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	data[len(data)-1] ^= 0x01
	if err := os.WriteFile(enc.EncryptedFile, data, 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err = DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: key})
	if !errors.Is(err, kerrors.ErrInvalidKeyOrCorruptData) {
		t.Fatalf("Expected ErrInvalidKeyOrCorruptData, got: %v", err)
	}
}

func TestDecryptMalformedKey(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "a.txt", "secret")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}

	broken := filepath.Join(s.Settings.KeysDir, "broken.key")
	if err := os.WriteFile(broken, []byte("not a key"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, err = DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: keystore.KeyFile{Path: broken}})
	if !errors.Is(err, kerrors.ErrInvalidKey) {
		t.Fatalf("Expected ErrInvalidKey, got: %v", err)
	}
}

func TestDecryptAfterCipherChange(t *testing.T) {
	ctx := context.Background()
	cfg := configs.Default()
	cfg.Cipher = configs.CipherXChaCha20Poly1305
	s := newTestSession(t, cfg)
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "a.txt", "switch")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}

	// Files written under one cipher still open after the config changes.
	box, err := secrets.NewCipher(configs.CipherSecretbox)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}
	s.Cipher = box

	if _, err := DecryptFile(ctx, s, DecryptOptions{FilePath: enc.EncryptedFile, Key: key}); err != nil {
		t.Fatalf("DecryptFile failed: %v", err)
	}
}

func TestDecryptReportsKeyMismatch(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	work := t.TempDir()
	plain := writePlain(t, work, "a.txt", "renamed")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	renamed := filepath.Join(work, "a.txt.enc_other")
	if err := os.Rename(enc.EncryptedFile, renamed); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}

	dec, err := DecryptFile(ctx, s, DecryptOptions{FilePath: renamed, Key: key})
	if err != nil {
		t.Fatalf("DecryptFile failed: %v", err)
	}
	if !dec.KeyMismatch {
		t.Errorf("Expected KeyMismatch to be reported")
	}
}

func TestDryRunWritesNothing(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	work := t.TempDir()
	plain := writePlain(t, work, "a.txt", "a")

	res, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key, DryRun: true})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if !res.DryRun || res.EncryptedFile != plain+".enc_cryptora_20250101_120000" {
		t.Errorf("Unexpected dry-run result: %+v", res)
	}
	if names := listDir(t, work); len(names) != 1 {
		t.Errorf("Expected only the plaintext, got %v", names)
	}
}

func TestEncryptReportsOverwrite(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "a.txt", "a")

	first, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if first.Overwritten {
		t.Errorf("First encryption should not overwrite")
	}

	second, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	if !second.Overwritten {
		t.Errorf("Second encryption should report overwrite")
	}
}

func TestOperationsAreAudited(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t, configs.Default())
	key := writeKeyFile(t, s, "cryptora_20250101_120000.key")
	plain := writePlain(t, t.TempDir(), "a.txt", "a")

	enc, err := EncryptFile(ctx, s, EncryptOptions{FilePath: plain, Key: key})
	if err != nil {
		t.Fatalf("EncryptFile failed: %v", err)
	}
	_, _ = DecryptFile(ctx, s, DecryptOptions{FilePath: plain, Key: key})

	entries, err := s.Audit.ReadEntries(s.Audit.Today())
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(entries))
	}

	if entries[0].Operation != "encrypt" || entries[0].Outcome != audit.OutcomeOK || entries[0].Output != enc.EncryptedFile {
		t.Errorf("Unexpected encrypt entry: %+v", entries[0])
	}
	if entries[1].Operation != "decrypt" || entries[1].Outcome != audit.OutcomeFailed || entries[1].Error == "" {
		t.Errorf("Unexpected decrypt entry: %+v", entries[1])
	}
	if entries[0].Session != s.ID {
		t.Errorf("Expected session %s, got %s", s.ID, entries[0].Session)
	}
}
