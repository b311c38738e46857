package secrets

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// Cipher is an authenticated symmetric encryption scheme operating on whole payloads.
type Cipher interface {
	// Name is the configuration name of the cipher.
	Name() string

	// GenerateKey returns a new key in its stored (encoded) form.
	GenerateKey() ([]byte, error)

	// Encrypt seals plaintext under key. The output is self-contained.
	Encrypt(key, plaintext []byte) ([]byte, error)

	// Decrypt opens a ciphertext produced by Encrypt.
	Decrypt(key, ciphertext []byte) ([]byte, error)
}

const (
	magic         = "CRY"
	formatVersion = 0x01
	headerSize    = len(magic) + 2

	algSecretbox         byte = 0x01
	algXChaCha20Poly1305 byte = 0x02

	// NonceSize is the nonce length shared by both ciphers.
	NonceSize = 24
)

// NewCipher returns the cipher registered under name.
func NewCipher(name string) (Cipher, error) {
	return newCipher(name, rand.Reader)
}

func newCipher(name string, random io.Reader) (Cipher, error) {
	switch name {
	case configs.CipherSecretbox:
		return &secretboxCipher{rand: random}, nil
	case configs.CipherXChaCha20Poly1305:
		return &xchachaCipher{rand: random}, nil
	default:
		return nil, fmt.Errorf("%w: %q", kerrors.ErrUnknownCipher, name)
	}
}

// CipherFor returns the cipher that produced ciphertext, judged by its header.
// Unrecognised input is ErrInvalidKeyOrCorruptData.
func CipherFor(ciphertext []byte) (Cipher, error) {
	if len(ciphertext) < headerSize || string(ciphertext[:len(magic)]) != magic || ciphertext[3] != formatVersion {
		return nil, kerrors.ErrInvalidKeyOrCorruptData
	}
	switch ciphertext[4] {
	case algSecretbox:
		return NewCipher(configs.CipherSecretbox)
	case algXChaCha20Poly1305:
		return NewCipher(configs.CipherXChaCha20Poly1305)
	default:
		return nil, kerrors.ErrInvalidKeyOrCorruptData
	}
}

// header builds the fixed prefix for alg.
func header(alg byte) []byte {
	h := make([]byte, headerSize, headerSize+NonceSize)
	copy(h, magic)
	h[3] = formatVersion
	h[4] = alg
	return h
}

// splitCiphertext checks the header against alg and returns the header,
// nonce and sealed payload. overhead is the authenticator size of the cipher.
func splitCiphertext(ciphertext []byte, alg byte, overhead int) ([]byte, *[NonceSize]byte, []byte, error) {
	if len(ciphertext) < headerSize+NonceSize+overhead {
		return nil, nil, nil, kerrors.ErrInvalidKeyOrCorruptData
	}
	if string(ciphertext[:len(magic)]) != magic || ciphertext[3] != formatVersion || ciphertext[4] != alg {
		return nil, nil, nil, kerrors.ErrInvalidKeyOrCorruptData
	}

	var nonce [NonceSize]byte
	copy(nonce[:], ciphertext[headerSize:headerSize+NonceSize])
	return ciphertext[:headerSize], &nonce, ciphertext[headerSize+NonceSize:], nil
}

func readNonce(random io.Reader) (*[NonceSize]byte, error) {
	var nonce [NonceSize]byte
	if _, err := io.ReadFull(random, nonce[:]); err != nil {
		return nil, fmt.Errorf("%w: generating nonce: %v", kerrors.ErrKeyGenerationFailure, err)
	}
	return &nonce, nil
}
