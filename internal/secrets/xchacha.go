package secrets

import (
	"fmt"
	"io"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// xchachaCipher authenticates the ciphertext header as associated data.
type xchachaCipher struct {
	rand io.Reader
}

func (c *xchachaCipher) Name() string {
	return configs.CipherXChaCha20Poly1305
}

func (c *xchachaCipher) GenerateKey() ([]byte, error) {
	return newEncodedKey(c.rand)
}

func (c *xchachaCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	k, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}

	nonce, err := readNonce(c.rand)
	if err != nil {
		return nil, err
	}

	out := append(header(algXChaCha20Poly1305), nonce[:]...)
	return aead.Seal(out, nonce[:], plaintext, out[:headerSize]), nil
}

func (c *xchachaCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	k, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}

	hdr, nonce, sealed, err := splitCiphertext(ciphertext, algXChaCha20Poly1305, aead.Overhead())
	if err != nil {
		return nil, err
	}

	plaintext, err := aead.Open(nil, nonce[:], sealed, hdr)
	if err != nil {
		return nil, kerrors.ErrInvalidKeyOrCorruptData
	}
	return plaintext, nil
}
