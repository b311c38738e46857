package secrets

import (
	"io"

	"github.com/PolarWolf314/cryptora/internal/configs"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
	"golang.org/x/crypto/nacl/secretbox"
)

type secretboxCipher struct {
	rand io.Reader
}

func (c *secretboxCipher) Name() string {
	return configs.CipherSecretbox
}

func (c *secretboxCipher) GenerateKey() ([]byte, error) {
	return newEncodedKey(c.rand)
}

func (c *secretboxCipher) Encrypt(key, plaintext []byte) ([]byte, error) {
	k, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	nonce, err := readNonce(c.rand)
	if err != nil {
		return nil, err
	}

	out := append(header(algSecretbox), nonce[:]...)
	return secretbox.Seal(out, plaintext, nonce, k), nil
}

func (c *secretboxCipher) Decrypt(key, ciphertext []byte) ([]byte, error) {
	k, err := DecodeKey(key)
	if err != nil {
		return nil, err
	}

	_, nonce, sealed, err := splitCiphertext(ciphertext, algSecretbox, secretbox.Overhead)
	if err != nil {
		return nil, err
	}

	plaintext, ok := secretbox.Open(nil, sealed, nonce, k)
	if !ok {
		return nil, kerrors.ErrInvalidKeyOrCorruptData
	}
	return plaintext, nil
}
