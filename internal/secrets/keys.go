package secrets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// KeySize is the raw key length in bytes.
const KeySize = 32

// EncodedKeySize is the length of a key in its stored form.
var EncodedKeySize = base64.URLEncoding.EncodedLen(KeySize)

// newEncodedKey draws KeySize random bytes and returns them in stored form.
func newEncodedKey(random io.Reader) ([]byte, error) {
	raw := make([]byte, KeySize)
	if _, err := io.ReadFull(random, raw); err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrKeyGenerationFailure, err)
	}

	encoded := make([]byte, EncodedKeySize)
	base64.URLEncoding.Encode(encoded, raw)
	return encoded, nil
}

// DecodeKey parses a stored key. Surrounding whitespace is ignored so a
// key file edited by hand with a trailing newline still loads.
func DecodeKey(encoded []byte) (*[KeySize]byte, error) {
	trimmed := bytes.TrimSpace(encoded)
	if len(trimmed) != EncodedKeySize {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", kerrors.ErrInvalidKey, EncodedKeySize, len(trimmed))
	}

	raw := make([]byte, base64.URLEncoding.DecodedLen(len(trimmed)))
	n, err := base64.URLEncoding.Decode(raw, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidKey, err)
	}
	if n != KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", kerrors.ErrInvalidKey, KeySize, n)
	}

	var key [KeySize]byte
	copy(key[:], raw[:n])
	return &key, nil
}
