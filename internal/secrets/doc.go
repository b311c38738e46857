// Package secrets holds Cryptora's cryptographic layer.
//
// All direct use of cryptographic primitives lives here so the algorithm
// can be swapped without touching key storage or the file workflows.
//
// # Ciphers
//
// A Cipher generates keys and seals/opens whole payloads. Two are built in:
//
//   - secretbox: NaCl secretbox (XSalsa20-Poly1305), the default
//   - xchacha20poly1305: XChaCha20-Poly1305 AEAD
//
// Both take a 32-byte key and a random 24-byte nonce drawn fresh for every
// call, so encrypting the same file twice never yields the same bytes.
//
// # Key Format
//
// Keys are 32 random bytes stored as URL-safe base64 with padding, 44
// ASCII characters. Ciphers receive the stored form and decode it
// themselves; anything that does not decode to 32 bytes is ErrInvalidKey.
//
// # Ciphertext Format
//
//	"CRY" | version (1 byte) | algorithm (1 byte) | nonce (24 bytes) | sealed payload
//
// The algorithm byte lets CipherFor pick the right implementation when
// the configured cipher has changed since a file was written.
//
// # Failure Reporting
//
// Any decryption failure, whether a wrong key, a flipped bit, a truncated
// file or something that was never a ciphertext, is ErrInvalidKeyOrCorruptData.
//
// # File Naming
//
// Encrypted files keep the original path and gain ".enc_<key id>":
//
//	report.pdf  ->  report.pdf.enc_cryptora_20250101_120000
//
// Any path containing ".enc_" counts as encrypted, and decrypting strips
// everything from the first ".enc_" onwards. A plaintext whose name already
// contains ".enc_" therefore cannot be encrypted, and a ciphertext whose
// original name contained it decrypts under a truncated name.
package secrets
