package errors

import "errors"

// File errors indicate issues with the file being transformed.
var (
	// ErrFileNotFound indicates the input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrAlreadyEncrypted indicates the input path already carries the ciphertext marker.
	ErrAlreadyEncrypted = errors.New("file is already encrypted")

	// ErrNotEncrypted indicates the input path does not carry the ciphertext marker.
	ErrNotEncrypted = errors.New("file does not appear to be encrypted")

	// ErrNoFilesFound indicates a file pattern matched nothing.
	ErrNoFilesFound = errors.New("no matching files found")

	// ErrIOFailure indicates a generic read or write failure (permissions, disk full).
	ErrIOFailure = errors.New("i/o failure")
)

// Key errors indicate a key could not be resolved or loaded.
var (
	// ErrKeyNotFound indicates the resolved key file does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrKeyFileNotFound indicates a key file vanished before it could be read.
	ErrKeyFileNotFound = errors.New("key file not found")

	// ErrNoKeys indicates the key store is empty.
	ErrNoKeys = errors.New("no keys found")

	// ErrNoKeySelected indicates interactive selection ended without a choice.
	ErrNoKeySelected = errors.New("no key selected")
)

// Cryptographic errors.
var (
	// ErrInvalidKeyOrCorruptData indicates authentication failed while decrypting.
	// A wrong key and tampered data are reported identically.
	ErrInvalidKeyOrCorruptData = errors.New("invalid key or corrupt data")

	// ErrInvalidKey indicates the key bytes are not a valid key for the cipher.
	ErrInvalidKey = errors.New("malformed key")

	// ErrKeyGenerationFailure indicates the random source failed while generating a key.
	ErrKeyGenerationFailure = errors.New("key generation failed")
)

// Usage errors.
var (
	// ErrInvalidUsage indicates bad command-line arguments or flags.
	ErrInvalidUsage = errors.New("invalid usage")
)

// Configuration errors.
var (
	// ErrInvalidConfig indicates the configuration file is malformed or holds invalid values.
	ErrInvalidConfig = errors.New("configuration is invalid")

	// ErrUnknownCipher indicates a cipher name with no implementation.
	ErrUnknownCipher = errors.New("unknown cipher")

	// ErrConfigExists indicates a configuration file is already present.
	ErrConfigExists = errors.New("configuration file already exists")

	// ErrInvalidDateFormat indicates a date argument is not YYYY-MM-DD.
	ErrInvalidDateFormat = errors.New("invalid date format")
)
