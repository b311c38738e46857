package secrets

import "strings"

// EncryptedMarker separates an original path from the key id in a ciphertext name.
const EncryptedMarker = ".enc_"

// IsEncryptedPath reports whether path looks like a ciphertext, i.e. contains
// the marker anywhere. This is a naming heuristic, not a format check.
func IsEncryptedPath(path string) bool {
	return strings.Contains(path, EncryptedMarker)
}

// EncryptedPath returns the ciphertext path for path encrypted under keyID.
func EncryptedPath(path, keyID string) string {
	return path + EncryptedMarker + keyID
}

// DecryptedPath strips the marker and everything after its first occurrence.
// Paths without the marker are returned unchanged.
func DecryptedPath(path string) string {
	if i := strings.Index(path, EncryptedMarker); i >= 0 {
		return path[:i]
	}
	return path
}

// KeyIDFromPath returns the key id tagged onto a ciphertext path.
func KeyIDFromPath(path string) (string, bool) {
	i := strings.Index(path, EncryptedMarker)
	if i < 0 {
		return "", false
	}
	id := path[i+len(EncryptedMarker):]
	return id, id != ""
}
