package workflows

import (
	"context"

	"github.com/PolarWolf314/cryptora/internal/audit"
	"github.com/PolarWolf314/cryptora/internal/keystore"
)

// GenerateKeyResult contains the newly written key file.
type GenerateKeyResult struct {
	Key keystore.KeyFile
}

// GenerateKey writes a new key file to the key store.
//
// Returns ErrKeyGenerationFailure if the random source fails.
// Returns ErrIOFailure if the file cannot be written, including when a key
// was already generated within the same second.
func GenerateKey(ctx context.Context, s *Session) (*GenerateKeyResult, error) {
	kf, err := s.Store.Generate()

	entry := audit.Entry{Operation: "genkey"}
	if err != nil {
		s.Logger.Errorf("Generating key failed: %v", err)
		entry.Outcome = audit.OutcomeFailed
		entry.Error = err.Error()
		s.Audit.Log(entry)
		return nil, err
	}

	entry.Outcome = audit.OutcomeOK
	entry.Key = kf.Path
	s.Audit.Log(entry)

	s.Logger.Infof("Generated key %s", kf.Path)
	return &GenerateKeyResult{Key: kf}, nil
}

// ListKeysResult contains the key store contents, oldest first.
type ListKeysResult struct {
	Keys []keystore.KeyFile

	// Latest is the last of Keys. Zero when Keys is empty.
	Latest keystore.KeyFile
}

// ListKeys lists the key store. An empty store is not an error.
func ListKeys(ctx context.Context, s *Session) (*ListKeysResult, error) {
	keys, err := s.Store.List()
	if err != nil {
		return nil, err
	}

	result := &ListKeysResult{Keys: keys}
	if len(keys) > 0 {
		result.Latest = keys[len(keys)-1]
	}

	s.Audit.Log(audit.Entry{Operation: "listkeys", Outcome: audit.OutcomeOK, Count: len(keys)})
	return result, nil
}
