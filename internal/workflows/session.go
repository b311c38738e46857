package workflows

import (
	"fmt"

	"github.com/PolarWolf314/cryptora/internal/audit"
	"github.com/PolarWolf314/cryptora/internal/configs"
	"github.com/PolarWolf314/cryptora/internal/keystore"
	logger "github.com/PolarWolf314/cryptora/internal/logging"
	"github.com/PolarWolf314/cryptora/internal/secrets"
	"github.com/google/uuid"
)

// Session holds everything one front-end session needs. It replaces
// process-wide key, path and log-file state: a front end builds one at
// startup and passes it to every workflow.
type Session struct {
	// ID tags the activity log entries written by this session.
	ID string

	Settings *configs.Settings
	Store    *keystore.Store
	Cipher   secrets.Cipher
	Audit    *audit.Recorder
	Logger   logger.Logger
}

// NewSession creates the keys and logs directories and wires the core
// components from settings.
func NewSession(settings *configs.Settings, log logger.Logger) (*Session, error) {
	if err := settings.EnsureDirs(); err != nil {
		return nil, err
	}

	cipher, err := secrets.NewCipher(settings.Cipher)
	if err != nil {
		return nil, fmt.Errorf("selecting cipher: %w", err)
	}

	id := uuid.NewString()
	log.Debugf("Session %s: keys=%s logs=%s cipher=%s", id, settings.KeysDir, settings.LogsDir, cipher.Name())

	return &Session{
		ID:       id,
		Settings: settings,
		Store:    keystore.New(settings, cipher),
		Cipher:   cipher,
		Audit:    audit.NewRecorder(settings, id),
		Logger:   log,
	}, nil
}
