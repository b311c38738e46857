package audit

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/cryptora/internal/configs"
)

// DateLayout names daily log files and is accepted by the log command.
const DateLayout = "2006-01-02"

// Outcomes recorded in Entry.Outcome.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
)

// Entry represents a single activity log entry.
type Entry struct {
	Timestamp string `json:"ts"`      // RFC3339 with microseconds, UTC.
	Session   string `json:"session"` // Session that performed the operation.
	Operation string `json:"op"`      // encrypt, decrypt, genkey, listkeys.
	Outcome   string `json:"outcome"` // OutcomeOK or OutcomeFailed.

	File   string `json:"file,omitempty"`   // Input of encrypt/decrypt.
	Output string `json:"output,omitempty"` // Written file.
	Key    string `json:"key,omitempty"`    // Key file used or generated.
	Error  string `json:"error,omitempty"`  // Message of a failed operation.
	Count  int    `json:"count,omitempty"`  // For listkeys.
}

// Recorder appends entries to a daily JSON Lines file in the logs directory.
type Recorder struct {
	dir     string
	session string
	enabled bool
	now     func() time.Time
}

// NewRecorder returns a Recorder writing to settings.LogsDir, tagging
// entries with session. It is a no-op when settings.Audit is false.
func NewRecorder(settings *configs.Settings, session string) *Recorder {
	return &Recorder{
		dir:     settings.LogsDir,
		session: session,
		enabled: settings.Audit,
		now:     time.Now,
	}
}

// Log appends an entry to today's log.
// Failures are swallowed: an operation never fails because logging did.
func (r *Recorder) Log(entry Entry) {
	if r == nil || !r.enabled {
		return
	}

	now := r.now()
	if entry.Timestamp == "" {
		entry.Timestamp = now.UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.Session == "" {
		entry.Session = r.session
	}

	if err := os.MkdirAll(r.dir, 0700); err != nil {
		return
	}

	f, err := os.OpenFile(r.PathFor(now), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// PathFor returns the log file of the local day containing t.
func (r *Recorder) PathFor(t time.Time) string {
	return filepath.Join(r.dir, "log_"+t.Format(DateLayout)+".jsonl")
}

// Today returns the current local time as seen by the recorder.
func (r *Recorder) Today() time.Time {
	return r.now()
}

// ReadEntries reads all entries of the day containing t.
// A day without a log yields no entries and no error.
func (r *Recorder) ReadEntries(t time.Time) ([]Entry, error) {
	data, err := os.ReadFile(r.PathFor(t))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into entries.
// Malformed lines, such as a line cut short by a crash, are skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
