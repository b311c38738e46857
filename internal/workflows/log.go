package workflows

import (
	"context"
	"fmt"
	"time"

	"github.com/PolarWolf314/cryptora/internal/audit"
	kerrors "github.com/PolarWolf314/cryptora/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Date selects the day to read (YYYY-MM-DD). Empty means today.
	Date string

	// Limit keeps only the most recent entries. 0 means no limit.
	Limit int
}

// LogResult contains the entries of one day, oldest first.
type LogResult struct {
	Path    string
	Entries []audit.Entry

	// Total is the number of entries before Limit was applied.
	Total int
}

// ReadLog reads the activity log of one day.
//
// Returns ErrInvalidDateFormat if Date is not YYYY-MM-DD.
func ReadLog(ctx context.Context, s *Session, opts LogOptions) (*LogResult, error) {
	day := s.Audit.Today()
	if opts.Date != "" {
		parsed, err := time.ParseInLocation(audit.DateLayout, opts.Date, time.Local)
		if err != nil {
			return nil, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", kerrors.ErrInvalidDateFormat, opts.Date)
		}
		day = parsed
	}

	entries, err := s.Audit.ReadEntries(day)
	if err != nil {
		return nil, fmt.Errorf("%w: reading activity log: %v", kerrors.ErrIOFailure, err)
	}

	result := &LogResult{Path: s.Audit.PathFor(day), Total: len(entries)}
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[len(entries)-opts.Limit:]
	}
	result.Entries = entries

	return result, nil
}
