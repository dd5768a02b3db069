package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/theca/internal/audit"
	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/utils"
)

// entryTimeLayout is the timestamp layout written by audit.Trail.
const entryTimeLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Profile filters entries touching this profile, as source or target.
	Profile string

	// User filters entries by system user.
	User string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the operation trail of the profile folder. A folder
// without a trail yields no entries.
//
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, ws *Workspace, opts LogOptions) (*LogResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := ws.Trail.ReadEntries()
	if err != nil {
		return nil, kerrors.NewIOError("read", ws.Trail.Path(), err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	if len(entries) == 0 {
		result.Entries = entries
		return result, nil
	}

	// Apply filters.
	filtered := entries

	if opts.Profile != "" {
		filtered = filterByProfile(filtered, opts.Profile)
	}

	if opts.User != "" {
		filtered = filterByUser(filtered, opts.User)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if opts.Since != "" {
		sinceTime, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since %q", kerrors.ErrInvalidDateFormat, opts.Since)
		}
		filtered = filterTime(filtered, func(t time.Time) bool { return !t.Before(sinceTime) })
	}

	if opts.Until != "" {
		untilTime, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until %q", kerrors.ErrInvalidDateFormat, opts.Until)
		}
		// Include the entire day by setting to end of day.
		untilTime = untilTime.Add(24*time.Hour - time.Nanosecond)
		filtered = filterTime(filtered, func(t time.Time) bool { return !t.After(untilTime) })
	}

	// Apply ordering.
	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	// Apply limit.
	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func filterByProfile(entries []audit.Entry, profile string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if e.Profile == profile || e.TargetProfile == profile {
			result = append(result, e)
		}
	}
	return result
}

// filterByUser filters entries by user name (case-insensitive).
func filterByUser(entries []audit.Entry, user string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if strings.EqualFold(e.User, user) {
			result = append(result, e)
		}
	}
	return result
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

// filterTime keeps entries whose timestamp satisfies keep. Entries with an
// unreadable timestamp are dropped.
func filterTime(entries []audit.Entry, keep func(time.Time) bool) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if keep(t) {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(entryTimeLayout, ts)
	if err != nil {
		// Try alternate format.
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// FormatDate formats a timestamp string to YYYY-MM-DD format.
func FormatDate(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 10 {
			return ts[:10]
		}
		return ts
	}
	return t.Format("2006-01-02")
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry in verbose format.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "add", "edit":
		return "note " + utils.FormatIDs(e.IDs)
	case "del":
		details := fmt.Sprintf("removed %s", utils.FormatIDs(e.IDs))
		if len(e.NotFound) > 0 {
			details += fmt.Sprintf(", not found %s", utils.FormatIDs(e.NotFound))
		}
		return details
	case "clear":
		return fmt.Sprintf("removed %d notes", e.Count)
	case "transfer":
		return fmt.Sprintf("note %s to %s as %d", utils.FormatIDs(e.IDs), e.TargetProfile, e.TargetID)
	case "new-profile":
		if e.Encrypted != nil && *e.Encrypted {
			return "encrypted"
		}
		return "plaintext"
	default:
		return ""
	}
}

// FormatDetailsOneline formats the details for a log entry in oneline format.
func FormatDetailsOneline(e audit.Entry) string {
	switch e.Operation {
	case "add", "edit":
		return utils.FormatIDs(e.IDs)
	case "del":
		return fmt.Sprintf("%d removed", len(e.IDs))
	case "clear":
		return fmt.Sprintf("%d removed", e.Count)
	case "transfer":
		return fmt.Sprintf("%s -> %s", utils.FormatIDs(e.IDs), e.TargetProfile)
	case "new-profile":
		if e.Encrypted != nil && *e.Encrypted {
			return "encrypted"
		}
		return ""
	default:
		return ""
	}
}
