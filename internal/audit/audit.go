package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/google/uuid"
)

// FileName is the log file inside the profile folder.
const FileName = "audit.jsonl"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp  string `json:"ts"`   // RFC3339 with microseconds.
	User       string `json:"user"` // System user performing the action.
	Invocation string `json:"invocation,omitempty"`
	Operation  string `json:"op"`
	Profile    string `json:"profile,omitempty"`

	// Optional fields depending on operation.
	IDs           []uint64 `json:"ids,omitempty"`            // For add/edit/del/transfer.
	NotFound      []uint64 `json:"not_found,omitempty"`      // For del.
	TargetProfile string   `json:"target_profile,omitempty"` // For transfer.
	TargetID      uint64   `json:"target_id,omitempty"`      // For transfer.
	Count         int      `json:"count,omitempty"`          // For clear.
	Encrypted     *bool    `json:"encrypted,omitempty"`      // For new-profile and encryption changes.
}

// Trail appends entries to one folder's log. A nil Trail discards entries.
type Trail struct {
	path       string
	invocation string
	user       string
	now        func() time.Time
}

// NewTrail returns a Trail for the given profile folder with a fresh
// invocation id.
func NewTrail(folder string) *Trail {
	user, err := utils.GetUsername()
	if err != nil {
		user = "unknown"
	}
	return &Trail{
		path:       filepath.Join(folder, FileName),
		invocation: uuid.NewString(),
		user:       user,
		now:        time.Now,
	}
}

// Path returns the log file path.
func (t *Trail) Path() string {
	if t == nil {
		return ""
	}
	return t.path
}

// Invocation returns the id shared by entries of this Trail.
func (t *Trail) Invocation() string {
	if t == nil {
		return ""
	}
	return t.invocation
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func (t *Trail) Log(entry Entry) {
	if t == nil {
		return
	}

	if entry.Timestamp == "" {
		entry.Timestamp = t.now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}
	if entry.User == "" {
		entry.User = t.user
	}
	if entry.Invocation == "" {
		entry.Invocation = t.invocation
	}

	// Skip logging when the folder has not been created yet.
	if info, err := os.Stat(filepath.Dir(t.path)); err != nil || !info.IsDir() {
		return
	}

	f, err := os.OpenFile(t.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
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

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func (t *Trail) ReadEntries() ([]Entry, error) {
	if t == nil {
		return nil, nil
	}

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
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

// BoolPtr returns a pointer to b for the optional Encrypted field.
func BoolPtr(b bool) *bool {
	return &b
}
