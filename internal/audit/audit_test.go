package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestTrail(t *testing.T) *Trail {
	t.Helper()
	trail := NewTrail(t.TempDir())
	trail.now = func() time.Time { return time.Date(2026, 10, 18, 9, 30, 0, 123456000, time.UTC) }
	return trail
}

func TestLog_CreatesFile(t *testing.T) {
	trail := newTestTrail(t)

	trail.Log(Entry{Operation: "add", Profile: "default", IDs: []uint64{1}})

	info, err := os.Stat(trail.Path())
	if os.IsNotExist(err) {
		t.Fatalf("Audit log file was not created")
	}
	if info.Mode().Perm()&0077 != 0 {
		t.Errorf("Audit log should be private, got %v", info.Mode().Perm())
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	trail := newTestTrail(t)

	trail.Log(Entry{Operation: "add", Profile: "default"})
	trail.Log(Entry{Operation: "edit", Profile: "default"})
	trail.Log(Entry{Operation: "del", Profile: "default"})

	entries, err := trail.ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	expectedOps := []string{"add", "edit", "del"}
	for i, op := range expectedOps {
		if entries[i].Operation != op {
			t.Errorf("Entry %d: expected op %q, got %q", i, op, entries[i].Operation)
		}
		if entries[i].Invocation != trail.Invocation() {
			t.Errorf("Entry %d: expected invocation %q, got %q", i, trail.Invocation(), entries[i].Invocation)
		}
	}
}

func TestLog_FillsDefaults(t *testing.T) {
	trail := newTestTrail(t)
	trail.user = "alice"

	trail.Log(Entry{Operation: "clear", Profile: "work", Count: 4})

	data, err := os.ReadFile(trail.Path())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	var entry Entry
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &entry); err != nil {
		t.Fatalf("Failed to parse entry: %v", err)
	}
	if entry.Timestamp != "2026-10-18T09:30:00.123456Z" {
		t.Errorf("Unexpected timestamp %q", entry.Timestamp)
	}
	if entry.User != "alice" {
		t.Errorf("Expected user alice, got %q", entry.User)
	}
	if entry.Count != 4 {
		t.Errorf("Expected count 4, got %d", entry.Count)
	}
}

func TestLog_OmitsEmptyFields(t *testing.T) {
	trail := newTestTrail(t)
	trail.Log(Entry{Operation: "add", Profile: "default"})

	data, err := os.ReadFile(trail.Path())
	if err != nil {
		t.Fatalf("Failed to read audit log: %v", err)
	}

	for _, field := range []string{"ids", "target_profile", "count", "encrypted", "not_found"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("Expected %q to be omitted, got %s", field, data)
		}
	}
}

func TestLog_SkipsMissingFolder(t *testing.T) {
	trail := NewTrail(filepath.Join(t.TempDir(), "not-created"))

	trail.Log(Entry{Operation: "add"})

	if _, err := os.Stat(filepath.Dir(trail.Path())); !os.IsNotExist(err) {
		t.Errorf("Log must not create the profile folder")
	}
}

func TestLog_NilTrail(t *testing.T) {
	var trail *Trail
	trail.Log(Entry{Operation: "add"})

	entries, err := trail.ReadEntries()
	if err != nil || entries != nil {
		t.Errorf("Expected nil entries from nil trail, got %v, %v", entries, err)
	}
}

func TestReadEntries_NoLog(t *testing.T) {
	entries, err := newTestTrail(t).ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

func TestParseEntries_SkipsMalformed(t *testing.T) {
	data := []byte(`{"ts":"2026-01-01T00:00:00.000000Z","op":"add","profile":"a"}
not json
{"ts":"2026-01-01T00:00:01.000000Z","op":"del","profile":"a","ids":[1,2]}

{"ts":"2026-01-01T00:00:02.000000Z","op":"transfer","profile":"a","target_profile":"b","target_id":7}`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	if len(entries[1].IDs) != 2 || entries[1].IDs[1] != 2 {
		t.Errorf("Unexpected ids %v", entries[1].IDs)
	}
	if entries[2].TargetProfile != "b" || entries[2].TargetID != 7 {
		t.Errorf("Unexpected transfer entry %+v", entries[2])
	}
}

func TestNewTrail_UniqueInvocations(t *testing.T) {
	dir := t.TempDir()
	if NewTrail(dir).Invocation() == NewTrail(dir).Invocation() {
		t.Error("Expected distinct invocation ids")
	}
}
