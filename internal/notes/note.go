package notes

import (
	"fmt"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// Status is the workflow state of a note.
type Status int

const (
	StatusNone Status = iota
	StatusStarted
	StatusUrgent
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusNone, StatusStarted, StatusUrgent}

// String returns the canonical spelling used on disk.
func (s Status) String() string {
	switch s {
	case StatusNone:
		return "None"
	case StatusStarted:
		return "Started"
	case StatusUrgent:
		return "Urgent"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined statuses.
func (s Status) Valid() bool {
	return s >= StatusNone && s <= StatusUrgent
}

// ParseStatus accepts the canonical spellings exactly.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if s == st.String() {
			return st, nil
		}
	}
	return StatusNone, fmt.Errorf("%w: %q", kerrors.ErrInvalidStatus, s)
}

// ParseStatusFlag is the lenient form used for command-line input: it is
// case-insensitive and accepts "" as None.
func ParseStatusFlag(s string) (Status, error) {
	if strings.TrimSpace(s) == "" {
		return StatusNone, nil
	}
	for _, st := range Statuses {
		if strings.EqualFold(strings.TrimSpace(s), st.String()) {
			return st, nil
		}
	}
	return StatusNone, fmt.Errorf("%w: %q (expected none, started or urgent)", kerrors.ErrInvalidStatus, s)
}

// Note is a single entry in a profile.
type Note struct {
	ID          uint64
	Title       string
	Body        string
	Status      Status
	LastTouched time.Time
}

// normalizeTitle folds line breaks into spaces. Titles are single line.
func normalizeTitle(title string) (string, error) {
	title = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(title)
	if strings.TrimSpace(title) == "" {
		return "", kerrors.ErrEmptyTitle
	}
	return title, nil
}
