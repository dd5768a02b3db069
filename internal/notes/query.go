package notes

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
)

// ListOptions controls ordering and truncation of listings.
type ListOptions struct {
	// SortByDate orders by LastTouched, oldest first, instead of by id.
	SortByDate bool
	// Reverse flips the order after sorting.
	Reverse bool
	// Limit keeps the first N notes after ordering. 0 means no limit.
	Limit int
	// Status keeps only notes with this status. Applied before Limit.
	Status *Status
}

// SearchOptions selects notes by pattern.
type SearchOptions struct {
	Pattern    string
	InBody     bool
	Regex      bool
	IgnoreCase bool
	ListOptions
}

// List returns copies of the notes ordered and filtered per opts.
func (p *Profile) List(opts ListOptions) []Note {
	return arrange(slices.Clone(p.Notes), opts)
}

// Search returns the notes whose title, or body when InBody is set, matches
// the pattern. Plain patterns are substring tests.
func (p *Profile) Search(opts SearchOptions) ([]Note, error) {
	match, err := matcher(opts)
	if err != nil {
		return nil, err
	}

	var found []Note
	for _, n := range p.Notes {
		field := n.Title
		if opts.InBody {
			field = n.Body
		}
		if match(field) {
			found = append(found, n)
		}
	}
	return arrange(found, opts.ListOptions), nil
}

func matcher(opts SearchOptions) (func(string) bool, error) {
	if opts.Regex {
		expr := opts.Pattern
		if opts.IgnoreCase {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", kerrors.ErrInvalidPattern, err)
		}
		return re.MatchString, nil
	}

	if opts.IgnoreCase {
		pattern := strings.ToLower(opts.Pattern)
		return func(s string) bool { return strings.Contains(strings.ToLower(s), pattern) }, nil
	}
	return func(s string) bool { return strings.Contains(s, opts.Pattern) }, nil
}

func arrange(list []Note, opts ListOptions) []Note {
	if opts.Status != nil {
		list = slices.DeleteFunc(list, func(n Note) bool { return n.Status != *opts.Status })
	}

	if opts.SortByDate {
		slices.SortStableFunc(list, func(a, b Note) int { return a.LastTouched.Compare(b.LastTouched) })
	} else {
		slices.SortStableFunc(list, func(a, b Note) int {
			switch {
			case a.ID < b.ID:
				return -1
			case a.ID > b.ID:
				return 1
			}
			return 0
		})
	}
	if opts.Reverse {
		slices.Reverse(list)
	}

	if opts.Limit > 0 && len(list) > opts.Limit {
		list = list[:opts.Limit]
	}
	return list
}

// Stats summarises a profile for the info command.
type Stats struct {
	Total    int
	ByStatus map[Status]int
	Oldest   *Note
	Newest   *Note
}

// Stats counts notes per status and finds the least and most recently
// touched notes.
func (p *Profile) Stats() Stats {
	s := Stats{Total: len(p.Notes), ByStatus: make(map[Status]int, len(Statuses))}
	for _, st := range Statuses {
		s.ByStatus[st] = 0
	}

	var oldest, newest time.Time
	for _, n := range p.Notes {
		s.ByStatus[n.Status]++
		if s.Oldest == nil || n.LastTouched.Before(oldest) {
			s.Oldest, oldest = &n, n.LastTouched
		}
		if s.Newest == nil || !n.LastTouched.Before(newest) {
			s.Newest, newest = &n, n.LastTouched
		}
	}
	return s
}
