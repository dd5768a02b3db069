package utils

import (
	"strconv"
	"strings"
)

// FormatIDs renders ids as "1, 4, 9".
func FormatIDs(ids []uint64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, ", ")
}

// ParseIDs parses note ids given on the command line.
func ParseIDs(args []string) ([]uint64, error) {
	ids := make([]uint64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseUint(strings.TrimPrefix(arg, "#"), 10, 64)
		if err != nil || id == 0 {
			return nil, &InvalidIDError{Arg: arg}
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// InvalidIDError reports a command-line argument that is not a note id.
type InvalidIDError struct {
	Arg string
}

func (e *InvalidIDError) Error() string {
	return "invalid note id " + strconv.Quote(e.Arg)
}
