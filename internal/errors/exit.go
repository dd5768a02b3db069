package errors

import "errors"

// Exit statuses for the process boundary.
const (
	ExitOK = iota
	ExitGeneric
	ExitNotFound
	ExitFormat
	ExitWrongKey
	ExitKeyDerivation
	ExitInvalidPattern
	ExitIO
)

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrNotFound):
		return ExitNotFound
	case errors.Is(err, ErrFormat):
		return ExitFormat
	case errors.Is(err, ErrWrongKeyOrCorruptData):
		return ExitWrongKey
	case errors.Is(err, ErrKeyDerivation):
		return ExitKeyDerivation
	case errors.Is(err, ErrInvalidPattern):
		return ExitInvalidPattern
	case errors.Is(err, ErrIO):
		return ExitIO
	default:
		return ExitGeneric
	}
}
