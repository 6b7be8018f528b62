package pipeline

import "errors"

// Fatal errors of a run. Any other error returned by Run is unexpected.
var (
	ErrConfig        = errors.New("invalid configuration")
	ErrSourceMissing = errors.New("source file not found")
	ErrSourceInvalid = errors.New("source file unreadable")
	ErrResolution    = errors.New("cannot resolve fund ids")
)

// ExitCode maps the result of a run to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfig):
		return 3
	case errors.Is(err, ErrSourceMissing):
		return 4
	case errors.Is(err, ErrSourceInvalid):
		return 5
	case errors.Is(err, ErrResolution):
		return 6
	}
	return 1
}
