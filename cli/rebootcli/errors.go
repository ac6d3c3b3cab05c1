package rebootcli

import "errors"

var errTooManyArgs = errors.New("too many arguments")

type FailureKind uint8

const (
	PrivilegeError FailureKind = iota + 1
	UsageError
	UnknownCommand
	ConfigError
	RebootError
)

var failureNames = []string{"", "privilege", "usage", "unknown command", "config", "reboot"}

func (k FailureKind) String() string {
	if int(k) >= len(failureNames) {
		return ""
	}

	return failureNames[k]
}

// ExitError is a fatal outcome of the command. Everything except RebootError
// is raised before the shutdown sequence starts.
type ExitError struct {
	Kind FailureKind
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
