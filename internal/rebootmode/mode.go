package rebootmode

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Kind uint8

const (
	Restart Kind = iota + 1
	PowerOff
	RestartAlternate
)

var kindNames = []string{"", "restart", "power-off", "restart-alternate"}

func (k Kind) String() string {
	if k == 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}

	return kindNames[k]
}

// Mode is the reboot request handed to the kernel once the shutdown sequence
// has finished. Target is only set for RestartAlternate. The zero Mode is
// not a valid request.
type Mode struct {
	Kind   Kind
	Target string
}

func (m Mode) String() string {
	switch m.Kind {
	case PowerOff:
		return "shutdown"
	case Restart:
		return "reboot"
	case RestartAlternate:
		return m.Target
	default:
		return ""
	}
}

func (m Mode) Valid() bool {
	switch m.Kind {
	case PowerOff, Restart:
		return m.Target == ""
	case RestartAlternate:
		return m.Target != ""
	default:
		return false
	}
}

// Alternate reports whether the mode needs the payload carrying reboot call.
func (m Mode) Alternate() bool {
	return m.Kind == RestartAlternate
}

var ErrUnknownCommand = errors.New("unknown command")

type UnknownCommandError struct {
	Command string
}

func (e *UnknownCommandError) Error() string {
	return "Unknown command: " + e.Command
}

func (e *UnknownCommandError) Is(target error) bool {
	return target == ErrUnknownCommand
}

type keyword struct {
	word string
	mode Mode
}

// match order matters: the first keyword whose full length matches the head
// of the input wins
var keywords = []keyword{
	{"shutdown", Mode{Kind: PowerOff}},
	{"reboot", Mode{Kind: Restart}},
	{"download", Mode{Kind: RestartAlternate, Target: "download"}},
	{"recovery", Mode{Kind: RestartAlternate, Target: "recovery"}},
	{"fastboot", Mode{Kind: RestartAlternate, Target: "fastboot"}},
	{"bootloader", Mode{Kind: RestartAlternate, Target: "bootloader"}},
}

// Resolve maps an optional command keyword to a Mode. A nil command means
// Restart. Only the first len(keyword) bytes of cmd are compared, so
// "shutdownnow" selects PowerOff while "shut" is rejected.
func Resolve(cmd *string) (Mode, error) {
	if cmd == nil {
		return Mode{Kind: Restart}, nil
	}

	for _, kw := range keywords {
		if strings.HasPrefix(*cmd, kw.word) {
			return kw.mode, nil
		}
	}

	return Mode{}, &UnknownCommandError{Command: *cmd}
}

// ResolveArgs resolves the positional arguments of the command line. Callers
// must have rejected more than one argument already.
func ResolveArgs(args []string) (Mode, error) {
	if len(args) == 0 {
		return Resolve(nil)
	}

	return Resolve(&args[0])
}

func Keywords() []string {
	words := make([]string, 0, len(keywords))

	for _, kw := range keywords {
		words = append(words, kw.word)
	}

	sort.Strings(words)

	return words
}
