package patterns

import "strings"

// Command is a domain command produced by Translate. The set is closed:
// Move, EnterExMode, ExInput, ExBackspace, CancelEx, ExCommand and Unknown.
type Command interface {
	isCommand()
}

// Move steps the acting thread one cell.
type Move struct{ Direction Direction }

// EnterExMode opens an empty command line.
type EnterExMode struct{}

// ExInput appends a character to the command line.
type ExInput struct{ Rune rune }

// ExBackspace deletes the last character of the command line.
type ExBackspace struct{}

// CancelEx discards the command line and returns to Normal mode.
type CancelEx struct{}

// ExCommand is a recognized command line.
type ExCommand struct{ Action ExAction }

// Unknown is any input without a meaning in the current mode. Applying it does nothing.
type Unknown struct{}

func (Move) isCommand()        {}
func (EnterExMode) isCommand() {}
func (ExInput) isCommand()     {}
func (ExBackspace) isCommand() {}
func (CancelEx) isCommand()    {}
func (ExCommand) isCommand()   {}
func (Unknown) isCommand()     {}

// ExAction enumerates recognized command lines.
type ExAction uint8

const (
	ExQuit ExAction = iota + 1
)

func (a ExAction) String() string {
	switch a {
	case ExQuit:
		return "quit"
	default:
		return "none"
	}
}

// ParseEx parses a command line. Surrounding whitespace is ignored; only
// "q" and "quit" are recognized.
func ParseEx(line string) (ExAction, bool) {
	switch strings.TrimSpace(line) {
	case "q", "quit":
		return ExQuit, true
	default:
		return 0, false
	}
}
