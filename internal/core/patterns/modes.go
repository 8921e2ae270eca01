package patterns

import "unicode/utf8"

// ModeKind is the active input-interpretation context.
type ModeKind uint8

const (
	Normal ModeKind = iota
	// Insert is reserved; no key sequence enters it.
	Insert
	Ex
)

func (k ModeKind) String() string {
	switch k {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Ex:
		return "EX"
	default:
		return "UNKNOWN"
	}
}

// Mode is the input state machine. The zero value is Normal with an empty buffer.
// Normal carries a pending count buffer, Ex carries the command line.
type Mode struct {
	kind  ModeKind
	count string
	line  string
}

// Kind is the active mode.
func (m Mode) Kind() ModeKind { return m.kind }

// Name is the bare mode name, e.g. "NORMAL".
func (m Mode) Name() string { return m.kind.String() }

// Display is the mode indicator, e.g. "-- NORMAL --".
func (m Mode) Display() string { return "-- " + m.kind.String() + " --" }

// Buffer is the Ex command line without the leading colon.
func (m Mode) Buffer() string { return m.line }

// PendingKeys is the active mode's pending text: the count in Normal, the
// command line in Ex, nothing in Insert.
func (m Mode) PendingKeys() string {
	switch m.kind {
	case Normal:
		return m.count
	case Ex:
		return m.line
	default:
		return ""
	}
}

// CommandLine is ":" followed by the buffer while in Ex mode.
func (m Mode) CommandLine() (string, bool) {
	if m.kind != Ex {
		return "", false
	}
	return ":" + m.line, true
}

// Apply folds the mode-changing part of cmd into m and reports whether m changed.
// Move and Unknown never change the mode. A recognized ExCommand leaves Ex
// for Normal; its effect is the caller's business.
func (m *Mode) Apply(cmd Command) bool {
	before := *m
	switch c := cmd.(type) {
	case EnterExMode:
		*m = Mode{kind: Ex}
	case ExInput:
		if m.kind == Ex {
			m.line += string(c.Rune)
		}
	case ExBackspace:
		if m.kind == Ex && m.line != "" {
			_, size := utf8.DecodeLastRuneInString(m.line)
			m.line = m.line[:len(m.line)-size]
		}
	case CancelEx, ExCommand:
		*m = Mode{}
	case Move, Unknown:
	}
	return *m != before
}
