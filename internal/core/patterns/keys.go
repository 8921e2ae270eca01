package patterns

import "unicode"

// KeyCode classifies a raw key event.
type KeyCode uint8

const (
	KeyRune KeyCode = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	// KeyInterrupt is the terminal's direct quit key (Ctrl+C).
	KeyInterrupt
	// KeyOther covers arrows, function keys and anything else without a meaning here.
	KeyOther
)

// Key is one discrete input event as delivered by the terminal adapter.
type Key struct {
	Code KeyCode
	Rune rune
}

// RuneKey builds the event for a typed character. Newline and carriage
// return become KeyEnter, ESC becomes KeyEscape, BS and DEL become KeyBackspace.
func RuneKey(r rune) Key {
	switch r {
	case '\n', '\r':
		return Key{Code: KeyEnter}
	case '\x1b':
		return Key{Code: KeyEscape}
	case '\b', '\x7f':
		return Key{Code: KeyBackspace}
	default:
		return Key{Code: KeyRune, Rune: r}
	}
}

// Keys turns a string into the key events a user typing it would produce.
func Keys(typed string) []Key {
	keys := make([]Key, 0, len(typed))
	for _, r := range typed {
		keys = append(keys, RuneKey(r))
	}
	return keys
}

// Printable reports whether the key carries a character that can go into a command line.
func (k Key) Printable() bool {
	return k.Code == KeyRune && unicode.IsPrint(k.Rune)
}
