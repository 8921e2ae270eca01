package patterns

// Translate maps a key event to a command given the current mode. It has no
// side effects; use Mode.Apply and the loom to act on the result.
//
// An Ex command line that does not parse yields Unknown and leaves the
// buffer in place, so the user can correct it with backspace or drop it with escape.
func Translate(mode Mode, key Key) Command {
	if key.Code == KeyInterrupt {
		return ExCommand{Action: ExQuit}
	}

	switch mode.Kind() {
	case Normal:
		return translateNormal(key)
	case Ex:
		return translateEx(mode, key)
	case Insert:
		if key.Code == KeyEscape {
			return CancelEx{}
		}
	}
	return Unknown{}
}

func translateNormal(key Key) Command {
	if key.Code != KeyRune {
		return Unknown{}
	}
	switch key.Rune {
	case 'h':
		return Move{Direction: Left}
	case 'j':
		return Move{Direction: Down}
	case 'k':
		return Move{Direction: Up}
	case 'l':
		return Move{Direction: Right}
	case ':':
		return EnterExMode{}
	default:
		return Unknown{}
	}
}

func translateEx(mode Mode, key Key) Command {
	switch key.Code {
	case KeyEnter:
		if action, ok := ParseEx(mode.Buffer()); ok {
			return ExCommand{Action: action}
		}
		return Unknown{}
	case KeyEscape:
		return CancelEx{}
	case KeyBackspace:
		return ExBackspace{}
	case KeyRune:
		if key.Printable() {
			return ExInput{Rune: key.Rune}
		}
	}
	return Unknown{}
}
