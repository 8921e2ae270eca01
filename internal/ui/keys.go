package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/omnivirtus/vitalis/internal/core/patterns"
)

// keysFromMsg converts a terminal key event into zero or more domain keys.
// Pasted text arrives as one message with several runes.
func keysFromMsg(msg tea.KeyMsg) []patterns.Key {
	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return []patterns.Key{{Code: patterns.KeyOther}}
		}
		keys := make([]patterns.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, patterns.RuneKey(r))
		}
		return keys
	case tea.KeySpace:
		return []patterns.Key{patterns.RuneKey(' ')}
	case tea.KeyEnter:
		return []patterns.Key{{Code: patterns.KeyEnter}}
	case tea.KeyEsc:
		return []patterns.Key{{Code: patterns.KeyEscape}}
	case tea.KeyBackspace, tea.KeyCtrlH:
		return []patterns.Key{{Code: patterns.KeyBackspace}}
	case tea.KeyCtrlC:
		return []patterns.Key{{Code: patterns.KeyInterrupt}}
	default:
		return []patterns.Key{{Code: patterns.KeyOther}}
	}
}
