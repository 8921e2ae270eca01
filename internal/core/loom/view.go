package loom

import (
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/patterns"
)

// Cell classifies one world position for rendering.
type Cell uint8

const (
	CellEmpty Cell = iota
	CellPlayer
	CellRegion
	CellNPC
)

// Symbol is the glyph drawn for the cell.
func (c Cell) Symbol() rune {
	switch c {
	case CellPlayer:
		return '@'
	case CellRegion:
		return '·'
	case CellNPC:
		return 'N'
	default:
		return ' '
	}
}

// Mode is the current input mode.
func (l *Loom) Mode() patterns.Mode { return l.mode }

// ModeName is the mode indicator, e.g. "-- NORMAL --".
func (l *Loom) ModeName() string { return l.mode.Display() }

// PendingKeys is the pending text of the current mode.
func (l *Loom) PendingKeys() string { return l.mode.PendingKeys() }

// CommandLine is ":" plus the buffer while in Ex mode.
func (l *Loom) CommandLine() (string, bool) { return l.mode.CommandLine() }

// Player returns a copy of the steered thread.
func (l *Loom) Player() (models.Thread, bool) {
	return l.tapestry.Get(l.player)
}

// PlayerPosition is the steered thread's position, if it has one.
func (l *Loom) PlayerPosition() (models.Position, bool) {
	player, ok := l.Player()
	if !ok || player.Position == nil {
		return models.Position{}, false
	}
	return *player.Position, true
}

// StatusLine is "<name> | Pos: [x,y]" for the player.
func (l *Loom) StatusLine() string {
	player, ok := l.Player()
	if !ok {
		return "No player"
	}
	kind, ok := player.Kind.(models.Player)
	if !ok {
		return "Unknown"
	}
	pos := "none"
	if player.Position != nil {
		pos = player.Position.String()
	}
	return kind.Name + " | Pos: " + pos
}

// CellAt classifies p. The player's own position wins over anything stored there.
func (l *Loom) CellAt(p models.Position) Cell {
	if pos, ok := l.PlayerPosition(); ok && pos == p {
		return CellPlayer
	}
	thread, ok := l.tapestry.FindAt(p)
	if !ok {
		return CellEmpty
	}
	switch thread.Kind.(type) {
	case models.Player:
		return CellPlayer
	case models.Region:
		return CellRegion
	case models.NPC:
		return CellNPC
	default:
		return CellEmpty
	}
}
