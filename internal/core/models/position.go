package models

import "fmt"

// Position is a cell on the unbounded 2-D grid. Y grows downward.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pos is shorthand for Position{X: x, Y: y}.
func Pos(x, y int) Position {
	return Position{X: x, Y: y}
}

// Shift returns a new position offset by (dx, dy). The receiver is not modified.
func (p Position) Shift(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Add returns the vector sum of two positions.
func (p Position) Add(other Position) Position {
	return p.Shift(other.X, other.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}
