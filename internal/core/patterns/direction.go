package patterns

import "github.com/omnivirtus/vitalis/internal/core/models"

// Direction is one of the four vi movement directions.
type Direction uint8

const (
	Left  Direction = iota // h
	Down                   // j
	Up                     // k
	Right                  // l
)

var directionNames = [...]string{Left: "left", Down: "down", Up: "up", Right: "right"}

func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return "none"
}

// Delta is the grid offset for d. Y grows downward, so Down is (0, +1).
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// ApplyTo returns p moved one cell in direction d.
func (d Direction) ApplyTo(p models.Position) models.Position {
	return p.Shift(d.Delta())
}
