package models

import (
	"strconv"

	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// ThreadID identifies a Thread within one Tapestry. Ids start at 1 and are never reused.
type ThreadID uint64

func (id ThreadID) String() string {
	return "thread-" + strconv.FormatUint(uint64(id), 10)
}

// Kind is the closed set of thread variants: Player, Region and NPC.
// Callers switch on the concrete type; the unexported marker keeps the set closed.
type Kind interface {
	isKind()
	// Label is the human-facing name or description carried by the variant.
	Label() string
}

// Player is the thread driven by keyboard input.
type Player struct {
	Name string `json:"name"`
}

// Region is a piece of terrain.
type Region struct {
	Description string `json:"description"`
}

// NPC is a non-player character.
type NPC struct {
	Name string `json:"name"`
}

func (Player) isKind() {}
func (Region) isKind() {}
func (NPC) isKind()    {}

func (k Player) Label() string { return k.Name }
func (k Region) Label() string { return k.Description }
func (k NPC) Label() string    { return k.Name }

// Thread is any element of the world that takes part in contests.
type Thread struct {
	ID       ThreadID       `json:"id"`
	Kind     Kind           `json:"kind"`
	Profile  weaver.Profile `json:"profile"`
	States   weaver.States  `json:"states"`
	Position *Position      `json:"position,omitempty"`
}

// NewThread builds a thread with the default profile and zero states.
// A nil position makes the thread unreachable by spatial lookups.
func NewThread(id ThreadID, kind Kind, position *Position) Thread {
	return Thread{
		ID:       id,
		Kind:     kind,
		Profile:  weaver.DefaultProfile(),
		States:   weaver.States{},
		Position: position,
	}
}

// At reports whether the thread occupies p.
func (t *Thread) At(p Position) bool {
	return t.Position != nil && *t.Position == p
}

// PlaceAt sets the thread's position.
func (t *Thread) PlaceAt(p Position) {
	t.Position = &p
}

// Clone returns a copy that shares no pointers with t.
func (t Thread) Clone() Thread {
	if t.Position != nil {
		p := *t.Position
		t.Position = &p
	}
	return t
}
