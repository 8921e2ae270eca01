package weaver

import (
	"errors"
	"fmt"
	"strings"
)

// Attribute bounds. Values outside the range are accepted; the bounds are a
// convention for content and are not enforced.
const (
	AttributeMin     = 0
	AttributeMax     = 20
	AttributeDefault = 10
)

// ErrUnknownStat is returned by ParseStat for names that match no attribute.
var ErrUnknownStat = errors.New("unknown stat")

// Stat selects one attribute of a Profile.
type Stat uint8

const (
	// Physical
	Strength Stat = iota
	Dexterity
	Constitution

	// Mental
	Intelligence
	Wisdom
	Charisma

	// Social
	Connections
	Resources
	Reputation

	// Mystical
	Luck
)

// Stats lists every attribute in declaration order.
var Stats = [...]Stat{
	Strength, Dexterity, Constitution,
	Intelligence, Wisdom, Charisma,
	Connections, Resources, Reputation,
	Luck,
}

var statNames = [...]string{
	Strength:     "strength",
	Dexterity:    "dexterity",
	Constitution: "constitution",
	Intelligence: "intelligence",
	Wisdom:       "wisdom",
	Charisma:     "charisma",
	Connections:  "connections",
	Resources:    "resources",
	Reputation:   "reputation",
	Luck:         "luck",
}

func (s Stat) String() string {
	if int(s) < len(statNames) {
		return statNames[s]
	}
	return fmt.Sprintf("stat(%d)", uint8(s))
}

// ParseStat resolves a case-insensitive attribute name.
func ParseStat(name string) (Stat, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, s := range Stats {
		if statNames[s] == needle {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStat, name)
}

// Profile is the attribute set shared by every thread.
type Profile struct {
	Strength     int `json:"strength" yaml:"strength"`
	Dexterity    int `json:"dexterity" yaml:"dexterity"`
	Constitution int `json:"constitution" yaml:"constitution"`

	Intelligence int `json:"intelligence" yaml:"intelligence"`
	Wisdom       int `json:"wisdom" yaml:"wisdom"`
	Charisma     int `json:"charisma" yaml:"charisma"`

	Connections int `json:"connections" yaml:"connections"`
	Resources   int `json:"resources" yaml:"resources"`
	Reputation  int `json:"reputation" yaml:"reputation"`

	Luck int `json:"luck" yaml:"luck"`
}

// NewProfile returns a profile with every attribute set to base.
func NewProfile(base int) Profile {
	return Profile{
		Strength:     base,
		Dexterity:    base,
		Constitution: base,
		Intelligence: base,
		Wisdom:       base,
		Charisma:     base,
		Connections:  base,
		Resources:    base,
		Reputation:   base,
		Luck:         base,
	}
}

// DefaultProfile returns a profile with every attribute at AttributeDefault.
func DefaultProfile() Profile {
	return NewProfile(AttributeDefault)
}

// Get returns the attribute selected by s. Unknown selectors read as zero.
func (p Profile) Get(s Stat) int {
	if ptr := p.field(s); ptr != nil {
		return *ptr
	}
	return 0
}

// Set assigns the attribute selected by s. Unknown selectors are ignored.
func (p *Profile) Set(s Stat, value int) {
	if ptr := p.field(s); ptr != nil {
		*ptr = value
	}
}

// With returns a copy of p with one attribute replaced.
func (p Profile) With(s Stat, value int) Profile {
	p.Set(s, value)
	return p
}

func (p *Profile) field(s Stat) *int {
	switch s {
	case Strength:
		return &p.Strength
	case Dexterity:
		return &p.Dexterity
	case Constitution:
		return &p.Constitution
	case Intelligence:
		return &p.Intelligence
	case Wisdom:
		return &p.Wisdom
	case Charisma:
		return &p.Charisma
	case Connections:
		return &p.Connections
	case Resources:
		return &p.Resources
	case Reputation:
		return &p.Reputation
	case Luck:
		return &p.Luck
	default:
		return nil
	}
}

// LuckModifier is luck / 5, truncated toward zero.
func (p Profile) LuckModifier() int {
	return p.Luck / 5
}
