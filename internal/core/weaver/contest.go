package weaver

// Dice is the randomness a contest draws from. IntN returns a uniform value in
// [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Dice interface {
	IntN(n int) int
}

// D20 rolls a single twenty-sided die.
func D20(dice Dice) int {
	return dice.IntN(20) + 1
}

// Outcome is the initiator's result in a contest.
type Outcome uint8

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// Side is one participant of a contest together with the attribute it contests with.
type Side struct {
	Profile Profile
	States  States
	Stat    Stat
}

// StateModifier maps the two sides' States to signed bonuses added to their totals.
type StateModifier interface {
	Modifiers(initiator, defender States) (initiatorMod, defenderMod int)
}

// StateModifierFunc adapts a function to StateModifier.
type StateModifierFunc func(initiator, defender States) (int, int)

func (f StateModifierFunc) Modifiers(initiator, defender States) (int, int) {
	return f(initiator, defender)
}

// NoStateModifier is the current rule set: states do not affect contests.
type NoStateModifier struct{}

func (NoStateModifier) Modifiers(States, States) (int, int) { return 0, 0 }

// Tally is one side's breakdown: Total = Roll + Attribute + Luck + State.
type Tally struct {
	Roll      int `json:"roll"`
	Attribute int `json:"attribute"`
	Luck      int `json:"luck"`
	State     int `json:"state"`
	Total     int `json:"total"`
}

// Contest is the full record of one resolution.
type Contest struct {
	Initiator Tally   `json:"initiator"`
	Defender  Tally   `json:"defender"`
	Outcome   Outcome `json:"outcome"`
}

// Margin is the initiator's total minus the defender's.
func (c Contest) Margin() int {
	return c.Initiator.Total - c.Defender.Total
}

// Resolver resolves contests under a state-modifier policy.
type Resolver struct {
	modifier StateModifier
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithStateModifier replaces the default NoStateModifier policy.
func WithStateModifier(m StateModifier) ResolverOption {
	return func(r *Resolver) {
		if m != nil {
			r.modifier = m
		}
	}
}

func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{modifier: NoStateModifier{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Roll resolves a contest and returns its breakdown. The initiator's d20 is
// drawn before the defender's. The initiator succeeds only with a strictly
// greater total; ties go to the defender.
func (r *Resolver) Roll(initiator, defender Side, dice Dice) Contest {
	initiatorState, defenderState := r.modifier.Modifiers(initiator.States, defender.States)

	in := tally(D20(dice), initiator, initiatorState)
	def := tally(D20(dice), defender, defenderState)

	outcome := Failure
	if in.Total > def.Total {
		outcome = Success
	}
	return Contest{Initiator: in, Defender: def, Outcome: outcome}
}

// Resolve is Roll without the breakdown.
func (r *Resolver) Resolve(initiator, defender Side, dice Dice) Outcome {
	return r.Roll(initiator, defender, dice).Outcome
}

var defaultResolver = NewResolver()

// Resolve resolves a contest with the default policy.
func Resolve(initiator, defender Side, dice Dice) Outcome {
	return defaultResolver.Resolve(initiator, defender, dice)
}

func tally(roll int, side Side, state int) Tally {
	t := Tally{
		Roll:      roll,
		Attribute: side.Profile.Get(side.Stat),
		Luck:      side.Profile.LuckModifier(),
		State:     state,
	}
	t.Total = t.Roll + t.Attribute + t.Luck + t.State
	return t
}
