package loom

import (
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// Contest pits two stored threads against each other using the loom's dice.
// It reports false if either thread is missing.
func (l *Loom) Contest(initiator, defender models.ThreadID, initiatorStat, defenderStat weaver.Stat) (weaver.Contest, bool) {
	a, ok := l.tapestry.Get(initiator)
	if !ok {
		return weaver.Contest{}, false
	}
	d, ok := l.tapestry.Get(defender)
	if !ok {
		return weaver.Contest{}, false
	}

	result := l.resolver.Roll(
		weaver.Side{Profile: a.Profile, States: a.States, Stat: initiatorStat},
		weaver.Side{Profile: d.Profile, States: d.States, Stat: defenderStat},
		l.dice,
	)
	l.logger.Debug("contest settled",
		log.Stringer("initiator", initiator),
		log.Stringer("defender", defender),
		log.Int("initiator_total", result.Initiator.Total),
		log.Int("defender_total", result.Defender.Total),
		log.Stringer("outcome", result.Outcome),
	)
	l.publish(EventContestSettled, ContestSettled{Initiator: initiator, Defender: defender, Result: result})
	return result, true
}
