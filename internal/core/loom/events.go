package loom

import (
	"github.com/google/uuid"

	"github.com/omnivirtus/vitalis/internal/core/events/bus"
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/patterns"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// Source is the publisher name on every loom event.
const Source = "loom"

const (
	EventThreadMoved    = "thread.moved"
	EventModeChanged    = "mode.changed"
	EventSessionQuit    = "session.quit"
	EventContestSettled = "contest.settled"
	EventWorldWoven     = "world.woven"
)

// ThreadMoved is published after a thread changes position.
type ThreadMoved struct {
	Thread   models.ThreadID
	From, To models.Position
}

// ModeChanged is published when the mode kind changes. Buffer edits inside Ex are not reported.
type ModeChanged struct {
	From, To patterns.ModeKind
}

// SessionQuit is published once, when the first quit command is applied.
type SessionQuit struct {
	Session uuid.UUID
}

// ContestSettled carries the full breakdown of a contest between two threads.
type ContestSettled struct {
	Initiator, Defender models.ThreadID
	Result              weaver.Contest
}

// WorldWoven is published by Weave once the initial threads are stored.
type WorldWoven struct {
	Player  models.ThreadID
	Regions int
}

// LogObserver writes every published event to a logger at debug level.
type LogObserver struct {
	Logger log.Log
}

var _ bus.EventBusObserver = (*LogObserver)(nil)

func (o *LogObserver) OnPublish(event bus.Event) {
	o.Logger.Debug("event published",
		log.String("type", event.Type()),
		log.String("source", event.Source()),
		log.Any("data", event.Data()),
	)
}

func (o *LogObserver) OnDelivered(event bus.Event, handlers int, err error) {
	if err != nil {
		o.Logger.Warn("event delivery failed",
			log.String("type", event.Type()),
			log.Int("handlers", handlers),
			log.Error(err),
		)
	}
}
