// Package loom drives a session: it owns the tapestry, the input mode and the
// player id, turns keys into commands and applies them one at a time.
//
// A Loom is not safe for concurrent use. Dispatch, Drain and the read methods
// belong to one goroutine (the terminal adapter's update loop); anything else
// hands work over with Post.
package loom

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/omnivirtus/vitalis/internal/core/events/bus"
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/patterns"
	"github.com/omnivirtus/vitalis/internal/core/seamstress"
	"github.com/omnivirtus/vitalis/internal/core/tapestry"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

const defaultPostBuffer = 64

type Loom struct {
	tapestry *tapestry.Tapestry
	mode     patterns.Mode
	player   models.ThreadID

	session  uuid.UUID
	bus      bus.EventBus
	logger   log.Log
	keeper   seamstress.Keeper
	resolver *weaver.Resolver
	dice     weaver.Dice

	posted chan func(*tapestry.Tapestry)
	quit   bool
}

type Option func(*Loom)

// WithBus publishes session events on b.
func WithBus(b bus.EventBus) Option {
	return func(l *Loom) { l.bus = b }
}

func WithLogger(logger log.Log) Option {
	return func(l *Loom) { l.logger = logger }
}

func WithKeeper(k seamstress.Keeper) Option {
	return func(l *Loom) { l.keeper = k }
}

// WithDice sets the source used by Contest. Without it Contest seeds from crypto/rand.
func WithDice(d weaver.Dice) Option {
	return func(l *Loom) { l.dice = d }
}

func WithResolver(r *weaver.Resolver) Option {
	return func(l *Loom) { l.resolver = r }
}

// WithPostBuffer sizes the queue behind Post.
func WithPostBuffer(n int) Option {
	return func(l *Loom) {
		if n > 0 {
			l.posted = make(chan func(*tapestry.Tapestry), n)
		}
	}
}

// New creates a loom over t that steers player. The mode starts in Normal.
func New(t *tapestry.Tapestry, player models.ThreadID, opts ...Option) *Loom {
	l := &Loom{
		tapestry: t,
		player:   player,
		session:  uuid.New(),
		logger:   log.Nop(),
		keeper:   seamstress.Noop{},
		resolver: weaver.NewResolver(),
		posted:   make(chan func(*tapestry.Tapestry), defaultPostBuffer),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.bus == nil {
		l.bus = bus.New()
	}
	if l.dice == nil {
		seed, err := weaver.NewSeed()
		if err != nil {
			l.logger.Warn("falling back to fixed seed", log.Error(err))
		}
		l.dice = weaver.NewDice(seed)
	}
	l.logger = l.logger.With(log.String("session", l.session.String()))
	return l
}

func (l *Loom) Session() uuid.UUID { return l.session }

// Tapestry exposes the store for reads on the dispatch goroutine.
func (l *Loom) Tapestry() *tapestry.Tapestry { return l.tapestry }

// PlayerID is the thread steered by movement commands.
func (l *Loom) PlayerID() models.ThreadID { return l.player }

// QuitRequested reports whether a quit command has been applied.
func (l *Loom) QuitRequested() bool { return l.quit }

// Dispatch translates key in the current mode, applies the result and returns it.
func (l *Loom) Dispatch(key patterns.Key) patterns.Command {
	cmd := patterns.Translate(l.mode, key)
	l.Apply(cmd)
	return cmd
}

// Apply carries out cmd. It never fails: commands without an effect in the
// current state are dropped.
func (l *Loom) Apply(cmd patterns.Command) {
	from := l.mode.Kind()
	l.mode.Apply(cmd)

	switch c := cmd.(type) {
	case patterns.Move:
		l.move(c.Direction)
	case patterns.ExCommand:
		l.exec(c.Action)
	}

	if to := l.mode.Kind(); to != from {
		l.logger.Debug("mode changed", log.Stringer("from", from), log.Stringer("to", to))
		l.publish(EventModeChanged, ModeChanged{From: from, To: to})
	}
}

func (l *Loom) move(d patterns.Direction) {
	var (
		moved    bool
		from, to models.Position
	)
	l.tapestry.Mutate(l.player, func(t *models.Thread) {
		if t.Position == nil {
			return
		}
		from = *t.Position
		to = d.ApplyTo(from)
		t.PlaceAt(to)
		moved = true
	})
	if !moved {
		return
	}
	l.logger.Debug("thread moved",
		log.Stringer("thread", l.player),
		log.Stringer("from", from),
		log.Stringer("to", to),
	)
	l.publish(EventThreadMoved, ThreadMoved{Thread: l.player, From: from, To: to})
}

func (l *Loom) exec(action patterns.ExAction) {
	switch action {
	case patterns.ExQuit:
		if l.quit {
			return
		}
		l.quit = true
		l.logger.Info("quit requested")
		l.publish(EventSessionQuit, SessionQuit{Session: l.session})
	}
}

// Post queues fn to run against the tapestry on the next Drain. It reports
// false when the queue is full.
func (l *Loom) Post(fn func(*tapestry.Tapestry)) bool {
	select {
	case l.posted <- fn:
		return true
	default:
		return false
	}
}

// Drain runs every queued function in posting order and returns how many ran.
func (l *Loom) Drain() int {
	n := 0
	for {
		select {
		case fn := <-l.posted:
			fn(l.tapestry)
			n++
		default:
			return n
		}
	}
}

// Close runs what is still queued and hands the tapestry to the keeper.
func (l *Loom) Close(ctx context.Context) error {
	l.Drain()
	if err := l.keeper.Save(ctx, l.tapestry); err != nil {
		return fmt.Errorf("save tapestry: %w", err)
	}
	l.logger.Info("session closed", log.Int("threads", l.tapestry.Len()))
	return nil
}

func (l *Loom) publish(eventType string, data any) {
	if err := l.bus.Publish(bus.NewEvent(eventType, Source, data)); err != nil {
		l.logger.Warn("event handler failed", log.String("event", eventType), log.Error(err))
	}
}
