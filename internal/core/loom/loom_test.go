package loom

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/omnivirtus/vitalis/internal/core/events/bus"
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/patterns"
	"github.com/omnivirtus/vitalis/internal/core/seamstress"
	"github.com/omnivirtus/vitalis/internal/core/tapestry"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// faces is a Dice that returns the listed d20 faces in order.
type faces []int

func (f *faces) IntN(n int) int {
	face := (*f)[0]
	*f = (*f)[1:]
	return (face - 1) % n
}

type recorder struct {
	events []bus.Event
}

func record(t *testing.T, b bus.EventBus) *recorder {
	t.Helper()
	r := &recorder{}
	_, err := b.Subscribe(bus.Wildcard, func(e bus.Event) error {
		r.events = append(r.events, e)
		return nil
	})
	require.NoError(t, err)
	return r
}

func (r *recorder) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type())
	}
	return out
}

func newTestLoom(t *testing.T, opts ...Option) (*Loom, *recorder) {
	t.Helper()
	b := bus.New()
	rec := record(t, b)
	l := NewWoven(DefaultWorld(), append([]Option{WithBus(b), WithDice(&faces{})}, opts...)...)
	return l, rec
}

func dispatch(l *Loom, typed string) patterns.Command {
	var last patterns.Command = patterns.Unknown{}
	for _, k := range patterns.Keys(typed) {
		last = l.Dispatch(k)
	}
	return last
}

func TestNewWoven_InitialState(t *testing.T) {
	l, rec := newTestLoom(t)

	assert.Equal(t, models.ThreadID(1), l.PlayerID())
	pos, ok := l.PlayerPosition()
	require.True(t, ok)
	assert.Equal(t, models.Pos(0, 0), pos)
	assert.Equal(t, "-- NORMAL --", l.ModeName())
	assert.Empty(t, l.PendingKeys())
	assert.Equal(t, "Wanderer | Pos: [0,0]", l.StatusLine())
	assert.False(t, l.QuitRequested())
	assert.Equal(t, 121, l.Tapestry().Len())

	require.Equal(t, []string{EventWorldWoven}, rec.types())
	assert.Equal(t, WorldWoven{Player: 1, Regions: 120}, rec.events[0].Data())
}

func TestDispatch_MovesPlayer(t *testing.T) {
	l, rec := newTestLoom(t)

	steps := []struct {
		key  rune
		want models.Position
	}{
		{'h', models.Pos(-1, 0)},
		{'j', models.Pos(-1, 1)},
		{'l', models.Pos(0, 1)},
		{'k', models.Pos(0, 0)},
	}
	for _, step := range steps {
		cmd := l.Dispatch(patterns.RuneKey(step.key))
		assert.IsType(t, patterns.Move{}, cmd)
		pos, ok := l.PlayerPosition()
		require.True(t, ok)
		assert.Equal(t, step.want, pos, "after %q", step.key)
		assert.Equal(t, "Wanderer | Pos: "+step.want.String(), l.StatusLine())
	}

	moves := rec.events[1:]
	require.Len(t, moves, 4)
	assert.Equal(t, ThreadMoved{Thread: 1, From: models.Pos(0, 0), To: models.Pos(-1, 0)}, moves[0].Data())
	assert.Equal(t, Source, moves[0].Source())
}

func TestDispatch_MoveFromFive(t *testing.T) {
	tp := tapestry.New()
	start := models.Pos(5, 5)
	id := tp.Spawn(models.Player{Name: "p"}, &start)
	l := New(tp, id, WithDice(&faces{}))

	l.Dispatch(patterns.RuneKey('h'))
	pos, _ := l.PlayerPosition()
	assert.Equal(t, models.Pos(4, 5), pos)

	l.Dispatch(patterns.RuneKey('l'))
	l.Dispatch(patterns.RuneKey('k'))
	pos, _ = l.PlayerPosition()
	assert.Equal(t, models.Pos(5, 4), pos)
}

func TestDispatch_UnknownKeysChangeNothing(t *testing.T) {
	l, rec := newTestLoom(t)
	before, _ := l.Player()

	for _, k := range []patterns.Key{patterns.RuneKey('x'), patterns.RuneKey('\r'), {Code: patterns.KeyOther}} {
		assert.Equal(t, patterns.Unknown{}, l.Dispatch(k))
	}

	after, _ := l.Player()
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("player changed (-before +after):\n%s", diff)
	}
	assert.Equal(t, patterns.Mode{}, l.Mode())
	assert.Len(t, rec.events, 1)
}

func TestDispatch_QuitCommand(t *testing.T) {
	l, rec := newTestLoom(t)

	dispatch(l, ":q")
	line, ok := l.CommandLine()
	require.True(t, ok)
	assert.Equal(t, ":q", line)
	assert.Equal(t, "-- EX --", l.ModeName())
	assert.False(t, l.QuitRequested())

	cmd := dispatch(l, "\r")
	assert.Equal(t, patterns.ExCommand{Action: patterns.ExQuit}, cmd)
	assert.True(t, l.QuitRequested())
	assert.Equal(t, "-- NORMAL --", l.ModeName())

	assert.Equal(t, []string{
		EventWorldWoven,
		EventModeChanged,
		EventSessionQuit,
		EventModeChanged,
	}, rec.types())
	assert.Equal(t, ModeChanged{From: patterns.Normal, To: patterns.Ex}, rec.events[1].Data())
	assert.Equal(t, SessionQuit{Session: l.Session()}, rec.events[2].Data())
}

func TestDispatch_InterruptQuitsOnce(t *testing.T) {
	l, rec := newTestLoom(t)

	l.Dispatch(patterns.Key{Code: patterns.KeyInterrupt})
	l.Dispatch(patterns.Key{Code: patterns.KeyInterrupt})
	assert.True(t, l.QuitRequested())
	assert.Equal(t, []string{EventWorldWoven, EventSessionQuit}, rec.types())
}

func TestDispatch_UnrecognizedExCommand(t *testing.T) {
	l, _ := newTestLoom(t)

	cmd := dispatch(l, ":xyz\r")
	assert.Equal(t, patterns.Unknown{}, cmd)
	assert.False(t, l.QuitRequested())
	line, ok := l.CommandLine()
	require.True(t, ok)
	assert.Equal(t, ":xyz", line)
	assert.Equal(t, "xyz", l.PendingKeys())

	dispatch(l, "\x1b")
	_, ok = l.CommandLine()
	assert.False(t, ok)
	assert.Empty(t, l.PendingKeys())
}

func TestDispatch_MovementKeysInExDoNotMove(t *testing.T) {
	l, rec := newTestLoom(t)
	dispatch(l, ":hjkl")
	pos, _ := l.PlayerPosition()
	assert.Equal(t, models.Pos(0, 0), pos)
	assert.NotContains(t, rec.types(), EventThreadMoved)
}

func TestDispatch_PlayerWithoutPosition(t *testing.T) {
	tp := tapestry.New()
	id := tp.Spawn(models.Player{Name: "ghost"}, nil)
	b := bus.New()
	rec := record(t, b)
	l := New(tp, id, WithBus(b), WithDice(&faces{}))

	dispatch(l, "hjkl")
	_, ok := l.PlayerPosition()
	assert.False(t, ok)
	assert.Empty(t, rec.events)
	assert.Equal(t, "ghost | Pos: none", l.StatusLine())
}

func TestDispatch_MissingPlayer(t *testing.T) {
	l := New(tapestry.New(), 42, WithDice(&faces{}))

	assert.NotPanics(t, func() { dispatch(l, "hjkl:q\r") })
	assert.True(t, l.QuitRequested())
	_, ok := l.PlayerPosition()
	assert.False(t, ok)
	assert.Equal(t, "No player", l.StatusLine())
	assert.Equal(t, CellEmpty, l.CellAt(models.Pos(0, 0)))
}

func TestStatusLine_NonPlayerKind(t *testing.T) {
	tp := tapestry.New()
	p := models.Pos(1, 1)
	id := tp.Spawn(models.NPC{Name: "Mira"}, &p)
	l := New(tp, id, WithDice(&faces{}))
	assert.Equal(t, "Unknown", l.StatusLine())
}

func TestCellAt(t *testing.T) {
	l, _ := newTestLoom(t)
	npcAt := models.Pos(9, 9)
	l.Tapestry().Spawn(models.NPC{Name: "Mira"}, &npcAt)

	assert.Equal(t, CellPlayer, l.CellAt(models.Pos(0, 0)))
	assert.Equal(t, CellRegion, l.CellAt(models.Pos(5, -5)))
	assert.Equal(t, CellNPC, l.CellAt(npcAt))
	assert.Equal(t, CellEmpty, l.CellAt(models.Pos(6, 0)))

	// the player stands on a region: the player wins, the vacated origin is empty
	l.Dispatch(patterns.RuneKey('l'))
	assert.Equal(t, CellPlayer, l.CellAt(models.Pos(1, 0)))
	assert.Equal(t, CellEmpty, l.CellAt(models.Pos(0, 0)))

	assert.Equal(t, '@', CellPlayer.Symbol())
	assert.Equal(t, '·', CellRegion.Symbol())
	assert.Equal(t, 'N', CellNPC.Symbol())
	assert.Equal(t, ' ', CellEmpty.Symbol())
}

func TestPostAndDrain(t *testing.T) {
	l, _ := newTestLoom(t, WithPostBuffer(2))

	var order []int
	npcAt := models.Pos(20, 20)
	require.True(t, l.Post(func(tp *tapestry.Tapestry) {
		order = append(order, 1)
		tp.Spawn(models.NPC{Name: "Mira"}, &npcAt)
	}))
	require.True(t, l.Post(func(*tapestry.Tapestry) { order = append(order, 2) }))
	assert.False(t, l.Post(func(*tapestry.Tapestry) {}), "queue is full")

	assert.Equal(t, CellEmpty, l.CellAt(npcAt), "posted work waits for Drain")
	assert.Equal(t, 2, l.Drain())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, CellNPC, l.CellAt(npcAt))
	assert.Zero(t, l.Drain())
}

func TestClose(t *testing.T) {
	var saved *tapestry.Tapestry
	ran := false
	l, _ := newTestLoom(t, WithKeeper(seamstress.KeeperFunc(func(_ context.Context, tp *tapestry.Tapestry) error {
		saved = tp
		return nil
	})))
	l.Post(func(*tapestry.Tapestry) { ran = true })

	require.NoError(t, l.Close(context.Background()))
	assert.True(t, ran)
	assert.Same(t, l.Tapestry(), saved)
}

func TestClose_KeeperError(t *testing.T) {
	boom := errors.New("disk full")
	l, _ := newTestLoom(t, WithKeeper(seamstress.KeeperFunc(func(context.Context, *tapestry.Tapestry) error {
		return boom
	})))
	assert.ErrorIs(t, l.Close(context.Background()), boom)
}

func TestContest(t *testing.T) {
	dice := faces{10, 10, 12, 10}
	l, rec := newTestLoom(t, WithDice(&dice))
	region, ok := l.Tapestry().FindAt(models.Pos(1, 0))
	require.True(t, ok)

	// player strength 10 vs region charisma 15: 10+10+2 vs 10+15+2
	result, ok := l.Contest(l.PlayerID(), region.ID, weaver.Strength, weaver.Charisma)
	require.True(t, ok)
	assert.Equal(t, weaver.Failure, result.Outcome)
	assert.Equal(t, 22, result.Initiator.Total)
	assert.Equal(t, 27, result.Defender.Total)

	// 12+10+2 vs 10+8+2
	result, ok = l.Contest(l.PlayerID(), region.ID, weaver.Strength, weaver.Intelligence)
	require.True(t, ok)
	assert.Equal(t, weaver.Success, result.Outcome)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, EventContestSettled, last.Type())
	assert.Equal(t, region.ID, last.Data().(ContestSettled).Defender)

	_, ok = l.Contest(l.PlayerID(), 9999, weaver.Strength, weaver.Strength)
	assert.False(t, ok)
}

func TestWeave(t *testing.T) {
	tp := tapestry.New()
	w := DefaultWorld()
	w.RegionRadius = 1
	w.PlayerStart = models.Pos(1, 1)

	player, regions := Weave(tp, w)
	assert.Equal(t, models.ThreadID(1), player)
	assert.Equal(t, 8, regions)

	_, taken := tp.FindAt(models.Pos(0, 0))
	assert.True(t, taken, "origin holds a region when the player starts elsewhere")
	at, ok := tp.FindAt(models.Pos(1, 1))
	require.True(t, ok)
	assert.Equal(t, player, at.ID)

	region, ok := tp.FindAt(models.Pos(-1, -1))
	require.True(t, ok)
	assert.Equal(t, models.ThreadID(2), region.ID, "regions are stored column by column from the corner")
	assert.Equal(t, models.Region{Description: "Whispering Plains"}, region.Kind)
	assert.Equal(t, 8, region.Profile.Get(weaver.Intelligence))
	assert.Equal(t, 15, region.Profile.Get(weaver.Charisma))
	assert.Equal(t, 10, region.Profile.Get(weaver.Strength))
	assert.Equal(t, weaver.States{}, region.States)
}

func TestLogObserver(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	b := bus.New()
	b.AddObserver(&LogObserver{Logger: log.NewWithCore(core)})
	_, err := b.Subscribe(EventThreadMoved, func(bus.Event) error { return errors.New("handler broke") })
	require.NoError(t, err)

	l := New(tapestry.New(), 1, WithBus(b), WithDice(&faces{}))
	l.publish(EventThreadMoved, ThreadMoved{Thread: 1})

	assert.Equal(t, 1, logs.FilterMessage("event published").Len())
	assert.Equal(t, 1, logs.FilterMessage("event delivery failed").Len())
}

func TestPost_FromOtherGoroutines(t *testing.T) {
	l, _ := newTestLoom(t, WithPostBuffer(8))
	const (
		posters = 4
		each    = 25
	)
	before := l.Tapestry().Len()

	var wg sync.WaitGroup
	for p := range posters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range each {
				at := models.Pos(100+p, i)
				fn := func(tp *tapestry.Tapestry) { tp.Spawn(models.NPC{Name: "Mira"}, &at) }
				for !l.Post(fn) {
					runtime.Gosched()
				}
			}
		}()
	}

	ran := 0
	for ran < posters*each {
		ran += l.Drain()
		runtime.Gosched()
	}
	wg.Wait()

	assert.Equal(t, posters*each, ran)
	assert.Zero(t, l.Drain())
	assert.Equal(t, before+posters*each, l.Tapestry().Len())
	assert.Equal(t, CellNPC, l.CellAt(models.Pos(103, 24)))
}

func TestContest_WithResolver(t *testing.T) {
	damaged := weaver.StateModifierFunc(func(initiator, _ weaver.States) (int, int) {
		return -int(initiator.Damaged * 10), 0
	})
	dice := faces{10, 10}
	l, _ := newTestLoom(t, WithDice(&dice), WithResolver(weaver.NewResolver(weaver.WithStateModifier(damaged))))
	region, ok := l.Tapestry().FindAt(models.Pos(1, 0))
	require.True(t, ok)
	l.Tapestry().Mutate(l.PlayerID(), func(th *models.Thread) { th.States.Damaged = 0.5 })

	// 10+10+2-5 vs 10+10+2
	result, ok := l.Contest(l.PlayerID(), region.ID, weaver.Strength, weaver.Strength)
	require.True(t, ok)
	assert.Equal(t, -5, result.Initiator.State)
	assert.Equal(t, 17, result.Initiator.Total)
	assert.Equal(t, weaver.Failure, result.Outcome)
}
