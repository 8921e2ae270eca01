package loom

import (
	"github.com/omnivirtus/vitalis/internal/core/models"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/tapestry"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

// World describes the initial contents of a session.
type World struct {
	PlayerName  string
	PlayerStart models.Position

	// Regions fill the square [-RegionRadius, RegionRadius] around the origin,
	// except the player's start cell.
	RegionRadius       int
	RegionDescription  string
	RegionIntelligence int
	RegionCharisma     int
}

func DefaultWorld() World {
	return World{
		PlayerName:         "Wanderer",
		PlayerStart:        models.Pos(0, 0),
		RegionRadius:       5,
		RegionDescription:  "Whispering Plains",
		RegionIntelligence: 8,
		RegionCharisma:     15,
	}
}

// Weave stores the player and the region square in t and returns the player's id.
// The player is stored first; regions follow column by column.
func Weave(t *tapestry.Tapestry, w World) (models.ThreadID, int) {
	start := w.PlayerStart
	player := t.Spawn(models.Player{Name: w.PlayerName}, &start)

	regions := 0
	for x := -w.RegionRadius; x <= w.RegionRadius; x++ {
		for y := -w.RegionRadius; y <= w.RegionRadius; y++ {
			p := models.Pos(x, y)
			if p == start {
				continue
			}
			t.Spawn(models.Region{Description: w.RegionDescription}, &p, func(th *models.Thread) {
				th.Profile.Set(weaver.Intelligence, w.RegionIntelligence)
				th.Profile.Set(weaver.Charisma, w.RegionCharisma)
			})
			regions++
		}
	}
	return player, regions
}

// NewWoven weaves w into a fresh tapestry and returns a loom steering its player.
func NewWoven(w World, opts ...Option) *Loom {
	t := tapestry.New()
	player, regions := Weave(t, w)
	l := New(t, player, opts...)
	l.logger.Info("world woven", log.String("player", w.PlayerName), log.Int("regions", regions))
	l.publish(EventWorldWoven, WorldWoven{Player: player, Regions: regions})
	return l
}
