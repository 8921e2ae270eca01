// Package seamstress persists a Tapestry between sessions.
//
// No save format exists yet; Noop is the only Keeper and the loom calls it
// once when a session closes.
package seamstress

import (
	"context"

	"github.com/omnivirtus/vitalis/internal/core/tapestry"
)

// Keeper saves the world.
type Keeper interface {
	Save(ctx context.Context, t *tapestry.Tapestry) error
}

// KeeperFunc adapts a function to Keeper.
type KeeperFunc func(ctx context.Context, t *tapestry.Tapestry) error

func (f KeeperFunc) Save(ctx context.Context, t *tapestry.Tapestry) error {
	return f(ctx, t)
}

// Noop accepts every save and writes nothing.
type Noop struct{}

func (Noop) Save(ctx context.Context, _ *tapestry.Tapestry) error {
	return ctx.Err()
}
