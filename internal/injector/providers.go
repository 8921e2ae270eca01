package injector

import (
	"github.com/google/wire"

	"github.com/omnivirtus/vitalis/internal/config"
	"github.com/omnivirtus/vitalis/internal/core/events/bus"
	"github.com/omnivirtus/vitalis/internal/core/loom"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/core/seamstress"
	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideDice,
	ProvideKeeper,
	ProvideResolver,
	ProvideLoom,
	wire.Struct(new(Session), "*"),
)

// Session is everything the binary needs to run one terminal session.
type Session struct {
	Config config.Config
	Logger *log.Logger
	Loom   *loom.Loom
}

func ProvideLogger(cfg config.Config) (*log.Logger, func(), error) {
	logger, err := log.New(cfg.LogOptions())
	if err != nil {
		return nil, nil, err
	}
	return logger, func() { _ = logger.Sync() }, nil
}

func ProvideBus(logger *log.Logger) bus.EventBus {
	b := bus.New()
	b.AddObserver(&loom.LogObserver{Logger: logger})
	return b
}

func ProvideDice(cfg config.Config, logger *log.Logger) (weaver.Dice, error) {
	seed, err := cfg.ResolveSeed()
	if err != nil {
		return nil, err
	}
	logger.Info("dice seeded", log.Int64("seed", seed))
	return weaver.NewDice(seed), nil
}

func ProvideKeeper() seamstress.Keeper {
	return seamstress.Noop{}
}

// ProvideResolver is the contest policy used by the session. States do not modify rolls yet.
func ProvideResolver() *weaver.Resolver {
	return weaver.NewResolver(weaver.WithStateModifier(weaver.NoStateModifier{}))
}

func ProvideLoom(cfg config.Config, b bus.EventBus, logger *log.Logger, dice weaver.Dice, keeper seamstress.Keeper, resolver *weaver.Resolver) *loom.Loom {
	return loom.NewWoven(cfg.World(),
		loom.WithBus(b),
		loom.WithLogger(logger),
		loom.WithDice(dice),
		loom.WithKeeper(keeper),
		loom.WithResolver(resolver),
	)
}
