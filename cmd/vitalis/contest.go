package main

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/omnivirtus/vitalis/internal/core/weaver"
)

type contestFlags struct {
	initiatorStat string
	defenderStat  string
	initiator     map[string]int
	defender      map[string]int
	trials        int
	workers       int
}

func newContestCmd(root *rootFlags) *cobra.Command {
	flags := &contestFlags{}
	cmd := &cobra.Command{
		Use:   "contest",
		Short: "Simulate contests between two attribute profiles",
		Example: `  vitalis contest --seed 42 --initiator strength=14 --defender-stat dexterity
  vitalis contest --trials 100000 --initiator luck=20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load(cmd)
			if err != nil {
				return err
			}
			seed, err := cfg.ResolveSeed()
			if err != nil {
				return err
			}
			initiator, defender, err := flags.sides()
			if err != nil {
				return err
			}

			successes, err := simulate(cmd.Context(), initiator, defender, flags.trials, flags.workers, seed)
			if err != nil {
				return err
			}
			rate := float64(successes) / float64(flags.trials)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d vs %s %d\n",
				initiator.Stat, initiator.Profile.Get(initiator.Stat),
				defender.Stat, defender.Profile.Get(defender.Stat))
			fmt.Fprintf(cmd.OutOrStdout(), "seed %d trials %d successes %d rate %.4f\n", seed, flags.trials, successes, rate)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.initiatorStat, "initiator-stat", weaver.Strength.String(), "attribute the initiator rolls with")
	f.StringVar(&flags.defenderStat, "defender-stat", weaver.Strength.String(), "attribute the defender rolls with")
	f.StringToIntVar(&flags.initiator, "initiator", nil, "initiator attribute overrides, e.g. strength=14,luck=8")
	f.StringToIntVar(&flags.defender, "defender", nil, "defender attribute overrides")
	f.IntVar(&flags.trials, "trials", 10000, "number of contests")
	f.IntVar(&flags.workers, "workers", runtime.GOMAXPROCS(0), "parallel workers; results depend on seed and worker count")
	return cmd
}

func (f *contestFlags) sides() (weaver.Side, weaver.Side, error) {
	if f.trials <= 0 {
		return weaver.Side{}, weaver.Side{}, fmt.Errorf("trials must be positive, got %d", f.trials)
	}
	initiator, err := side(f.initiatorStat, f.initiator)
	if err != nil {
		return weaver.Side{}, weaver.Side{}, fmt.Errorf("initiator: %w", err)
	}
	defender, err := side(f.defenderStat, f.defender)
	if err != nil {
		return weaver.Side{}, weaver.Side{}, fmt.Errorf("defender: %w", err)
	}
	return initiator, defender, nil
}

func side(stat string, overrides map[string]int) (weaver.Side, error) {
	s, err := weaver.ParseStat(stat)
	if err != nil {
		return weaver.Side{}, err
	}
	profile := weaver.DefaultProfile()
	for name, value := range overrides {
		o, err := weaver.ParseStat(name)
		if err != nil {
			return weaver.Side{}, err
		}
		profile.Set(o, value)
	}
	return weaver.Side{Profile: profile, Stat: s}, nil
}

// simulate splits trials across workers. Worker i rolls with seed+i, so a
// given seed and worker count always produce the same total.
func simulate(ctx context.Context, initiator, defender weaver.Side, trials, workers int, seed int64) (int, error) {
	workers = max(1, min(workers, trials))
	resolver := weaver.NewResolver()

	var successes atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for i := range workers {
		share := trials / workers
		if i < trials%workers {
			share++
		}
		g.Go(func() error {
			dice := weaver.NewDice(seed + int64(i))
			won := 0
			for n := range share {
				if n%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				if resolver.Resolve(initiator, defender, dice) == weaver.Success {
					won++
				}
			}
			successes.Add(int64(won))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(successes.Load()), nil
}
