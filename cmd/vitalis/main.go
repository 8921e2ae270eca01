package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/omnivirtus/vitalis/internal/config"
	"github.com/omnivirtus/vitalis/internal/core/observability/log"
	"github.com/omnivirtus/vitalis/internal/injector"
	"github.com/omnivirtus/vitalis/internal/ui"
)

var version = "dev"

type rootFlags struct {
	configPath string
	envFile    string
	seed       int64
	seedPhrase string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	cmd := &cobra.Command{
		Use:           "vitalis",
		Short:         "Walk the tapestry in a terminal session",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return runSession(cmd.Context(), cfg)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML config file")
	pf.StringVar(&flags.envFile, "env-file", ".env", "dotenv file read before VITALIS_* variables")
	pf.Int64Var(&flags.seed, "seed", 0, "dice seed (0 draws a random one)")
	pf.StringVar(&flags.seedPhrase, "seed-phrase", "", "phrase hashed into the dice seed")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	cmd.AddCommand(newContestCmd(flags), newVersionCmd())
	return cmd
}

// load reads the config sources with explicitly set flags applied last.
func (f *rootFlags) load(cmd *cobra.Command) (config.Config, error) {
	changed := cmd.Flags().Changed
	return config.Load(config.Sources{
		File:   f.configPath,
		DotEnv: f.envFile,
		Overrides: func(cfg *config.Config) {
			if changed("seed") {
				cfg.SetSeed(f.seed)
			}
			if changed("seed-phrase") {
				cfg.SetSeedPhrase(f.seedPhrase)
			}
			if changed("log-level") {
				cfg.Log.Level = f.logLevel
			}
		},
	})
}

func runSession(ctx context.Context, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	session, cleanup, err := injector.InitializeSession(cfg)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}
	defer cleanup()

	ctx = log.WithSession(ctx, session.Loom.Session().String())
	logger := session.Logger.WithContext(ctx)
	logger.Info("session started",
		log.String("player", cfg.Player.Name),
		log.Duration("tick", cfg.TickInterval),
	)

	runErr := ui.Run(ctx, ui.NewModel(session.Loom, cfg.TickInterval, logger))
	closeErr := session.Loom.Close(context.WithoutCancel(ctx))
	if err := errors.Join(runErr, closeErr); err != nil {
		logger.Error("session ended with error", log.Error(err))
		return err
	}
	logger.Info("session ended")
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "vitalis", version)
		},
	}
}
