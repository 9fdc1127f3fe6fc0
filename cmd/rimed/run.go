package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/rimed/internal/cliconfig"
	"github.com/bft-labs/rimed/pkg/log"
	"github.com/bft-labs/rimed/pkg/rimed"
)

func newRunCmd(cfg *cliconfig.Config, load func(*cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Launch the engine and serve lifecycle signals until terminated",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			return run(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "quiet period before a reload signal is delivered")
	cmd.Flags().StringVar(&cfg.DistributionVersion, "distribution-version", cfg.DistributionVersion, "version reported to the engine (defaults to the build version)")
	cmd.Flags().BoolVar(&cfg.FullCheck, "full-check", cfg.FullCheck, "run a full maintenance check at startup")
	return cmd
}

// daemonConfig converts the CLI configuration to the library's.
func daemonConfig(cfg cliconfig.Config) rimed.Config {
	version := cfg.DistributionVersion
	if version == "" {
		version = getVersion()
	}
	return rimed.Config{
		SharedDataDir:       cfg.SharedDataDir,
		UserDataDir:         cfg.UserDataDir,
		LogDir:              cfg.LogDir,
		StateDir:            cfg.StateDir,
		SignalDir:           cfg.SignalDir,
		ReloadSignal:        cfg.ReloadSignal,
		Debounce:            cfg.Debounce,
		DistributionVersion: version,
		FullCheck:           cfg.FullCheck,
	}
}

func run(ctx context.Context, cfg cliconfig.Config) error {
	logger, err := log.NewZerologAdapterWithLevel(os.Stderr, cfg.LogLevel)
	if err != nil {
		return err
	}
	logger.Info("configuration", log.Any("config", cfg))

	d, err := rimed.New(daemonConfig(cfg), rimed.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create daemon: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := d.Start(ctx); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}

	select {
	case sig := <-sigCh:
		logger.Info("received signal, terminating", log.String("signal", sig.String()))
	case <-d.Done():
	}

	if err := d.Stop(); err != nil {
		return fmt.Errorf("stop daemon: %w", err)
	}
	return nil
}
