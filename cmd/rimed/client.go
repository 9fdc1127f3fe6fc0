package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/rimed/internal/adapters/filesignal"
	"github.com/bft-labs/rimed/internal/adapters/fs"
	"github.com/bft-labs/rimed/internal/cliconfig"
)

func newReloadCmd(cfg *cliconfig.Config, load func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "reload",
		Short: "Ask a running rimed to redeploy the engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			if err := filesignal.Post(cfg.SignalDir, cfg.ReloadSignal); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted %s to %s\n", cfg.ReloadSignal, cfg.SignalDir)
			return nil
		},
	}
}

func newStatusCmd(cfg *cliconfig.Config, load func(*cobra.Command) error) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the last recorded lifecycle status",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := load(cmd); err != nil {
				return err
			}
			repo := fs.NewStatusFileRepository(cfg.StateDir)
			status, err := repo.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("read %s: %w", repo.Path(), err)
			}
			if status.State == "" {
				return fmt.Errorf("no status recorded in %s", repo.Path())
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(status)
		},
	}
}
