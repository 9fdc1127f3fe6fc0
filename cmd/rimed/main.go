package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/rimed/internal/cliconfig"
	"github.com/bft-labs/rimed/pkg/log"
)

const helpDescription = `
Keep an embedded Rime engine deployed, configured and shut down in order.

Highlights:
  - Deploys the engine at startup and again on every reload request.
  - Projects squirrel.yaml into a light and a dark theme.
  - Finalizes the engine on power-off and on quit, never twice.
  - Configure via file, env (RIMED_*), or flags.
`

var exampleUsage = strings.TrimSpace(`
  rimed run --shared-data-dir /usr/share/rime-data --user-data-dir ~/.local/share/rime
  rimed reload --config $HOME/.rimed/config.toml
  rimed status --config $HOME/.rimed/config.toml
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "Unknown"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	logger := log.NewZerologAdapter()

	root := &cobra.Command{
		Use:           "rimed",
		Short:         "Lifecycle controller for an embedded Rime input method engine",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.rimed/config.toml)")
	flags.StringVar(&cfg.SharedDataDir, "shared-data-dir", cfg.SharedDataDir, "read-only engine data shipped with the distribution")
	flags.StringVar(&cfg.UserDataDir, "user-data-dir", cfg.UserDataDir, "per-user engine data and build output")
	flags.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "engine log directory (default: $TMPDIR/rime.squirrel)")
	flags.StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for status.json (defaults to user-data-dir)")
	flags.StringVar(&cfg.SignalDir, "signal-dir", cfg.SignalDir, "directory carrying cross-process signals (defaults to state-dir/signals)")
	flags.StringVar(&cfg.ReloadSignal, "reload-signal", cfg.ReloadSignal, "name of the reload signal")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	load := func(cmd *cobra.Command) error {
		return loadConfig(cmd, cfgPath, &cfg)
	}

	root.AddCommand(
		newRunCmd(&cfg, load),
		newReloadCmd(&cfg, load),
		newStatusCmd(&cfg, load),
	)

	if err := root.Execute(); err != nil {
		logger.Error("rimed", log.Err(err))
		os.Exit(1)
	}
}

// loadConfig layers the config file, .env, RIMED_* variables and flags
// (highest precedence) onto cfg and validates the result.
func loadConfig(cmd *cobra.Command, cfgPath string, cfg *cliconfig.Config) error {
	cfgFile := cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}

	// .env only fills variables that are not already set.
	if cliconfig.FileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}
	if err := cliconfig.ApplyEnvConfig(cfg, changed); err != nil {
		return err
	}

	return cfg.Validate()
}
