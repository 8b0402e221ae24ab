package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/phroun/illumiterm"
	"github.com/phroun/illumiterm/internal/config"
	"github.com/phroun/illumiterm/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Frontend runs one session for inv and returns once the session is over
type Frontend func(ctx context.Context, inv *illumiterm.Invocation, cfg *config.Config, log *zap.Logger) error

// Result receives the exit status the process should end with: the
// session's report, or 1 when there was none
type Result struct {
	Status int
}

// NewRootCmd builds the illumiterm command. frontends is keyed by the
// config's frontend name.
func NewRootCmd(frontends map[string]Frontend, result *Result) *cobra.Command {
	var cmdline string
	// Anything that stops before the session reports exits with 1
	result.Status = 1

	root := &cobra.Command{
		Use:   "illumiterm",
		Short: "illumiterm - a single-window terminal",
		Long: `illumiterm opens one terminal window running your shell, or the given
command through /bin/sh, and exits with the child's exit status.

Configuration is read from $ILLUMITERM_CONFIG or
$XDG_CONFIG_HOME/illumiterm/config.toml, then ILLUMITERM_* variables.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			run, ok := frontends[cfg.Frontend]
			if !ok {
				return fmt.Errorf("frontend %q is not available", cfg.Frontend)
			}

			logCfg := logging.Config{
				Level:       cfg.Logging.Level,
				Development: cfg.Logging.Development,
			}
			if cfg.Logging.Output != "" {
				logCfg.OutputPaths = []string{cfg.Logging.Output}
			}
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer logger.Sync()

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get working directory: %w", err)
			}
			var opts []illumiterm.InvocationOption
			if cmd.Flags().Changed("cmd") {
				opts = append(opts, illumiterm.WithCommand(cmdline))
			}
			inv := illumiterm.NewInvocation(cwd, os.Environ(), opts...)

			logger.Debug("starting",
				zap.String("frontend", cfg.Frontend),
				zap.String("cwd", cwd))
			runErr := run(cmd.Context(), inv, cfg, logger.Logger)
			if status, ok := inv.ExitStatus(); ok {
				result.Status = status
			}
			return runErr
		},
	}

	root.Flags().StringVar(&cmdline, "cmd", "", "command line to run with /bin/sh -c instead of $SHELL")
	return root
}

// Font returns the configured terminal font
func Font(cfg *config.Config) illumiterm.FontDescription {
	return illumiterm.FontDescription{
		Family: cfg.Font.Family,
		Size:   cfg.Font.Size,
	}
}
