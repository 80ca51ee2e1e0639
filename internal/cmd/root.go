// Package cmd implements the crossenv CLI commands.
package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	env "github.com/cross-org/env"
	"github.com/cross-org/env/internal/config"
	"github.com/cross-org/env/internal/logger"
)

// state holds what the persistent pre-run resolves for every command.
type state struct {
	cfg    *config.Config
	logger *slog.Logger
}

// Execute runs the root command.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

func newRootCmd(version string) *cobra.Command {
	s := &state{}

	cmd := &cobra.Command{
		Use:   "crossenv",
		Short: "Load, inspect and validate environment variables",
		Long: `crossenv loads variables from a .env file, expanding $VAR references,
and applies them to an environment before reading or running anything.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringP("file", "f", env.DefaultDotEnvPath, "Path of the .env file")
	flags.Bool("no-quotes", false, "Keep quotes around values")
	flags.Bool("no-expand", false, "Do not expand $VAR references")
	flags.Bool("strict", false, "Fail when the file cannot be read")
	flags.BoolP("quiet", "q", false, "Do not log warnings")
	flags.String("runtime", env.ProcessRuntime, "Environment to apply variables to (process, memory)")
	flags.String("log-level", "warn", "Minimum log level (debug, info, warn, error)")

	cmd.AddCommand(
		newGetCmd(s),
		newListCmd(s),
		newExplainCmd(s),
		newCheckCmd(s),
		newRunCmd(s),
		newVersionCmd(version),
	)

	return cmd
}

func (s *state) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	s.cfg = cfg
	s.logger = logger.New(cmd.ErrOrStderr(), level)
	return nil
}

// load applies the configured .env file to the configured runtime.
func (s *state) load(ctx context.Context) (*env.Env, error) {
	rt, err := env.RuntimeByName(s.cfg.Runtime, afero.NewOsFs())
	if err != nil {
		return nil, err
	}
	opts := s.cfg.Options()
	opts.Logger = s.logger
	s.logger.Debug("loading .env file", "path", opts.DotEnv.Path, "runtime", rt.Name())
	return env.Setup(ctx, rt, opts)
}
