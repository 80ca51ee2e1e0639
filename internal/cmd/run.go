package cmd

import (
	"errors"
	"fmt"
	"os/exec"
	"sort"

	"github.com/spf13/cobra"
)

// ExitError carries the exit code of a command started by run.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

func newRunCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run -- COMMAND [ARGS...]",
		Short: "Run a command with the loaded environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			c := exec.CommandContext(cmd.Context(), args[0], args[1:]...)
			c.Env = environ(e.All(""))
			c.Stdin = cmd.InOrStdin()
			c.Stdout = cmd.OutOrStdout()
			c.Stderr = cmd.ErrOrStderr()

			if err := c.Run(); err != nil {
				var exitErr *exec.ExitError
				if errors.As(err, &exitErr) {
					return &ExitError{Code: exitErr.ExitCode()}
				}
				return fmt.Errorf("run %s: %w", args[0], err)
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)

	return cmd
}

// environ converts vars to the KEY=value form of exec.Cmd.Env, sorted by key.
func environ(vars map[string]string) []string {
	result := make([]string, 0, len(vars))
	for key, value := range vars {
		result = append(result, key+"="+value)
	}
	sort.Strings(result)
	return result
}
