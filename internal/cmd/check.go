package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the .env file can be read and parsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.cfg.Strict = true
			e, err := s.load(cmd.Context())
			if err != nil {
				return fmt.Errorf("check %s: %w", s.cfg.File, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d variables\n", s.cfg.File, e.File().Len())
			return nil
		},
	}
}
