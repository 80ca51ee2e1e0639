package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExplainCmd(s *state) *cobra.Command {
	return &cobra.Command{
		Use:   "explain KEY",
		Short: "Explain where a variable's value comes from",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.load(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), e.Explain(args[0]))
			return nil
		},
	}
}
