package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGetCmd(s *state) *cobra.Command {
	var fallback string

	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print the value of a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			key := args[0]
			value, ok := e.Lookup(key)
			if !ok {
				if !cmd.Flags().Changed("default") {
					return fmt.Errorf("%s is not set", key)
				}
				value = fallback
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}

	cmd.Flags().StringVar(&fallback, "default", "", "Value to print when the variable is not set")

	return cmd
}
