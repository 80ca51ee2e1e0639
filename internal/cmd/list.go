package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
)

func newListCmd(s *state) *cobra.Command {
	var (
		prefix     string
		jsonOutput bool
		fileOnly   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List variables",
		Long:  `List the variables of the environment after the .env file has been applied.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := s.load(cmd.Context())
			if err != nil {
				return err
			}

			vars := e.All(prefix)
			if fileOnly {
				fromFile := make(map[string]string)
				if file := e.File(); file != nil {
					for _, key := range file.Keys() {
						if value, ok := vars[key]; ok {
							fromFile[key] = value
						}
					}
				}
				vars = fromFile
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), vars)
			}
			return writeDotEnv(cmd.OutOrStdout(), vars)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list variables starting with prefix")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&fileOnly, "file-only", false, "Only list variables defined in the .env file")

	return cmd
}

func writeJSON(w io.Writer, vars map[string]string) error {
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeDotEnv prints KEY=value lines sorted by key.
func writeDotEnv(w io.Writer, vars map[string]string) error {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, vars[key]); err != nil {
			return err
		}
	}
	return nil
}
