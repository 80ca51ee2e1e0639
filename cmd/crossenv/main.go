// Package main is the entry point for the crossenv CLI.
package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/cross-org/env/internal/cmd"
)

//go:embed version.txt
var version string

func main() {
	if err := cmd.Execute(version); err != nil {
		var exitErr *cmd.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
