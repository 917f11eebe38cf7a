// Package main is the entry point for the archivist CLI application.
// All the actual logic lives in internal/commands.
package main

import (
	"os"

	"github.com/wlame/archivist/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(err)
		os.Exit(commands.ExitCode(err))
	}
}
