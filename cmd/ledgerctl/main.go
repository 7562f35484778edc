package main

import (
	"os"

	"github.com/khata-labs/ledger-server/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
