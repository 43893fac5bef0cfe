package main

import (
	"os"

	"checkbot/internal/setup"
)

func main() {
	cmd := setup.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
