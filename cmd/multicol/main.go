package main

import (
	"os"

	"github.com/jask/multicol/cmd/multicol/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
