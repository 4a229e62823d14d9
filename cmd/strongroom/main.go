package main

import (
	"os"

	"github.com/strongroom-dev/strongroom/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
