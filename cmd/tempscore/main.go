package main

import (
	"os"

	"github.com/oortis/tempscore/cmd/tempscore/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
