package main

import (
	"os"

	"github.com/mmynk/messbook/cmd/messctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
