package main

import (
	"os"

	"github.com/bnema/discord-autochat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
