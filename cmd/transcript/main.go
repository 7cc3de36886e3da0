package main

import (
	"os"

	"github.com/rhyanvargas/interactive-transcript/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
