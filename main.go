package main

import (
	"os"

	"github.com/vstratful/openrouter-launcher/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
