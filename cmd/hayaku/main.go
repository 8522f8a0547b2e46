package main

import (
	"os"

	"github.com/k88hudson/hayaku/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
