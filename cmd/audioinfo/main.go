package main

import (
	"os"

	"github.com/simonhull/audioinfo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
