package main

import (
	"os"

	"github.com/phanxgames/constellation/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
