package main

import (
	"os"

	"github.com/baxromumarov/piseries/cmd/piseries/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
