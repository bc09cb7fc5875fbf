package main

import (
	"os"

	"github.com/abhisek/pyqdeck/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
