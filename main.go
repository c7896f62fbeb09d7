package main

import (
	"os"

	"github.com/gabrielhgobi/queenswarm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
