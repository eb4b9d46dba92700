package main

import (
	"os"
	_ "time/tzdata"

	"face-logbook/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
