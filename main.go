package main

import (
	"os"

	"duomonggo_backend/internals/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
