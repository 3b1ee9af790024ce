package main

import (
	"os"

	"github.com/rustyeddy/lotsize/cmd/lotsize/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
