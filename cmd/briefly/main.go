package main

import (
	"fmt"
	"os"

	"briefly/cmd/briefly/cmd"
	"briefly/internal/config"
)

func main() {
	// Keys may also come straight from the environment, so a broken .env only warns
	if _, err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration warning: %v\n", err)
	}

	cmd.Execute()
}
