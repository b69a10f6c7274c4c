package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/fnolabs/crashtriage/internal/cli"
)

func main() {
	// Local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
