// ABOUTME: Entry point for the kinetic networking dashboard
// ABOUTME: Loads .env files and hands off to the cobra command tree
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/harperreed/kinetic/cli"
)

const version = "0.1.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := cli.Execute(version); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
