// Command oceanus is the entry point for the Oceanus CLI.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/oceanus-cli/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := cli.Execute(version); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
