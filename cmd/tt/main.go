package main

import (
	"fmt"
	"os"

	"github.com/babarot/tt/internal/cli"
)

const appName = "tt"

// Overwritten at build time via -ldflags.
var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
