package main

import (
	"fmt"
	"os"

	"github.com/tphakala/mamedat/cmd"
	"github.com/tphakala/mamedat/internal/conf"
	"github.com/tphakala/mamedat/internal/logging"
)

func main() {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(settings.Debug)

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
