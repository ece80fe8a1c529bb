// Package cmd assembles the command line interface: the root command, its
// global flags and the fetch, unpack, ingest and export subcommands.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/mamedat/cmd/export"
	"github.com/tphakala/mamedat/cmd/fetch"
	"github.com/tphakala/mamedat/cmd/ingest"
	"github.com/tphakala/mamedat/cmd/unpack"
	"github.com/tphakala/mamedat/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mamedat",
		Short: "Fetch, unpack, ingest and export MAME machine metadata",
	}

	setupFlags(rootCmd, settings)

	subcommands := []*cobra.Command{
		fetch.Command(settings),
		unpack.Command(settings),
		ingest.Command(settings),
		export.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags defines the global flags and binds them to viper so command line
// arguments override file and environment configuration.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVarP(&settings.Debug, "debug", "d", settings.Debug, "Enable debug output")
	rootCmd.PersistentFlags().StringVarP(&settings.Workspace, "workspace", "w", settings.Workspace, "Base directory for downloads and extracted data")
	rootCmd.PersistentFlags().StringSliceVarP(&settings.Sources, "sources", "s", settings.Sources, "Data sources to process (default: all)")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("sources", rootCmd.PersistentFlags().Lookup("sources"))
}
