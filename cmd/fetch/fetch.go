// Package fetch implements the fetch subcommand: download the current data
// release of every selected source into the workspace.
package fetch

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tphakala/mamedat/internal/conf"
	"github.com/tphakala/mamedat/internal/fetcher"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// Command creates the fetch command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the current archives of the selected data sources",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings)
		},
	}
}

func run(settings *conf.Settings) error {
	types, err := mamedata.ParseDataTypes(settings.Sources)
	if err != nil {
		return err
	}

	f := fetcher.New(nil)
	paths, errs := f.DownloadAll(types, settings.DownloadDir(), progress.Console(os.Stdout))

	for dt, path := range paths {
		fmt.Printf("%s: %s\n", dt, path)
	}
	if len(errs) > 0 {
		for dt, err := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", dt, err)
		}
		return fmt.Errorf("%d of %d downloads failed", len(errs), len(types))
	}
	return nil
}
