// Package unpack implements the unpack subcommand: extract the downloaded
// archives into per-source directories.
package unpack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tphakala/mamedat/internal/conf"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
	"github.com/tphakala/mamedat/internal/unpacker"
)

// Command creates the unpack command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "unpack",
		Short: "Extract the downloaded archives of the selected data sources",
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

	extractDirFor := func(dt mamedata.DataType) string {
		return settings.ExtractDir(dt.String())
	}
	paths, errs := unpacker.UnpackAll(types, settings.DownloadDir(), extractDirFor, progress.Console(os.Stdout))

	for dt, path := range paths {
		fmt.Printf("%s: %s\n", dt, path)
	}
	if len(errs) > 0 {
		for dt, err := range errs {
			fmt.Fprintf(os.Stderr, "%s: %v\n", dt, err)
		}
		return fmt.Errorf("%d of %d extractions failed", len(errs), len(types))
	}
	return nil
}
