// Command chart lays out and renders charts from TSV or XLSX data.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "chart",
		Short: "Lay out and render charts",
		Long: `chart lays out line, bar, histogram and pie charts from tabular data
and renders them as SVG or PNG.

Data files hold a header row, positions (dates or categories) in the first
column and one series per remaining column.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Chart config file (YAML)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	root.AddCommand(newRenderCmd(), newInspectCmd(), newTicksCmd())
	return root
}

// logger returns a stderr logger when --verbose is set, a silent one
// otherwise.
func logger() *log.Logger {
	if !verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "chart: ", log.Ltime)
}

func fail(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
