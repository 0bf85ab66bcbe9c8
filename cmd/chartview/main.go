// Command chartview previews a chart in the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
	"github.com/ha1tch/chart-toolkit/pkg/chartfile"
)

func main() {
	var configPath string
	cmd := &cobra.Command{
		Use:   "chartview [-c config.yaml] <data>",
		Short: "Preview a chart in the terminal",
		Long: `chartview draws a chart into the terminal.

Keys:
  q, Esc   quit
  r        merge small pie labels into "Others" / restore them
  resize   redraws at the new size`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := chartfile.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = chartfile.LoadConfig(configPath); err != nil {
					return err
				}
			}
			series, err := chartfile.LoadSeries(args[0])
			if err != nil {
				return err
			}
			return view(cfg, series)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Chart config file (YAML)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func view(cfg chartfile.Config, series []chart.Series) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	v := &Viewer{screen: screen, cfg: cfg, series: series}
	v.run()
	return v.err
}
