package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
	"github.com/ha1tch/chart-toolkit/pkg/chartfile"
)

func newRenderCmd() *cobra.Command {
	var (
		output  string
		format  string
		browser bool
	)
	cmd := &cobra.Command{
		Use:   "render <data>",
		Short: "Render a chart to SVG or PNG",
		Example: `  chart render sales.tsv -c sales.yaml -o sales.svg
  chart render sales.xlsx -c pie.yaml -o pie.png --browser`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger()

			outFormat, err := outputFormat(output, format)
			if err != nil {
				return err
			}

			l, fonts, err := loadLayout(args[0])
			if err != nil {
				return err
			}
			log.Printf("laid out %s chart %dx%d", l.Config.Type, l.Config.Width, l.Config.Height)
			if l.Pie != nil {
				log.Printf("pie resolver: top %+v, bottom %+v", l.Pie.Top, l.Pie.Bottom)
			}

			var buf bytes.Buffer
			switch {
			case outFormat == "svg":
				err = chartfile.RenderSVG(&buf, l)
			case browser:
				err = chartfile.RasterizeSVG(context.Background(), chartfile.SVGString(l), &buf,
					chartfile.BrowserOptions{Logger: log})
			default:
				err = chartfile.RenderPNG(&buf, l, chartfile.PNGOptions{Measurer: fonts})
			}
			if err != nil {
				return err
			}

			if output == "" {
				if outFormat == "png" && term.IsTerminal(int(os.Stdout.Fd())) {
					return fail("refusing to write PNG to a terminal; use -o")
				}
				_, err = io.Copy(cmd.OutOrStdout(), &buf)
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			log.Printf("wrote %s (%d bytes)", output, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: svg or png (default: from -o, else svg)")
	cmd.Flags().BoolVar(&browser, "browser", false, "Rasterize PNG with headless Chrome instead of the built-in renderer")
	return cmd
}

// outputFormat resolves the output format from the flag or the file
// extension.
func outputFormat(output, format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(output)), ".")
	}
	switch f {
	case "", "svg":
		return "svg", nil
	case "png":
		return "png", nil
	}
	return "", fail("unknown output format %q (must be svg or png)", f)
}

// loadLayout reads the config and data and lays the chart out with real
// font metrics, returning the measurer for reuse by the PNG renderer.
func loadLayout(dataPath string) (*chartfile.ChartLayout, *chart.FontMeasurer, error) {
	cfg := chartfile.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = chartfile.LoadConfig(configPath); err != nil {
			return nil, nil, err
		}
	}

	series, err := chartfile.LoadSeries(dataPath)
	if err != nil {
		return nil, nil, err
	}

	fonts, err := chart.NewFontMeasurer(nil)
	if err != nil {
		return nil, nil, err
	}
	l, err := chartfile.Layout(cfg, series, fonts)
	if err != nil {
		return nil, nil, fmt.Errorf("layout %s: %w", dataPath, err)
	}
	return l, fonts, nil
}
