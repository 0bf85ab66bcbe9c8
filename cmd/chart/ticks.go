package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

func newTicksCmd() *cobra.Command {
	var (
		percent bool
		pattern string
	)
	cmd := &cobra.Command{
		Use:     "ticks <values...>",
		Short:   "Print the value axis for a list of numbers",
		Example: "  chart ticks 12 480 3999\n  chart ticks 0.25 0.5 --percent",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := parseValues(args)
			if err != nil {
				return err
			}
			f, err := chart.ParseNumberFormat(pattern)
			if err != nil {
				return err
			}

			scale := chart.LinearTicks(values, percent || f.IsPercent())
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "interval %g, ceiling %g\n", scale.Interval, scale.Max)
			for _, text := range scale.Texts(f) {
				fmt.Fprintln(w, text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&percent, "percent", false, "Treat values as ratios on a percentage axis")
	cmd.Flags().StringVar(&pattern, "format", "#,##0", "Number format for labels")
	return cmd
}

func parseValues(args []string) ([]float64, error) {
	values := make([]float64, len(args))
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fail("not a number: %q", a)
		}
		values[i] = v
	}
	return values, nil
}
