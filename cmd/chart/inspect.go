package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
	"github.com/ha1tch/chart-toolkit/pkg/chartfile"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <data>",
		Short: "Print the computed layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLayout(args[0])
			if err != nil {
				return err
			}
			writeInspect(cmd.OutOrStdout(), l)
			return nil
		},
	}
}

func writeInspect(w io.Writer, l *chartfile.ChartLayout) {
	fmt.Fprintf(w, "Type:   %s\n", l.Config.Type)
	fmt.Fprintf(w, "Canvas: %dx%d\n", l.Config.Width, l.Config.Height)
	if l.Config.Title != "" {
		fmt.Fprintf(w, "Title:  %s\n", l.Config.Title)
	}

	if l.Pie != nil {
		writePie(w, l.Pie)
		return
	}

	fmt.Fprintf(w, "\nValue axis: %s\n", strings.Join(tickTexts(l.YTicks), " "))
	if l.Calendar != nil {
		c := l.Calendar
		fmt.Fprintf(w, "Date axis:  %s .. %s, span %d days, %s labels\n",
			chart.DayDate(c.Days[0]).Format("2006-01-02"),
			chart.DayDate(c.Days[len(c.Days)-1]).Format("2006-01-02"),
			c.Span, c.Mode)
		for _, t := range c.Ticks {
			fmt.Fprintf(w, "  %s  %2s %s\n", t.Date.Format("2006-01-02"), t.FirstLine, t.SecondLine)
		}
	} else if len(l.Categories) > 0 {
		fmt.Fprintf(w, "Categories: %s\n", strings.Join(l.Categories, ", "))
	}

	if l.Bins.Count() > 0 {
		fmt.Fprintf(w, "\nBins (width %g):\n", l.Bins.Width)
		for i, f := range l.Frequencies {
			fmt.Fprintf(w, "  [%g, %g%s  %d\n", l.Bins.Edges[i], l.Bins.Edges[i+1], closing(i, len(l.Frequencies)), f)
		}
		if len(l.Curve) > 0 {
			fmt.Fprintf(w, "Curve: %d segments\n", len(l.Curve))
		}
	}

	for _, s := range l.Series {
		fmt.Fprintf(w, "\nSeries %q: %d points", s.Name, len(s.Points))
		if len(s.Notes) > 0 {
			fmt.Fprintf(w, ", %d notes", len(s.Notes))
		}
		fmt.Fprintln(w)
	}
}

func closing(i, n int) string {
	if i == n-1 {
		return "]"
	}
	return ")"
}

func writePie(w io.Writer, p *chartfile.PieChart) {
	fmt.Fprintf(w, "\nSegments (total %g):\n", p.Pie.Total())
	for _, wedge := range p.Wedges {
		s := wedge.Segment
		mark := ""
		if s.Others {
			mark = " *"
		}
		fmt.Fprintf(w, "  %-16s %10g %6.1f%%  %7.2f..%7.2f%s\n", s.Label, s.Value, s.Percentage, s.StartAngle, s.EndAngle, mark)
	}

	fmt.Fprintf(w, "\nLabels:\n")
	for _, lb := range p.Labels {
		kind := "direct"
		if lb.Leader {
			kind = "leader"
		}
		fmt.Fprintf(w, "  %-24s %6.1f°  (%.0f, %.0f)  %s\n", lb.Text, lb.Bound.Angle, lb.Bound.X, lb.Bound.Y, kind)
	}

	fmt.Fprintf(w, "\nNear-top pass:    success=%v iterations=%d\n", p.Top.Success, p.Top.Iterations)
	fmt.Fprintf(w, "Near-bottom pass: success=%v iterations=%d\n", p.Bottom.Success, p.Bottom.Iterations)
	if p.Pie.HasSnapshot() {
		values, _ := p.Pie.Data()
		fmt.Fprintf(w, "Merged into others (%d categories remain)\n", len(values))
	}
}

func tickTexts(ticks []chartfile.AxisTick) []string {
	out := make([]string, len(ticks))
	for i, t := range ticks {
		out[i] = t.Lines[0]
	}
	return out
}
