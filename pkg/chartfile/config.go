// Chart configuration files.

package chartfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

// ChartType selects the chart drawn from the data.
type ChartType string

const (
	TypeLine      ChartType = "line"
	TypeBar       ChartType = "bar"
	TypeHistogram ChartType = "histogram"
	TypePie       ChartType = "pie"
)

// X-axis modes for line and bar charts.
const (
	AxisAuto     = "auto"     // dates when every position parses as one
	AxisDate     = "date"     // calendar axis with thinned date labels
	AxisCategory = "category" // one band per distinct position
)

// Config describes one chart. It maps directly to the YAML file.
type Config struct {
	Type   ChartType `yaml:"type"`
	Title  string    `yaml:"title"`
	Width  int       `yaml:"width"`  // canvas width in pixels
	Height int       `yaml:"height"` // canvas height in pixels

	Axis struct {
		XTitle     string `yaml:"x_title"`
		YTitle     string `yaml:"y_title"`
		Format     string `yaml:"format"`      // number format, e.g. "#,##0" or "0%"
		DateFormat string `yaml:"date_format"` // auto, date or category
		GridX      bool   `yaml:"grid_x"`
		GridY      bool   `yaml:"grid_y"`
	} `yaml:"axis"`

	Histogram struct {
		BinWidth float64 `yaml:"bin_width"` // wins over bins when set
		Bins     int     `yaml:"bins"`
		Smooth   bool    `yaml:"smooth"` // overlay a smoothed frequency curve
	} `yaml:"histogram"`

	Pie struct {
		StartAngle       float64 `yaml:"start_angle"`
		OthersLabel      string  `yaml:"others_label"`
		LabelFormat      string  `yaml:"label_format"`
		ValueFormat      string  `yaml:"value_format"`
		Placement        string  `yaml:"placement"`
		SmallThreshold   float64 `yaml:"small_threshold"`
		Padding          float64 `yaml:"padding"`
		TopWindow        float64 `yaml:"top_window"`
		TopIterations    int     `yaml:"top_iterations"`
		BottomWindow     float64 `yaml:"bottom_window"`
		BottomIterations int     `yaml:"bottom_iterations"`
		BottomStep       float64 `yaml:"bottom_step"`
		Resolve          bool    `yaml:"resolve"` // run the label collision passes
	} `yaml:"pie"`

	Font struct {
		Size float64 `yaml:"size"`
	} `yaml:"font"`
}

// DefaultConfig returns a line chart with the standard pie parameters, so
// a YAML file only needs the fields it changes.
func DefaultConfig() Config {
	var c Config
	c.Type = TypeLine
	c.Width = 800
	c.Height = 480
	c.Axis.Format = "#,##0"
	c.Axis.DateFormat = AxisAuto
	c.Axis.GridY = true

	p := chart.DefaultPieOptions()
	c.Pie.StartAngle = p.StartAngle
	c.Pie.OthersLabel = p.OthersLabel
	c.Pie.LabelFormat = p.LabelFormat.String()
	c.Pie.ValueFormat = "#,##0"
	c.Pie.Placement = "auto"
	c.Pie.SmallThreshold = p.SmallThreshold
	c.Pie.Padding = p.Padding
	c.Pie.TopWindow = p.TopWindow
	c.Pie.TopIterations = p.TopIterations
	c.Pie.BottomWindow = p.BottomWindow
	c.Pie.BottomIterations = p.BottomIterations
	c.Pie.BottomStep = p.BottomStep
	c.Pie.Resolve = true

	c.Font.Size = p.FontSize
	return c
}

// LoadConfig reads a YAML config file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.Type = ChartType(strings.ToLower(strings.TrimSpace(string(cfg.Type))))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the chart type, canvas size and every format string.
func (c Config) Validate() error {
	switch c.Type {
	case TypeLine, TypeBar, TypeHistogram, TypePie:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownChartType, c.Type)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if _, err := c.NumberFormat(); err != nil {
		return err
	}
	switch strings.ToLower(c.Axis.DateFormat) {
	case "", AxisAuto, AxisDate, AxisCategory:
	default:
		return fmt.Errorf("invalid axis.date_format %q (must be auto, date or category)", c.Axis.DateFormat)
	}
	if err := c.BinOptions().Validate(); err != nil {
		return err
	}
	if _, err := c.PieOptions(); err != nil {
		return err
	}
	return nil
}

// NumberFormat resolves axis.format.
func (c Config) NumberFormat() (chart.NumberFormat, error) {
	return chart.ParseNumberFormat(c.Axis.Format)
}

// XAxisMode returns the normalized axis.date_format.
func (c Config) XAxisMode() string {
	mode := strings.ToLower(strings.TrimSpace(c.Axis.DateFormat))
	if mode == "" {
		return AxisAuto
	}
	return mode
}

// BinOptions returns the histogram binning settings.
func (c Config) BinOptions() chart.BinOptions {
	return chart.BinOptions{Width: c.Histogram.BinWidth, Count: c.Histogram.Bins}
}

// PieOptions assembles and validates the pie layout options.
func (c Config) PieOptions() (chart.PieOptions, error) {
	opts := chart.DefaultPieOptions()
	opts.StartAngle = c.Pie.StartAngle
	opts.OthersLabel = c.Pie.OthersLabel
	opts.SmallThreshold = c.Pie.SmallThreshold
	opts.Padding = c.Pie.Padding
	opts.TopWindow = c.Pie.TopWindow
	opts.TopIterations = c.Pie.TopIterations
	opts.BottomWindow = c.Pie.BottomWindow
	opts.BottomIterations = c.Pie.BottomIterations
	opts.BottomStep = c.Pie.BottomStep
	opts.FontSize = c.Font.Size

	var err error
	if c.Pie.LabelFormat != "" {
		if opts.LabelFormat, err = chart.ParseLabelFormat(c.Pie.LabelFormat); err != nil {
			return opts, err
		}
	}
	if c.Pie.ValueFormat != "" {
		if opts.ValueFormat, err = chart.ParseNumberFormat(c.Pie.ValueFormat); err != nil {
			return opts, err
		}
	}
	if opts.Placement, err = chart.ParseLabelPlacement(c.Pie.Placement); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}
