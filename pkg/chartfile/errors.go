package chartfile

import (
	"errors"
	"fmt"
)

// ErrUnknownChartType indicates a config names a chart type this package
// cannot lay out.
var ErrUnknownChartType = errors.New("unknown chart type")

// ErrNoData indicates the input held no usable series.
var ErrNoData = errors.New("no data")

// LoadError reports a malformed cell in a data file.
type LoadError struct {
	Source string // file path or sheet name
	Line   int    // 1-based row number
	Err    error
}

func (e *LoadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
