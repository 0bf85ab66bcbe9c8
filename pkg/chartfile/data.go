// Series loading from tabular files.
//
// Both TSV and XLSX inputs share one layout: a header row, the first
// column holding positions (dates or categories), and one series per
// remaining column. A column headed "annotation" annotates its row.

package chartfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ha1tch/chart-toolkit/pkg/chart"
)

// AnnotationColumn is the header that marks the annotation column.
const AnnotationColumn = "annotation"

// LoadTSV reads tab-separated series.
func LoadTSV(r io.Reader) ([]chart.Series, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read tsv: %w", err)
	}
	return seriesFromRows(rows)
}

// LoadXLSX reads series from a workbook sheet, the first sheet when sheet
// is empty.
func LoadXLSX(path, sheet string) ([]chart.Series, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoData
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	series, err := seriesFromRows(rows)
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		loadErr.Source = sheet
	}
	return series, err
}

// LoadSeries loads a data file, choosing the reader by extension.
func LoadSeries(path string) ([]chart.Series, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		series, err := LoadXLSX(path, "")
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Source = path + "[" + loadErr.Source + "]"
		}
		return series, err
	case ".tsv", ".tab", ".txt":
	default:
		return nil, fmt.Errorf("unsupported data file %q (want .tsv, .txt or .xlsx)", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	series, err := LoadTSV(f)
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		loadErr.Source = path
	}
	return series, err
}

func seriesFromRows(rows [][]string) ([]chart.Series, error) {
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, ErrNoData
	}

	header := rows[0]
	annotationCol := -1
	var cols []int
	var series []chart.Series
	for i := 1; i < len(header); i++ {
		name := strings.TrimSpace(header[i])
		if strings.EqualFold(name, AnnotationColumn) {
			if annotationCol < 0 {
				annotationCol = i
			}
			continue
		}
		cols = append(cols, i)
		series = append(series, chart.Series{Name: name})
	}
	if len(series) == 0 {
		return nil, ErrNoData
	}

	for r := 1; r < len(rows); r++ {
		row := rows[r]
		position := cell(row, 0)
		if position == "" {
			continue
		}
		annotation := ""
		if annotationCol >= 0 {
			annotation = cell(row, annotationCol)
		}

		for s, col := range cols {
			text := cell(row, col)
			if text == "" {
				continue
			}
			v, err := parseNumber(text)
			if err != nil {
				return nil, &LoadError{Line: r + 1, Err: fmt.Errorf("column %q: %w", series[s].Name, err)}
			}
			series[s].Entries = append(series[s].Entries, chart.Entry{
				Position:   position,
				Value:      v,
				Annotation: annotation,
			})
		}
	}
	return series, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseNumber accepts plain numbers, thousands separators and a trailing
// percent sign ("12.5%" is 0.125).
func parseNumber(s string) (float64, error) {
	text := strings.ReplaceAll(s, ",", "")
	scale := 1.0
	if strings.HasSuffix(text, "%") {
		text = strings.TrimSpace(strings.TrimSuffix(text, "%"))
		scale = 0.01
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", s)
	}
	return v * scale, nil
}
