package chart

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NumberFormat is a resolved number-format pattern such as "#,##0%".
type NumberFormat int

const (
	FormatPlain          NumberFormat = iota // "0": rounded integer
	FormatGrouped                            // "#,##0": thousands grouping
	FormatPercentGrouped                     // "#,##0%": ×100, grouping, trailing %
	FormatPercentPlain                       // "0%": ×100, trailing %
)

// ParseNumberFormat resolves a pattern once. A "%" triggers ×100 scaling
// and a trailing percent sign; a "," triggers thousands grouping. Patterns
// may only contain '#', '0', ',', '.' and '%'.
func ParseNumberFormat(pattern string) (NumberFormat, error) {
	p := strings.TrimSpace(pattern)
	for _, r := range p {
		switch r {
		case '#', '0', ',', '.', '%':
		default:
			return FormatPlain, invalidArg("format", pattern, "unsupported character %q", r)
		}
	}

	percent := strings.Contains(p, "%")
	grouped := strings.Contains(p, ",")
	switch {
	case percent && grouped:
		return FormatPercentGrouped, nil
	case percent:
		return FormatPercentPlain, nil
	case grouped:
		return FormatGrouped, nil
	}
	return FormatPlain, nil
}

// IsPercent reports whether the format scales by 100.
func (f NumberFormat) IsPercent() bool {
	return f == FormatPercentGrouped || f == FormatPercentPlain
}

// IsGrouped reports whether the format groups thousands.
func (f NumberFormat) IsGrouped() bool {
	return f == FormatGrouped || f == FormatPercentGrouped
}

// Format renders v according to the format.
func (f NumberFormat) Format(v float64) string {
	if !isFinite(v) {
		v = 0
	}
	if f.IsPercent() {
		v *= 100
	}
	n := int64(math.Round(v))

	var s string
	if f.IsGrouped() {
		s = message.NewPrinter(language.English).Sprintf("%d", n)
	} else {
		s = strconv.FormatInt(n, 10)
	}
	if f.IsPercent() {
		s += "%"
	}
	return s
}

func (f NumberFormat) String() string {
	switch f {
	case FormatPlain:
		return "0"
	case FormatGrouped:
		return "#,##0"
	case FormatPercentGrouped:
		return "#,##0%"
	case FormatPercentPlain:
		return "0%"
	}
	return "NumberFormat(" + strconv.Itoa(int(f)) + ")"
}

// formatPercentage renders a percentage with one decimal place.
func formatPercentage(p float64) string {
	return strconv.FormatFloat(roundTo(p, 1), 'f', 1, 64) + "%"
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
