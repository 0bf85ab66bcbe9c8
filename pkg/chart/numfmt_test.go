package chart

import (
	"errors"
	"testing"
)

func TestParseNumberFormat(t *testing.T) {
	tests := []struct {
		pattern string
		want    NumberFormat
	}{
		{"", FormatPlain},
		{"0", FormatPlain},
		{"#,##0", FormatGrouped},
		{"#,##0%", FormatPercentGrouped},
		{"0%", FormatPercentPlain},
		{"0.0", FormatPlain},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := ParseNumberFormat(tt.pattern)
			if err != nil {
				t.Fatalf("ParseNumberFormat(%q) error: %v", tt.pattern, err)
			}
			if got != tt.want {
				t.Errorf("ParseNumberFormat(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}
}

func TestParseNumberFormatRejectsUnknown(t *testing.T) {
	_, err := ParseNumberFormat("yyyy/mm")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Expected ErrInvalidArgument, got %v", err)
	}
}

func TestNumberFormatFormat(t *testing.T) {
	tests := []struct {
		format NumberFormat
		value  float64
		want   string
	}{
		{FormatPlain, 1234.4, "1234"},
		{FormatPlain, 1234.5, "1235"},
		{FormatGrouped, 1234567, "1,234,567"},
		{FormatGrouped, -9876.6, "-9,877"},
		{FormatGrouped, 999, "999"},
		{FormatPercentGrouped, 0.456, "46%"},
		{FormatPercentGrouped, 12.5, "1,250%"},
		{FormatPercentPlain, 12.5, "1250%"},
		{FormatPlain, 0, "0"},
	}

	for _, tt := range tests {
		got := tt.format.Format(tt.value)
		if got != tt.want {
			t.Errorf("%v.Format(%v) = %q, want %q", tt.format, tt.value, got, tt.want)
		}
	}
}

func TestFormatPercentage(t *testing.T) {
	if got := formatPercentage(12.345); got != "12.3%" {
		t.Errorf("Expected 12.3%%, got %s", got)
	}
	if got := formatPercentage(100); got != "100.0%" {
		t.Errorf("Expected 100.0%%, got %s", got)
	}
}
