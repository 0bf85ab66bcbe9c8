// Fuzz tests for data and config parsing.
// Run with: go test -fuzz=FuzzLoadTSV -fuzztime=30s ./pkg/chartfile/

package chartfile

import (
	"strings"
	"testing"
)

// FuzzLoadTSV tests the TSV reader with arbitrary input.
// Looking for panics on ragged or malformed tables.
func FuzzLoadTSV(f *testing.F) {
	f.Add("date\tsales\n2024-01-01\t12\n")
	f.Add("city\tpeople\tannotation\nTokyo\t14\tcapital\n")
	f.Add("")
	f.Add("a\n")
	f.Add("a\tb\n\t\t\t\n")
	f.Add("a\tb\nx\t1,2,3%\n")
	f.Add("a\tb\n\"x\t1\n")

	f.Fuzz(func(t *testing.T, data string) {
		series, err := LoadTSV(strings.NewReader(data))
		if err != nil {
			return
		}
		// a successful load must lay out without panicking
		_, _ = Layout(DefaultConfig(), series, nil)
	})
}

// FuzzParseConfig tests the YAML config parser.
func FuzzParseConfig(f *testing.F) {
	f.Add([]byte("type: pie\npie:\n  start_angle: 90\n"))
	f.Add([]byte("type: histogram\nhistogram: {bins: 12, smooth: true}\n"))
	f.Add([]byte("axis: {format: '0%'}"))
	f.Add([]byte(""))
	f.Add([]byte("{"))

	f.Fuzz(func(t *testing.T, data []byte) {
		cfg, err := ParseConfig(data)
		if err != nil {
			return
		}
		if err := cfg.Validate(); err != nil {
			t.Fatalf("ParseConfig returned an invalid config: %v", err)
		}
	})
}
