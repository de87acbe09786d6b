package cli

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// byteSizePattern accepts a decimal number with an optional binary-scale
// suffix, e.g. "1024", "2k", "1.5g".
var byteSizePattern = regexp.MustCompile(`^(\d+(?:\.\d*)?)([kmgtpe]?)$`)

var byteSizeScales = map[string]float64{
	"":  1,
	"k": 1 << 10,
	"m": 1 << 20,
	"g": 1 << 30,
	"t": 1 << 40,
	"p": 1 << 50,
	"e": 1 << 60,
}

// ByteSizeValue is a pflag.Value that parses human-friendly byte sizes
// ("10g", "512m") into a byte count.
type ByteSizeValue struct {
	bytes int64
	set   bool
}

// NewByteSizeValue creates a ByteSizeValue with a default byte count.
func NewByteSizeValue(defaultBytes int64) *ByteSizeValue {
	return &ByteSizeValue{bytes: defaultBytes}
}

// Set implements pflag.Value.
func (v *ByteSizeValue) Set(s string) error {
	m := byteSizePattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return fmt.Errorf("invalid byte size %q: expected a number with optional k/m/g/t/p/e suffix", s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return fmt.Errorf("invalid byte size %q: %w", s, err)
	}
	v.bytes = int64(n * byteSizeScales[m[2]])
	v.set = true
	return nil
}

// String implements pflag.Value.
func (v *ByteSizeValue) String() string {
	return strconv.FormatInt(v.bytes, 10)
}

// Type implements pflag.Value.
func (v *ByteSizeValue) Type() string { return "bytesize" }

// Bytes returns the parsed byte count.
func (v *ByteSizeValue) Bytes() int64 { return v.bytes }

// Changed reports whether the flag was set explicitly.
func (v *ByteSizeValue) Changed() bool { return v.set }

// JSONValue is a pflag.Value that parses a JSON object literal, for flags
// like --total-resource-slots '{"cpu": "8", "mem": "16g"}'.
type JSONValue struct {
	value map[string]any
	raw   string
}

// Set implements pflag.Value.
func (v *JSONValue) Set(s string) error {
	var parsed map[string]any
	if err := json.Unmarshal([]byte(s), &parsed); err != nil {
		return fmt.Errorf("invalid JSON object %q: %w", s, err)
	}
	v.value = parsed
	v.raw = s
	return nil
}

// String implements pflag.Value.
func (v *JSONValue) String() string { return v.raw }

// Type implements pflag.Value.
func (v *JSONValue) Type() string { return "json" }

// Map returns the parsed object, nil when the flag was not set.
func (v *JSONValue) Map() map[string]any { return v.value }
