package output

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter converts a raw attribute value into its console representation.
// The supported formatters form a closed set; commands pick one per field
// at construction time rather than dispatching through a registry.
type Formatter interface {
	Format(v any, spec FieldSpec) string
}

// nullDisplay is shown for absent values.
const nullDisplay = "-"

// bytesPerMiB converts raw byte counts for MiBFormatter.
const bytesPerMiB = 1 << 20

// TextFormatter renders values with their default Go formatting.
type TextFormatter struct{}

// Format implements Formatter.
func (TextFormatter) Format(v any, _ FieldSpec) string {
	if v == nil {
		return nullDisplay
	}
	return fmt.Sprintf("%v", v)
}

// SizeFormatter renders integral byte counts with thousands separators.
type SizeFormatter struct{}

// Format implements Formatter.
func (SizeFormatter) Format(v any, spec FieldSpec) string {
	n, ok := asInt64(v)
	if !ok {
		return TextFormatter{}.Format(v, spec)
	}
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", n)
}

// MiBFormatter renders raw byte counts as MiB with one decimal place,
// matching the agent resource listings.
type MiBFormatter struct{}

// Format implements Formatter.
func (MiBFormatter) Format(v any, spec FieldSpec) string {
	n, ok := asFloat64(v)
	if !ok {
		return TextFormatter{}.Format(v, spec)
	}
	return fmt.Sprintf("%.1f", n/bytesPerMiB)
}

// TimeFormatter renders RFC 3339 timestamps in a compact local form.
type TimeFormatter struct{}

// timeDisplayLayout is the display form for timestamps.
const timeDisplayLayout = "2006-01-02 15:04:05"

// Format implements Formatter.
func (TimeFormatter) Format(v any, spec FieldSpec) string {
	switch t := v.(type) {
	case nil:
		return nullDisplay
	case time.Time:
		return t.Local().Format(timeDisplayLayout)
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return t
		}
		return parsed.Local().Format(timeDisplayLayout)
	default:
		return TextFormatter{}.Format(v, spec)
	}
}

// NestedFormatter renders nested objects and arrays as compact JSON.
type NestedFormatter struct{}

// Format implements Formatter.
func (NestedFormatter) Format(v any, spec FieldSpec) string {
	if v == nil {
		return nullDisplay
	}
	data, err := json.Marshal(v)
	if err != nil {
		return TextFormatter{}.Format(v, spec)
	}
	return string(data)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		return i, err == nil
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
