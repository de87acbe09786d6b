package output

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTextFormatter(t *testing.T) {
	spec := Field("x", "X")
	assert.Equal(t, "hello", TextFormatter{}.Format("hello", spec))
	assert.Equal(t, "42", TextFormatter{}.Format(42, spec))
	assert.Equal(t, "true", TextFormatter{}.Format(true, spec))
	assert.Equal(t, nullDisplay, TextFormatter{}.Format(nil, spec))
}

func TestSizeFormatter(t *testing.T) {
	spec := Field("size", "Size")
	assert.Equal(t, "1,048,576", SizeFormatter{}.Format(1048576, spec))
	assert.Equal(t, "1,048,576", SizeFormatter{}.Format(float64(1048576), spec))
	assert.Equal(t, "0", SizeFormatter{}.Format(0, spec))
	// Non-numeric input falls back to plain text.
	assert.Equal(t, "n/a", SizeFormatter{}.Format("n/a", spec))
}

func TestMiBFormatter(t *testing.T) {
	spec := Field("mem", "Used Memory (MiB)")
	assert.Equal(t, "1.0", MiBFormatter{}.Format(1<<20, spec))
	assert.Equal(t, "1.5", MiBFormatter{}.Format(float64(3<<19), spec))
	assert.Equal(t, nullDisplay, MiBFormatter{}.Format(nil, spec))
}

func TestTimeFormatter(t *testing.T) {
	spec := Field("created_at", "Created At")

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	assert.Equal(t, ts.Local().Format(timeDisplayLayout), TimeFormatter{}.Format(ts, spec))
	assert.Equal(t,
		ts.Local().Format(timeDisplayLayout),
		TimeFormatter{}.Format("2026-03-14T09:26:53Z", spec))

	// Unparseable strings pass through untouched.
	assert.Equal(t, "sometime", TimeFormatter{}.Format("sometime", spec))
	assert.Equal(t, nullDisplay, TimeFormatter{}.Format(nil, spec))
}

func TestNestedFormatter(t *testing.T) {
	spec := Field("slots", "Slots")
	got := NestedFormatter{}.Format(map[string]any{"cpu": 8}, spec)
	assert.JSONEq(t, `{"cpu":8}`, got)
	assert.Equal(t, nullDisplay, NestedFormatter{}.Format(nil, spec))
}
