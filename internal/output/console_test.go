package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylift-io/skyctl/internal/cli/pretty"
)

var testFields = []FieldSpec{
	Field("name", "Name"),
	Field("status", "Status"),
}

func newTestHandler(t *testing.T, interactive bool, pageSize int) (*Handler, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	msgs := &bytes.Buffer{}
	h := NewHandler(
		WithWriter(out),
		WithMessagePrinter(pretty.NewPrinter(msgs)),
		WithInteractive(interactive),
		WithPageSize(pageSize),
		WithPagerFactory(func() (io.WriteCloser, error) {
			return nopWriteCloser{out}, nil
		}),
	)
	return h, out, msgs
}

func TestPrintItem_NotFound(t *testing.T) {
	h, out, msgs := newTestHandler(t, false, 0)

	err := h.PrintItem(nil, testFields)
	require.NoError(t, err)

	assert.Empty(t, out.String())
	assert.Equal(t, 1, strings.Count(msgs.String(), "\n"))
	assert.Contains(t, msgs.String(), "No matching entry found.")
}

func TestPrintItem_FieldValueTable(t *testing.T) {
	h, out, _ := newTestHandler(t, false, 0)

	err := h.PrintItem(Item{"name": "agent-7", "status": "ALIVE"}, testFields)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 4) // header, separator, two value rows
	assert.Contains(t, lines[0], "Field")
	assert.Contains(t, lines[0], "Value")
	assert.Contains(t, out.String(), "agent-7")
	assert.Contains(t, out.String(), "ALIVE")
}

func TestPrintItem_UncoveredKeyIsFatal(t *testing.T) {
	h, _, _ := newTestHandler(t, false, 0)

	err := h.PrintItem(Item{"name": "x", "surprise": 1}, testFields[:1])
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surprise")
}

func TestPrintItems_DividerCount(t *testing.T) {
	tests := []struct {
		name  string
		count int
	}{
		{name: "empty", count: 0},
		{name: "single", count: 1},
		{name: "several", count: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, out, _ := newTestHandler(t, false, 0)

			items := make([]Item, tt.count)
			for i := range items {
				items[i] = Item{"name": fmt.Sprintf("item-%d", i), "status": "ok"}
			}
			require.NoError(t, h.PrintItems(items, testFields))

			dividers := strings.Count(out.String(), itemDivider)
			headers := strings.Count(out.String(), "Field")
			if tt.count == 0 {
				assert.Empty(t, out.String())
				return
			}
			assert.Equal(t, tt.count-1, dividers)
			assert.Equal(t, tt.count, headers)
		})
	}
}

func TestPrintList_NonInteractiveStreamsEverything(t *testing.T) {
	h, out, _ := newTestHandler(t, false, 0)

	items := []Item{
		{"name": "a", "status": "ok"},
		{"name": "b", "status": "ok"},
		{"name": "c", "status": "dead"},
	}
	require.NoError(t, h.PrintList(items, testFields))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 5) // header + separator + 3 rows
	assert.Contains(t, lines[2], "a")
	assert.Contains(t, lines[4], "dead")
}

func TestPrintList_InteractiveEmptySkipsPager(t *testing.T) {
	pagerStarted := false
	out := &bytes.Buffer{}
	h := NewHandler(
		WithWriter(out),
		WithInteractive(true),
		WithPageSize(5),
		WithPagerFactory(func() (io.WriteCloser, error) {
			pagerStarted = true
			return nopWriteCloser{out}, nil
		}),
	)

	require.NoError(t, h.PrintList(nil, testFields))

	assert.False(t, pagerStarted)
	assert.Equal(t, noMatchingItems+"\n", out.String())
}

func TestPrintList_InteractivePagesLocalSlice(t *testing.T) {
	h, out, _ := newTestHandler(t, true, 2)

	items := make([]Item, 5)
	for i := range items {
		items[i] = Item{"name": fmt.Sprintf("n%d", i), "status": "ok"}
	}
	require.NoError(t, h.PrintList(items, testFields))

	// One header, all five rows, in original order.
	assert.Equal(t, 1, strings.Count(out.String(), "Name"))
	for i := range items {
		assert.Contains(t, out.String(), fmt.Sprintf("n%d", i))
	}
}

func TestPrintScalarList(t *testing.T) {
	h, out, _ := newTestHandler(t, false, 0)

	fields := []FieldSpec{Field("name", "Name")}
	require.NoError(t, h.PrintScalarList([]any{"gpu", "cpu"}, fields))

	assert.Contains(t, out.String(), "gpu")
	assert.Contains(t, out.String(), "cpu")
}

func TestPrintScalarList_PreconditionViolationPanics(t *testing.T) {
	h, _, _ := newTestHandler(t, false, 0)

	assert.Panics(t, func() {
		_ = h.PrintScalarList([]any{"x"}, testFields)
	})
	assert.Panics(t, func() {
		_ = h.PrintScalarList(nil, nil)
	})
}

// pagedFetch builds a FetchFunc over a fixed dataset and records each call.
func pagedFetch(total int, calls *[][2]int) FetchFunc {
	return func(offset, pageSize int) (*PageResult, error) {
		if calls != nil {
			*calls = append(*calls, [2]int{offset, pageSize})
		}
		end := offset + pageSize
		if end > total {
			end = total
		}
		items := make([]Item, 0, end-offset)
		for i := offset; i < end; i++ {
			items = append(items, Item{"name": fmt.Sprintf("row-%d", i), "status": "ok"})
		}
		return &PageResult{Items: items, TotalCount: total, Fields: testFields}, nil
	}
}

func TestPrintPaginatedList_InteractiveFetchesUntilTotal(t *testing.T) {
	h, out, _ := newTestHandler(t, true, 3)

	var calls [][2]int
	require.NoError(t, h.PrintPaginatedList(pagedFetch(8, &calls), 0, 0))

	// ceil(8/3) = 3 fetches, offsets advance by page length.
	require.Len(t, calls, 3)
	assert.Equal(t, [2]int{0, 3}, calls[0])
	assert.Equal(t, [2]int{3, 3}, calls[1])
	assert.Equal(t, [2]int{6, 3}, calls[2])

	// Exactly TotalCount rows, single header.
	assert.Equal(t, 8, strings.Count(out.String(), "row-"))
	assert.Equal(t, 1, strings.Count(out.String(), "Name"))
}

func TestPrintPaginatedList_EmptyFirstPageStopsFetching(t *testing.T) {
	h, out, _ := newTestHandler(t, true, 3)

	var calls [][2]int
	require.NoError(t, h.PrintPaginatedList(pagedFetch(0, &calls), 0, 0))

	assert.Len(t, calls, 1)
	assert.Equal(t, noMatchingItems+"\n", out.String())
}

func TestPrintPaginatedList_NonInteractiveEmptyPrintsHeader(t *testing.T) {
	h, out, _ := newTestHandler(t, false, 0)

	var calls [][2]int
	require.NoError(t, h.PrintPaginatedList(pagedFetch(0, &calls), 0, 0))

	assert.Len(t, calls, 1)
	assert.Contains(t, out.String(), "Name")
	assert.NotContains(t, out.String(), noMatchingItems)
}

func TestPrintPaginatedList_NonInteractiveSinglePage(t *testing.T) {
	h, out, _ := newTestHandler(t, false, 0)

	var calls [][2]int
	require.NoError(t, h.PrintPaginatedList(pagedFetch(100, &calls), 0, 0))

	// One fetch with the default page size of 20, nothing more.
	require.Len(t, calls, 1)
	assert.Equal(t, [2]int{0, 20}, calls[0])
	assert.Equal(t, 20, strings.Count(out.String(), "row-"))
}

func TestPrintPaginatedList_ExplicitPageSizeDisablesPaging(t *testing.T) {
	h, out, _ := newTestHandler(t, true, 3)

	var calls [][2]int
	require.NoError(t, h.PrintPaginatedList(pagedFetch(100, &calls), 10, 5))

	require.Len(t, calls, 1)
	assert.Equal(t, [2]int{10, 5}, calls[0])
	assert.Equal(t, 5, strings.Count(out.String(), "row-"))
	assert.Contains(t, out.String(), "row-10")
}

func TestPrintPaginatedList_FetchErrorSurfaces(t *testing.T) {
	h, _, _ := newTestHandler(t, true, 3)

	boom := errors.New("connection refused")
	fetch := func(offset, pageSize int) (*PageResult, error) {
		if offset == 0 {
			return &PageResult{
				Items:      []Item{{"name": "x", "status": "ok"}},
				TotalCount: 10,
				Fields:     testFields,
			}, nil
		}
		return nil, boom
	}

	err := h.PrintPaginatedList(fetch, 0, 0)
	assert.ErrorIs(t, err, boom)
}

// quittingPager accepts a limited number of writes, then reports EPIPE the
// way a closed pager pipe does.
type quittingPager struct {
	writesLeft int
	closed     bool
}

func (q *quittingPager) Write(b []byte) (int, error) {
	if q.writesLeft <= 0 {
		return 0, syscall.EPIPE
	}
	q.writesLeft--
	return len(b), nil
}

func (q *quittingPager) Close() error {
	q.closed = true
	return nil
}

func TestPrintPaginatedList_PagerQuitStopsFetching(t *testing.T) {
	pager := &quittingPager{writesLeft: 4}
	out := &bytes.Buffer{}
	h := NewHandler(
		WithWriter(out),
		WithInteractive(true),
		WithPageSize(2),
		WithPagerFactory(func() (io.WriteCloser, error) { return pager, nil }),
	)

	var calls [][2]int
	err := h.PrintPaginatedList(pagedFetch(100, &calls), 0, 0)
	require.NoError(t, err)

	// The loop must stop at a page boundary well before 50 fetches.
	assert.Less(t, len(calls), 5)
	assert.True(t, pager.closed)
}
