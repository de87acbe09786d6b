package output

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/skylift-io/skyctl/internal/cli/pretty"
	"github.com/skylift-io/skyctl/internal/logging"
)

// noMatchingItems is printed instead of launching the pager for an empty
// interactive listing. Non-interactive runs emit the table header instead so
// piped output stays parseable.
const noMatchingItems = "No matching items."

// itemDivider separates consecutive item tables in PrintItems.
const itemDivider = "--------------------"

// Handler renders items, lists, and paginated lists to the console.
// Interactive output (stdout is a terminal) goes through an external pager
// with lazily fetched pages; non-interactive output streams the whole table
// immediately.
type Handler struct {
	out         io.Writer
	msg         *pretty.Printer
	interactive func() bool
	pageSize    func() int
	newPager    func() (io.WriteCloser, error)
}

// Option configures a Handler.
type Option func(*Handler)

// WithWriter redirects plain table output (defaults to stdout).
func WithWriter(w io.Writer) Option {
	return func(h *Handler) { h.out = w }
}

// WithMessagePrinter replaces the diagnostic printer (defaults to stderr).
func WithMessagePrinter(p *pretty.Printer) Option {
	return func(h *Handler) { h.msg = p }
}

// WithInteractive forces interactive or non-interactive mode, bypassing
// terminal detection. Used by tests.
func WithInteractive(on bool) Option {
	return func(h *Handler) { h.interactive = func() bool { return on } }
}

// WithPageSize fixes the preferred page size instead of deriving it from
// the terminal height. Used by tests.
func WithPageSize(n int) Option {
	return func(h *Handler) { h.pageSize = func() int { return n } }
}

// WithPagerFactory replaces the pager subprocess launcher. Used by tests.
func WithPagerFactory(f func() (io.WriteCloser, error)) Option {
	return func(h *Handler) { h.newPager = f }
}

// NewHandler creates a console output handler with terminal autodetection.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{
		out: os.Stdout,
		msg: pretty.Default,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		pageSize: PreferredPageSize,
		newPager: func() (io.WriteCloser, error) {
			p, err := startPager()
			if err != nil {
				return nil, err
			}
			return p, nil
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// PrintItem renders a single item as a Field/Value table. A nil item is not
// an error: a "not found" notice is printed instead.
func (h *Handler) PrintItem(item Item, fields []FieldSpec) error {
	if item == nil {
		h.msg.PrintFail("No matching entry found.")
		return nil
	}
	return renderFieldValueTable(h.out, item, fields)
}

// PrintItems renders one Field/Value table per item with a divider line
// between consecutive items. An empty slice emits nothing.
func (h *Handler) PrintItems(items []Item, fields []FieldSpec) error {
	for i, item := range items {
		if i > 0 {
			if _, err := fmt.Fprintln(h.out, itemDivider); err != nil {
				return err
			}
		}
		if err := renderFieldValueTable(h.out, item, fields); err != nil {
			return err
		}
	}
	return nil
}

// PrintList renders a fully materialized list of items.
func (h *Handler) PrintList(items []Item, fields []FieldSpec) error {
	if !h.interactive() {
		tab := newTabulator(fields)
		if len(items) == 0 {
			return tab.writeHeaderOnly(h.out)
		}
		return tab.writeBatch(h.out, items)
	}

	if len(items) == 0 {
		_, err := fmt.Fprintln(h.out, noMatchingItems)
		return err
	}

	pageSize := h.pageSize()
	fetch := func(offset, size int) (*PageResult, error) {
		end := offset + size
		if end > len(items) {
			end = len(items)
		}
		if offset > len(items) {
			offset = len(items)
		}
		return &PageResult{
			Items:      items[offset:end],
			TotalCount: len(items),
			Fields:     fields,
		}, nil
	}
	return h.pageThrough(fetch, 0, pageSize)
}

// PrintScalarList renders a list of raw values as a one-column table. Each
// value is wrapped into a synthetic one-key item before formatting. The
// field set must hold exactly one spec; anything else is a programming
// defect in the calling command and panics.
func (h *Handler) PrintScalarList(values []any, fields []FieldSpec) error {
	if len(fields) != 1 {
		panic("output: scalar list rendering requires exactly one field")
	}
	items := make([]Item, len(values))
	for i, v := range values {
		items[i] = Item{fields[0].FieldName: v}
	}
	return h.PrintList(items, fields)
}

// PrintPaginatedList renders a remote listing. Interactive runs with no
// explicit page size drive the fetch loop lazily through the pager;
// otherwise exactly one page is fetched and printed.
func (h *Handler) PrintPaginatedList(fetch FetchFunc, initialOffset, pageSize int) error {
	if h.interactive() && pageSize == 0 {
		return h.pageThrough(fetch, initialOffset, h.pageSize())
	}

	if pageSize == 0 {
		pageSize = fallbackPageSize
	}
	result, err := fetch(initialOffset, pageSize)
	if err != nil {
		return err
	}
	tab := newTabulator(result.Fields)
	if len(result.Items) == 0 {
		return tab.writeHeaderOnly(h.out)
	}
	return tab.writeBatch(h.out, result.Items)
}

// pageThrough drives the lazy fetch loop behind a pager. The field set is
// captured from the first page and the first page's TotalCount decides
// termination. A pager quit stops fetching at the next page boundary.
func (h *Handler) pageThrough(fetch FetchFunc, initialOffset, pageSize int) error {
	log := logging.ComponentLogger("output")

	first, err := fetch(initialOffset, pageSize)
	if err != nil {
		return err
	}
	if first.TotalCount == 0 {
		_, err := fmt.Fprintln(h.out, noMatchingItems)
		return err
	}

	pager, err := h.newPager()
	if err != nil {
		log.Debug().Err(err).Msg("pager unavailable, writing directly")
		pager = nopWriteCloser{h.out}
	}

	tab := newTabulator(first.Fields)
	totalCount := first.TotalCount
	offset := initialOffset
	page := first

	for {
		if writeErr := tab.writeBatch(pager, page.Items); writeErr != nil {
			if isPagerQuit(writeErr) {
				log.Debug().Int("offset", offset).Msg("pager closed, stopping fetch loop")
				break
			}
			_ = pager.Close()
			return writeErr
		}

		offset += len(page.Items)
		if offset >= totalCount || len(page.Items) == 0 {
			break
		}

		page, err = fetch(offset, pageSize)
		if err != nil {
			_ = pager.Close()
			return err
		}
	}

	return pager.Close()
}

// PrintDone passes a success message to the diagnostic printer.
func (h *Handler) PrintDone(msg string) {
	h.msg.PrintDone(msg)
}

// PrintWarn passes a warning to the diagnostic printer.
func (h *Handler) PrintWarn(msg string) {
	h.msg.PrintWarn(msg)
}

// PrintError passes a transport or protocol error to the diagnostic printer.
func (h *Handler) PrintError(err error) {
	h.msg.PrintError(err)
}

// PrintFail passes an application-level failure message to the diagnostic
// printer.
func (h *Handler) PrintFail(msg string) {
	h.msg.PrintFail(msg)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
