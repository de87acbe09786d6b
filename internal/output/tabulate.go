package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// columnGap separates adjacent columns.
const columnGap = "  "

// tabulator renders batches of items as a column-aligned table. The header
// and separator row are emitted with the first batch only, so successive
// pages of a lazy listing append seamlessly below earlier ones. Column
// widths are recomputed per batch (with the header widths as a floor), the
// same incremental trade-off the chunked listing output has always made.
type tabulator struct {
	fields     []FieldSpec
	index      map[string]FieldSpec
	headerDone bool
}

func newTabulator(fields []FieldSpec) *tabulator {
	return &tabulator{fields: fields, index: fieldIndex(fields)}
}

// writeBatch renders one page of items to w. Items with keys not covered
// by the field set are rejected.
func (t *tabulator) writeBatch(w io.Writer, items []Item) error {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		if err := checkCovered(item, t.index); err != nil {
			return err
		}
		row := make([]string, len(t.fields))
		for i, f := range t.fields {
			v, ok := item[f.FieldName]
			if !ok {
				row[i] = nullDisplay
				continue
			}
			row[i] = f.Formatter.Format(v, f)
		}
		rows = append(rows, row)
	}

	headers := make([]string, len(t.fields))
	for i, f := range t.fields {
		headers[i] = f.HumanizedName
	}

	widths := columnWidths(headers, rows)

	if !t.headerDone {
		if err := writeRow(w, headers, widths); err != nil {
			return err
		}
		if err := writeSeparator(w, widths); err != nil {
			return err
		}
		t.headerDone = true
	}

	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}

// writeHeaderOnly emits just the header and separator. Used when a
// non-interactive listing has no rows at all.
func (t *tabulator) writeHeaderOnly(w io.Writer) error {
	return t.writeBatch(w, nil)
}

// columnWidths returns per-column display widths covering headers and rows.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func writeRow(w io.Writer, cells []string, widths []int) error {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		if i == len(cells)-1 {
			// No trailing padding on the last column.
			parts[i] = cell
			continue
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	_, err := fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, columnGap), " "))
	return err
}

func writeSeparator(w io.Writer, widths []int) error {
	parts := make([]string, len(widths))
	for i, width := range widths {
		parts[i] = strings.Repeat("-", width)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, columnGap))
	return err
}

// renderFieldValueTable renders a single item as a two-column table of
// humanized field names and formatted values, in field order.
func renderFieldValueTable(w io.Writer, item Item, fields []FieldSpec) error {
	index := fieldIndex(fields)
	if err := checkCovered(item, index); err != nil {
		return err
	}

	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		v, ok := item[f.FieldName]
		if !ok {
			continue
		}
		rows = append(rows, []string{f.HumanizedName, f.Formatter.Format(v, f)})
	}

	headers := []string{"Field", "Value"}
	widths := columnWidths(headers, rows)
	if err := writeRow(w, headers, widths); err != nil {
		return err
	}
	if err := writeSeparator(w, widths); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRow(w, row, widths); err != nil {
			return err
		}
	}
	return nil
}
