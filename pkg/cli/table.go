package cli

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// defaultTermWidth is used when stdout is not a terminal.
const defaultTermWidth = 120

var ansiPattern = regexp.MustCompile("\x1b\\[[0-9;]*m")

// visualLen returns the display width of s, ignoring ANSI color codes.
func visualLen(s string) int {
	if strings.Contains(s, "\x1b") {
		s = ansiPattern.ReplaceAllString(s, "")
	}
	return utf8.RuneCountInString(s)
}

// Table buffers rows and renders column-aligned output capped to the
// terminal width. Headers and a dash divider are written on Flush();
// empty tables produce no output.
type Table struct {
	out     io.Writer
	headers []string
	rows    [][]string
	prefix  string
	width   int
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{
		out:     os.Stdout,
		headers: headers,
		width:   terminalWidth(),
	}
}

// WithPrefix sets a string prepended to each line (headers, divider, rows).
// Useful for indenting sub-tables within larger output.
func (t *Table) WithPrefix(prefix string) *Table {
	t.prefix = prefix
	return t
}

// WithWriter redirects output away from stdout.
func (t *Table) WithWriter(w io.Writer) *Table {
	t.out = w
	return t
}

// WithWidth overrides the detected terminal width.
func (t *Table) WithWidth(width int) *Table {
	t.width = width
	return t
}

// Row buffers one row. Missing cells render empty; extra cells are dropped.
func (t *Table) Row(values ...string) {
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(values) {
			row[i] = values[i]
		}
	}
	t.rows = append(t.rows, row)
}

// Len returns the number of buffered rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Flush renders the buffered rows. If no rows were added, nothing is printed.
func (t *Table) Flush() {
	if len(t.rows) == 0 {
		return
	}

	widths := t.columnWidths()
	widths = capWidths(widths, t.headers, t.width, visualLen(t.prefix))

	t.writeCells(t.headers, widths)
	dividers := make([]string, len(t.headers))
	for i, h := range t.headers {
		dividers[i] = strings.Repeat("-", visualLen(h))
	}
	t.writeCells(dividers, widths)

	for _, row := range t.rows {
		t.writeCells(row, widths)
	}
	t.rows = nil
}

// columnWidths returns the natural width of each column: the widest of
// the header and every cell.
func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = visualLen(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if l := visualLen(cell); l > widths[i] {
				widths[i] = l
			}
		}
	}
	return widths
}

// writeCells emits one logical row, wrapping cells that exceed their
// column width onto continuation lines.
func (t *Table) writeCells(cells []string, widths []int) {
	wrapped := make([][]string, len(cells))
	height := 1
	for i, cell := range cells {
		wrapped[i] = wrapCell(cell, widths[i])
		if len(wrapped[i]) > height {
			height = len(wrapped[i])
		}
	}
	for line := 0; line < height; line++ {
		parts := make([]string, len(cells))
		for i := range cells {
			cell := ""
			if line < len(wrapped[i]) {
				cell = wrapped[i][line]
			}
			parts[i] = padCell(cell, widths[i])
		}
		fmt.Fprintln(t.out, strings.TrimRight(t.prefix+strings.Join(parts, "  "), " "))
	}
}

// padCell right-pads s with spaces to the given display width.
func padCell(s string, width int) string {
	gap := width - visualLen(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// capWidths shrinks column widths until the table fits in termWidth,
// always reducing the widest column first. Columns never shrink below
// their header width, even if the table then overflows the terminal.
// Column separators are two spaces; prefix is the indent width.
func capWidths(widths []int, headers []string, termWidth, prefix int) []int {
	capped := make([]int, len(widths))
	copy(capped, widths)

	minWidths := make([]int, len(headers))
	for i, h := range headers {
		minWidths[i] = visualLen(h)
	}

	total := func() int {
		sum := prefix + 2*(len(capped)-1)
		for _, w := range capped {
			sum += w
		}
		return sum
	}

	for total() > termWidth {
		widest, idx := -1, -1
		for i, w := range capped {
			if w > minWidths[i] && w > widest {
				widest, idx = w, i
			}
		}
		if idx < 0 {
			break
		}
		capped[idx]--
	}
	return capped
}

// wrapCell word-wraps s to the given width, hard-breaking words longer
// than the width. Strings carrying ANSI codes are never split.
func wrapCell(s string, width int) []string {
	if s == "" {
		return []string{""}
	}
	if width <= 0 || visualLen(s) <= width || strings.Contains(s, "\x1b") {
		return []string{s}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			runes := []rune(word)
			lines = append(lines, string(runes[:width]))
			word = string(runes[width:])
		}
		switch {
		case line == "":
			line = word
		case visualLen(line)+1+utf8.RuneCountInString(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultTermWidth
}
