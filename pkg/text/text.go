// Package text formats the multi-line cell text shown inside diagram boxes.
//
// Cells combine a label with a count ("Records screened (n = 1200)") and are
// word-wrapped to a fixed column width so the rendering engine never has to
// break lines itself. Widths are measured in display columns using
// [github.com/mattn/go-runewidth], which equals the character count for
// ASCII text and keeps East Asian labels from overflowing their boxes.
package text

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Wrap widths used by the diagram. Main-column boxes are slightly wider than
// the exclusion boxes beside them.
const (
	WidthWide   = 33
	WidthNarrow = 32
)

// Reason is one row of an exclusion table.
type Reason struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Wrap breaks s into newline-joined lines no wider than width.
//
// Any run of whitespace (including newlines) separates words, and lines only
// break between words. A single word wider than width is kept whole on its
// own line. A non-positive width disables wrapping but still normalizes
// whitespace.
func Wrap(s string, width int) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}
	if width <= 0 {
		return strings.Join(words, " ")
	}

	var b strings.Builder
	lineWidth := 0
	for i, w := range words {
		ww := runewidth.StringWidth(w)
		switch {
		case i == 0:
		case lineWidth+1+ww <= width:
			b.WriteByte(' ')
			lineWidth++
		default:
			b.WriteByte('\n')
			lineWidth = 0
		}
		b.WriteString(w)
		lineWidth += ww
	}
	return b.String()
}

// WrapLines wraps every line of s independently, keeping the explicit line
// breaks already present. Blank lines are preserved.
func WrapLines(s string, width int) string {
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = Wrap(line, width)
	}
	return strings.Join(lines, "\n")
}

// Cell returns "{label} (n = {count})".
func Cell(label string, count int) string {
	return fmt.Sprintf("%s (n = %d)", label, count)
}

// MultiReason appends one "{reason} (n = {count})" line per reason to base,
// in the order given.
func MultiReason(base string, reasons []Reason) string {
	var b strings.Builder
	b.WriteString(base)
	for _, r := range reasons {
		b.WriteString("\n")
		b.WriteString(Cell(r.Reason, r.Count))
	}
	return b.String()
}

// Lines joins non-empty cells with newlines.
func Lines(cells ...string) string {
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		if c != "" {
			out = append(out, c)
		}
	}
	return strings.Join(out, "\n")
}

// Width reports the widest line of s in display columns.
func Width(s string) int {
	widest := 0
	for _, line := range strings.Split(s, "\n") {
		widest = max(widest, runewidth.StringWidth(line))
	}
	return widest
}
