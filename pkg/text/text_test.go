package text

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/mattn/go-runewidth"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"empty", "", 10, ""},
		{"only spaces", "   \n\t ", 10, ""},
		{"fits", "Records screened", 33, "Records screened"},
		{"breaks at space", "Records marked as ineligible by automation tools", 33, "Records marked as ineligible by\nautomation tools"},
		{"exact width", "aaaa bbbb", 9, "aaaa bbbb"},
		{"one over", "aaaa bbbbb", 9, "aaaa\nbbbbb"},
		{"long word kept whole", "Supercalifragilistic word", 5, "Supercalifragilistic\nword"},
		{"normalizes whitespace", "a  b\n c", 10, "a b c"},
		{"zero width joins", "a b  c", 0, "a b c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Wrap(tt.input, tt.width); got != tt.want {
				t.Errorf("Wrap(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapWideRunes(t *testing.T) {
	// Each CJK rune occupies two display columns.
	got := Wrap("文献 筛选 纳入", 5)
	want := "文献\n筛选\n纳入"
	if got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestWrapLines(t *testing.T) {
	in := "Reports excluded:\nReason one that is rather long indeed (n = 3)\nShort (n = 1)"
	got := WrapLines(in, 20)
	want := "Reports excluded:\nReason one that is\nrather long indeed\n(n = 3)\nShort (n = 1)"
	if got != want {
		t.Errorf("WrapLines() = %q, want %q", got, want)
	}
	if WrapLines("", 10) != "" {
		t.Error("WrapLines(\"\") should be empty")
	}
}

func TestCell(t *testing.T) {
	if got := Cell("Records screened", 1200); got != "Records screened (n = 1200)" {
		t.Errorf("Cell() = %q", got)
	}
	if got := Cell("", 0); got != " (n = 0)" {
		t.Errorf("Cell() with empty label = %q", got)
	}
}

func TestMultiReason(t *testing.T) {
	got := MultiReason("X", []Reason{{"dup", 3}, {"automatic", 5}})
	want := "X\ndup (n = 3)\nautomatic (n = 5)"
	if got != want {
		t.Errorf("MultiReason() = %q, want %q", got, want)
	}

	if got := MultiReason("Reports excluded:", nil); got != "Reports excluded:" {
		t.Errorf("MultiReason() without reasons = %q", got)
	}
	if got := MultiReason("", nil); got != "" {
		t.Errorf("MultiReason(\"\", nil) = %q, want empty", got)
	}
}

func TestMultiReasonPreservesOrder(t *testing.T) {
	reasons := []Reason{{"zeta", 1}, {"alpha", 2}, {"mu", 3}}
	lines := strings.Split(MultiReason("base", reasons), "\n")[1:]
	for i, r := range reasons {
		if !strings.HasPrefix(lines[i], r.Reason+" ") {
			t.Errorf("line %d = %q, want reason %q", i, lines[i], r.Reason)
		}
	}
}

func TestLinesAndWidth(t *testing.T) {
	got := Lines("a", "", "bcd")
	if got != "a\nbcd" {
		t.Errorf("Lines() = %q", got)
	}
	if w := Width(got); w != 3 {
		t.Errorf("Width() = %d, want 3", w)
	}
	if w := Width(""); w != 0 {
		t.Errorf("Width(\"\") = %d, want 0", w)
	}
}

// TestWrapLaw checks that wrapping never produces an over-wide line unless that
// line is a single word, and that rejoining the lines gives back the
// whitespace-normalized input.
func TestWrapLaw(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("lines fit unless a single word", prop.ForAll(
		func(words []string, width int) bool {
			wrapped := Wrap(strings.Join(words, " "), width)
			if wrapped == "" {
				return true
			}
			for _, line := range strings.Split(wrapped, "\n") {
				if runewidth.StringWidth(line) > width && strings.Contains(line, " ") {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(1, 40),
	))

	properties.Property("rejoining reproduces normalized text", prop.ForAll(
		func(words []string, width int) bool {
			input := strings.Join(words, "  ")
			wrapped := Wrap(input, width)
			rejoined := strings.Join(strings.Split(wrapped, "\n"), " ")
			return rejoined == strings.Join(strings.Fields(input), " ")
		},
		gen.SliceOf(gen.AlphaString()),
		gen.IntRange(1, 40),
	))

	properties.TestingRun(t)
}
