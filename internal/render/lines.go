package render

import (
	"fmt"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/mattn/go-runewidth"
	"github.com/pstuifzand/bytediff/internal/diff"
)

const (
	linePrefix = "*> "
	ellipsis   = "..."
)

// Line is one row of verbose output: a non-Match span shown with a window of
// surrounding source text
type Line struct {
	Kind    diff.Kind
	Span    diff.Span
	Content string
}

// BuildLines converts a result into verbose display lines, one per
// non-Match span. This is suitable for both CLI output and tests.
func BuildLines[T diff.Unit](result *diff.Result[T], opts Options) []Line {
	return buildLines(result, opts.withDefaults())
}

func buildLines[T diff.Unit](result *diff.Result[T], opts Options) []Line {
	var kinds mapset.Set[diff.Kind]
	if len(opts.Kinds) > 0 {
		kinds = mapset.NewSet(opts.Kinds...)
	}

	source := result.Source()
	var lines []Line

	for _, span := range result.Spans() {
		if span.Kind == diff.Match {
			continue
		}
		if kinds != nil && !kinds.Contains(span.Kind) {
			continue
		}

		lines = append(lines, Line{
			Kind:    span.Kind,
			Span:    span,
			Content: buildLine(result, source, span, opts),
		})
	}

	return lines
}

// buildLine renders "*> ...left<span>right..." for one span
func buildLine[T diff.Unit](result *diff.Result[T], source []T, span diff.Span, opts Options) string {
	// [from, to) is the source range the span sits on; Insert spans sit
	// right after their anchor
	from, to := span.SourceStart, span.SourceEnd+1
	if span.Kind == diff.Insert {
		from, to = span.SourceStart+1, span.SourceStart+1
	}

	leftStart := max(0, from-max(0, opts.ContextLeft))
	rightEnd := min(len(source), to+max(0, opts.ContextRight))

	left := opts.Encoder.Encode(diff.Text(source[leftStart:from]))
	right := opts.Encoder.Encode(diff.Text(source[to:rightEnd]))
	formatted := opts.Formatter.Format(opts.Encoder.Encode(diff.Text(spanText(result, span))), span.Kind)

	leftCut := leftStart > 0
	rightCut := rightEnd < len(source)

	if opts.Width > 0 {
		budget := opts.Width - runewidth.StringWidth(linePrefix) - visibleWidth(formatted)
		left, right, leftCut, rightCut = fitContext(left, right, leftCut, rightCut, budget)
	}

	var b strings.Builder
	b.WriteString(linePrefix)
	if leftCut {
		b.WriteString(ellipsis)
	}
	b.WriteString(left)
	b.WriteString(formatted)
	b.WriteString(right)
	if rightCut {
		b.WriteString(ellipsis)
	}
	return b.String()
}

// spanText is the text a span shows: target text for insertions and
// replacements, source text otherwise
func spanText[T diff.Unit](result *diff.Result[T], span diff.Span) []T {
	if span.Kind == diff.Insert || span.Kind == diff.Replace {
		return result.TargetText(span)
	}
	return result.SourceText(span)
}

// fitContext shrinks the right context, then the left one, until both fit in
// budget display columns including their ellipses. The span itself is never
// trimmed, so a budget below zero still yields a line wider than asked.
func fitContext(left, right string, leftCut, rightCut bool, budget int) (string, string, bool, bool) {
	over := contextWidth(left, leftCut) + contextWidth(right, rightCut) - budget
	if over <= 0 {
		return left, right, leftCut, rightCut
	}

	right, rightCut, over = shrink(right, rightCut, over, truncateRight)
	if over > 0 {
		left, leftCut, _ = shrink(left, leftCut, over, truncateLeft)
	}

	return left, right, leftCut, rightCut
}

// shrink trims one context side by over columns and marks it cut. A side
// without room for the ellipsis is dropped together with its marker. It
// returns the columns still to be saved.
func shrink(s string, cut bool, over int, trim func(string, int) string) (string, bool, int) {
	w := contextWidth(s, cut)
	if w == 0 {
		return s, cut, over
	}

	avail := w - over
	if avail < len(ellipsis) {
		return "", false, over - w
	}

	s = trim(s, avail-len(ellipsis))
	return s, true, over - (w - contextWidth(s, true))
}

func contextWidth(s string, cut bool) int {
	w := runewidth.StringWidth(s)
	if cut {
		w += len(ellipsis)
	}
	return w
}

// truncateRight keeps the leftmost runes of s that fit in w columns
func truncateRight(s string, w int) string {
	return runewidth.Truncate(s, w, "")
}

// truncateLeft keeps the rightmost runes of s that fit in w columns
func truncateLeft(s string, w int) string {
	runes := []rune(s)
	width := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if width+rw > w {
			break
		}
		width += rw
		i--
	}
	return string(runes[i:])
}

// visibleWidth is the display width of s with SGR escape sequences removed
func visibleWidth(s string) int {
	if !strings.Contains(s, "\x1b[") {
		return runewidth.StringWidth(s)
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == 0x1b && i+1 < len(s) && s[i+1] == '[' {
			i += 2
			for i < len(s) && (s[i] < 0x40 || s[i] > 0x7e) {
				i++
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return runewidth.StringWidth(b.String())
}

// Summary returns a one-line count of the edit spans and the edit distance
func Summary[T diff.Unit](result *diff.Result[T]) string {
	if result.Identical() {
		return "Identical."
	}
	return fmt.Sprintf("%d inserted, %d deleted, %d replaced (edit distance %d)",
		len(result.SpansOf(diff.Insert)),
		len(result.SpansOf(diff.Delete)),
		len(result.SpansOf(diff.Replace)),
		result.EditDistance())
}
