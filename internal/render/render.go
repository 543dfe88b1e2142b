// Package render prints diff results as text. Compact mode prints every span
// in order, decorated by a Formatter; verbose mode prints one line per edit
// with a window of surrounding source text.
package render

import (
	"strings"

	"github.com/pstuifzand/bytediff/internal/diff"
)

// DefaultContext is the number of source elements shown on each side of an
// edit in verbose mode
const DefaultContext = 5

// NoContext disables a verbose context window
const NoContext = -1

// Options configures Print and BuildLines. The zero value prints compact,
// unstyled output.
type Options struct {
	Verbose bool

	// ContextLeft and ContextRight size the verbose context windows. Zero
	// means DefaultContext; NoContext or any other negative value shows none.
	ContextLeft  int
	ContextRight int

	Encoder   Encoder
	Formatter Formatter

	// Kinds limits verbose output to these span kinds; empty shows all edits
	Kinds []diff.Kind

	// Width > 0 fits verbose lines into that many display columns by
	// trimming context
	Width int
}

func (o Options) withDefaults() Options {
	if o.ContextLeft == 0 {
		o.ContextLeft = DefaultContext
	}
	if o.ContextRight == 0 {
		o.ContextRight = DefaultContext
	}
	if o.Encoder == nil {
		o.Encoder = IdentityEncoder{}
	}
	if o.Formatter == nil {
		o.Formatter = SymbolFormatter{}
	}
	return o
}

// Print renders result. Identical inputs print "Identical.".
func Print[T diff.Unit](result *diff.Result[T], opts Options) string {
	if result.Identical() {
		return "Identical."
	}

	opts = opts.withDefaults()

	if opts.Verbose {
		var b strings.Builder
		for _, line := range buildLines(result, opts) {
			b.WriteString(line.Content)
			b.WriteByte('\n')
		}
		return b.String()
	}

	var b strings.Builder
	for _, span := range result.Spans() {
		text := opts.Encoder.Encode(diff.Text(spanText(result, span)))
		b.WriteString(opts.Formatter.Format(text, span.Kind))
	}
	return b.String()
}
