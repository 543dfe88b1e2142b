// Package diffassert provides test assertions that report mismatches as a
// code point diff instead of two opaque values.
package diffassert

import (
	"testing"

	"github.com/pstuifzand/bytediff/internal/diff"
	"github.com/pstuifzand/bytediff/internal/render"
	"github.com/pstuifzand/bytediff/internal/transcode"
)

// Equal reports an error on t if got differs from want, printing the edits
// that turn want into got. It returns whether the strings were equal.
func Equal(t testing.TB, want, got string) bool {
	t.Helper()

	result := diff.ComputeString(want, got)
	if result.Identical() {
		return true
	}

	t.Errorf("bytediff match failed\n%s\n%s", render.Print(result, render.Options{}), render.Summary(result))
	return false
}

// EqualBytes is Equal for binary data. Differences are printed as raw values
// in the given radix.
func EqualBytes(t testing.TB, want, got []byte, radix int) bool {
	t.Helper()

	result := diff.Compute(transcode.Identity(want), transcode.Identity(got))
	if result.Identical() {
		return true
	}

	opts := render.Options{Encoder: render.RawValueEncoder{Radix: radix}}
	t.Errorf("bytediff match failed\n%s\n%s", render.Print(result, opts), render.Summary(result))
	return false
}
