package diff

import (
	"context"
	"errors"
	"unicode/utf16"
)

// ErrEditDistanceExceeded is returned by ComputeContext when the shortest edit
// script needs more edits than the configured cap
var ErrEditDistanceExceeded = errors.New("edit distance limit exceeded")

type options struct {
	maxEdits int
}

// Option configures ComputeContext
type Option func(*options)

// WithMaxEditDistance stops the search once more than d insertions and
// deletions would be needed. d <= 0 disables the cap.
func WithMaxEditDistance(d int) Option {
	return func(o *options) {
		o.maxEdits = d
	}
}

// Compute diffs source against target and returns the classified result.
// This is the main entry point for computing differences.
//
// uint16 sequences are treated as UTF-16 code units and get surrogate pair
// repair; rune and byte sequences are diffed as they are.
func Compute[T Unit](source, target []T) *Result[T] {
	result, err := ComputeContext(context.Background(), source, target)
	if err != nil {
		// unreachable without a cap or a cancellable context
		panic(err)
	}
	return result
}

// ComputeString diffs two strings at code point granularity
func ComputeString(source, target string) *Result[rune] {
	return Compute([]rune(source), []rune(target))
}

// ComputeUTF16 diffs two UTF-16 code unit sequences
func ComputeUTF16(source, target []uint16) *Result[uint16] {
	return Compute(source, target)
}

// ComputeContext is Compute with cancellation and an optional edit distance
// cap. It returns ctx.Err() if ctx is done before the search finishes.
func ComputeContext[T Unit](ctx context.Context, source, target []T, opts ...Option) (*Result[T], error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	path, err := findPath(ctx, source, target, o.maxEdits)
	if err != nil {
		return nil, err
	}

	spans := classify(path)
	if units, ok := any(source).([]uint16); ok {
		spans = repairSurrogates(units, len(target), spans)
	}

	return newResult(source, target, spans), nil
}

// Text renders a subsequence for display. uint16 units are decoded as
// UTF-16; rune and byte units map one element to one code point.
func Text[T Unit](units []T) string {
	switch v := any(units).(type) {
	case []rune:
		return string(v)
	case []uint16:
		return string(utf16.Decode(v))
	}

	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}
