package diff

import "slices"

// Result holds the classified spans together with private copies of the two
// sequences they index into
type Result[T Unit] struct {
	source []T
	target []T
	spans  []Span
}

func newResult[T Unit](source, target []T, spans []Span) *Result[T] {
	return &Result[T]{
		source: slices.Clone(source),
		target: slices.Clone(target),
		spans:  spans,
	}
}

// Source returns a copy of the source sequence
func (r *Result[T]) Source() []T {
	return slices.Clone(r.source)
}

// Target returns a copy of the target sequence
func (r *Result[T]) Target() []T {
	return slices.Clone(r.target)
}

// Spans returns a copy of the ordered span list
func (r *Result[T]) Spans() []Span {
	return slices.Clone(r.spans)
}

// Identical reports whether source and target are equal, i.e. the result is
// a single Match span
func (r *Result[T]) Identical() bool {
	return len(r.spans) == 1 && r.spans[0].Kind == Match
}

// SpansOf returns the spans of the given kinds, in order
func (r *Result[T]) SpansOf(kinds ...Kind) []Span {
	var out []Span
	for _, s := range r.spans {
		if slices.Contains(kinds, s.Kind) {
			out = append(out, s)
		}
	}
	return out
}

// SourceText returns the source elements covered by s. Insert spans cover
// nothing on the source side.
func (r *Result[T]) SourceText(s Span) []T {
	if s.Kind == Insert {
		return []T{}
	}
	return slices.Clone(r.source[s.SourceStart : s.SourceEnd+1])
}

// TargetText returns the target elements covered by s. Delete spans cover
// nothing on the target side.
func (r *Result[T]) TargetText(s Span) []T {
	if s.Kind == Delete {
		return []T{}
	}
	return slices.Clone(r.target[s.TargetStart : s.TargetEnd+1])
}

// Inserts returns the inserted target text of every Insert span
func (r *Result[T]) Inserts() [][]T {
	return r.collect(Insert, r.TargetText)
}

// Deletions returns the deleted source text of every Delete span
func (r *Result[T]) Deletions() [][]T {
	return r.collect(Delete, r.SourceText)
}

// Replacements returns the replacing target text of every Replace span
func (r *Result[T]) Replacements() [][]T {
	return r.collect(Replace, r.TargetText)
}

// ReplacedFrom returns the replaced source text of every Replace span
func (r *Result[T]) ReplacedFrom() [][]T {
	return r.collect(Replace, r.SourceText)
}

// Matches returns the matching source text of every Match span
func (r *Result[T]) Matches() [][]T {
	return r.collect(Match, r.SourceText)
}

func (r *Result[T]) InsertIndexes() []int      { return r.indexes(Insert) }
func (r *Result[T]) DeletionIndexes() []int    { return r.indexes(Delete) }
func (r *Result[T]) ReplacementIndexes() []int { return r.indexes(Replace) }
func (r *Result[T]) MatchIndexes() []int       { return r.indexes(Match) }

// EditDistance returns the number of inserted plus deleted elements. A
// Replace span counts on both sides.
func (r *Result[T]) EditDistance() int {
	total := 0
	for _, s := range r.spans {
		switch s.Kind {
		case Insert:
			total += s.TargetLen()
		case Delete:
			total += s.SourceLen()
		case Replace:
			total += s.SourceLen() + s.TargetLen()
		}
	}
	return total
}

func (r *Result[T]) collect(kind Kind, text func(Span) []T) [][]T {
	out := [][]T{}
	for _, s := range r.spans {
		if s.Kind == kind {
			out = append(out, text(s))
		}
	}
	return out
}

func (r *Result[T]) indexes(kind Kind) []int {
	out := []int{}
	for _, s := range r.spans {
		if s.Kind == kind {
			out = append(out, s.SourceStart)
		}
	}
	return out
}
