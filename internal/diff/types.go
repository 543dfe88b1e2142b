package diff

import (
	"fmt"
	"strings"
)

// Unit is the element type of a diffed sequence. rune sequences hold Unicode
// scalar values, uint16 sequences hold UTF-16 code units and byte sequences
// hold raw bytes.
type Unit interface {
	~rune | ~uint16 | ~byte
}

// Kind classifies a span of the diff
type Kind int

const (
	Insert Kind = iota
	Delete
	Replace
	Match
)

var kindNames = [...]string{
	Insert:  "insert",
	Delete:  "delete",
	Replace: "replace",
	Match:   "match",
}

// Kinds lists every span kind in declaration order
func Kinds() []Kind {
	return []Kind{Insert, Delete, Replace, Match}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind parses a kind name case-insensitively
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown span kind %q", s)
}

// MarshalText implements encoding.TextMarshaler so kinds can be used as TOML keys
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("invalid span kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Span is one classified range of the diff. All bounds are inclusive.
//
// For Insert spans the source range is degenerate: SourceStart == SourceEnd is
// the index of the source element right before the insertion point, or -1 if
// the insertion comes before the first element. Delete spans carry the same
// kind of anchor on the target side.
type Span struct {
	Kind        Kind
	SourceStart int
	SourceEnd   int
	TargetStart int
	TargetEnd   int
}

// SourceLen returns the number of source elements the span consumes
func (s Span) SourceLen() int {
	if s.Kind == Insert {
		return 0
	}
	return s.SourceEnd - s.SourceStart + 1
}

// TargetLen returns the number of target elements the span produces
func (s Span) TargetLen() int {
	if s.Kind == Delete {
		return 0
	}
	return s.TargetEnd - s.TargetStart + 1
}

func (s Span) String() string {
	return fmt.Sprintf("%s[%d..%d -> %d..%d]", s.Kind, s.SourceStart, s.SourceEnd, s.TargetStart, s.TargetEnd)
}

// operation tags one step of the edit path
type operation int

const (
	opInsert operation = iota
	opDelete
	opMatch
	opSource // root sentinel, never emitted
)

func (op operation) String() string {
	switch op {
	case opInsert:
		return "INSERT"
	case opDelete:
		return "DELETE"
	case opMatch:
		return "MATCH"
	case opSource:
		return "SOURCE"
	}
	return "UNKNOWN"
}

// editNode is one step of the edit path. Nodes live in an arena and point at
// their predecessor by index; the sentinel has parent -1.
type editNode struct {
	sourceIndex int
	targetIndex int
	op          operation
	parent      int
}

func (n editNode) String() string {
	return fmt.Sprintf("editNode[%d,%d,%s]", n.sourceIndex, n.targetIndex, n.op)
}
