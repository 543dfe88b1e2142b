package diff

import (
	"context"
	"fmt"
)

// findPath runs Myers' O(ND) search over source and target and returns the
// edit path from the sentinel to the first node that consumes both sequences.
//
// V[k] holds the furthest x reached on diagonal k = x - y, stored at offset
// maxD. The search is seeded with V[1] = 0 so that the first step (D = 0,
// k = 0) lands on (0, 0) through a pseudo insert; the classifier drops that
// node together with the sentinel.
//
// maxEdits > 0 aborts with ErrEditDistanceExceeded once the search needs more
// than maxEdits insertions and deletions. ctx is checked once per edit
// distance.
func findPath[T Unit](ctx context.Context, source, target []T, maxEdits int) ([]editNode, error) {
	n := len(source)
	m := len(target)
	maxD := n + m
	mid := maxD

	v := make([]int, 2*maxD+2)
	for i := range v {
		v[i] = -1
	}
	// vNodes[i] is the arena index of the furthest node on diagonal i - mid
	vNodes := make([]int, 2*maxD+2)

	arena := make([]editNode, 0, 2*maxD+2)
	arena = append(arena, editNode{sourceIndex: -1, targetIndex: -1, op: opSource, parent: -1})
	v[mid+1] = 0
	vNodes[mid+1] = 0

	for d := 0; d <= maxD; d++ {
		if maxEdits > 0 && d > maxEdits {
			return nil, fmt.Errorf("%w: more than %d edits", ErrEditDistanceExceeded, maxEdits)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		for k := -d; k <= d; k += 2 {
			var x, prev int
			var op operation
			if k == -d || (k != d && v[mid+k-1] < v[mid+k+1]) {
				x = v[mid+k+1]
				prev = vNodes[mid+k+1]
				op = opInsert
			} else {
				x = v[mid+k-1] + 1
				prev = vNodes[mid+k-1]
				op = opDelete
			}
			y := x - k

			arena = append(arena, editNode{sourceIndex: x - 1, targetIndex: y - 1, op: op, parent: prev})
			current := len(arena) - 1

			for x < n && y < m && source[x] == target[y] {
				x++
				y++
				arena = append(arena, editNode{sourceIndex: x - 1, targetIndex: y - 1, op: opMatch, parent: current})
				current = len(arena) - 1
			}

			v[mid+k] = x
			vNodes[mid+k] = current

			if x >= n && y >= m {
				return walkBack(arena, current), nil
			}
		}
	}

	panic(fmt.Sprintf("diff: no edit path found for sequences of length %d and %d", n, m))
}

// walkBack follows parent indices from tip to the sentinel and returns the
// path in root-to-tip order
func walkBack(arena []editNode, tip int) []editNode {
	length := 0
	for i := tip; i >= 0; i = arena[i].parent {
		length++
	}

	path := make([]editNode, length)
	for i := tip; i >= 0; i = arena[i].parent {
		length--
		path[length] = arena[i]
	}
	return path
}
