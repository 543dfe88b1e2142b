package diff

func isHighSurrogate(u uint16) bool {
	return u >= 0xD800 && u < 0xDC00
}

func isLowSurrogate(u uint16) bool {
	return u >= 0xDC00 && u < 0xE000
}

// gap collects the edit spans between two Match spans
type gap struct {
	edits []Span
	// a surrogate half was moved in from a neighbouring Match
	absorbed bool
}

// repairSurrogates keeps UTF-16 surrogate pairs whole. A Match span that
// starts with a low surrogate or ends with a high surrogate next to an edit
// has its partner across the boundary, so that unit moves out of the Match
// into the edit. The edits between two Matches that took in a unit are
// replaced by one Replace covering the whole gap; the Insert, Delete or
// Replace spans of other gaps are kept. Matches left empty are dropped.
func repairSurrogates(source []uint16, targetLen int, spans []Span) []Span {
	if len(source) == 0 && targetLen == 0 {
		return spans
	}

	// gaps[i] lies before matches[i]; the last gap follows the last match
	var matches []Span
	gaps := []gap{{}}
	for _, s := range spans {
		if s.Kind == Match {
			matches = append(matches, s)
			gaps = append(gaps, gap{})
			continue
		}
		g := &gaps[len(gaps)-1]
		g.edits = append(g.edits, s)
	}

	for i := range matches {
		m := &matches[i]
		before, after := &gaps[i], &gaps[i+1]

		if len(before.edits) > 0 && m.SourceStart <= m.SourceEnd && isLowSurrogate(source[m.SourceStart]) {
			m.SourceStart++
			m.TargetStart++
			before.absorbed = true
		}
		if len(after.edits) > 0 && m.SourceStart <= m.SourceEnd && isHighSurrogate(source[m.SourceEnd]) {
			m.SourceEnd--
			m.TargetEnd--
			after.absorbed = true
		}
	}

	var out []Span
	sourcePos, targetPos := 0, 0
	pending := gaps[0]

	// flush emits the pending gap, which ends right before sourceEnd/targetEnd
	flush := func(sourceEnd, targetEnd int) {
		if !pending.absorbed {
			out = append(out, pending.edits...)
			return
		}
		out = append(out, Span{
			Kind:        Replace,
			SourceStart: sourcePos,
			SourceEnd:   sourceEnd - 1,
			TargetStart: targetPos,
			TargetEnd:   targetEnd - 1,
		})
	}

	for i, m := range matches {
		next := gaps[i+1]
		if m.SourceStart > m.SourceEnd {
			// emptied: the gaps on both sides become one
			pending.edits = append(pending.edits, next.edits...)
			pending.absorbed = pending.absorbed || next.absorbed
			continue
		}

		flush(m.SourceStart, m.TargetStart)
		out = append(out, m)
		sourcePos, targetPos = m.SourceEnd+1, m.TargetEnd+1
		pending = next
	}
	flush(len(source), targetLen)

	return out
}
