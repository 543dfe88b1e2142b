package diff

// classifier coalesces runs of path nodes into spans
type classifier struct {
	inserts []editNode
	deletes []editNode
	matches []editNode

	// deleteFirst records whether the pending delete run started before the
	// pending insert run
	deleteFirst bool

	spans []Span
}

// classify turns an edit path into ordered spans. The first two nodes (the
// sentinel and the seed step) carry no edit and are skipped.
func classify(path []editNode) []Span {
	c := &classifier{}

	if len(path) > 2 {
		for _, node := range path[2:] {
			switch node.op {
			case opInsert:
				if len(c.inserts) == 0 && len(c.deletes) == 0 {
					c.deleteFirst = false
				}
				c.inserts = append(c.inserts, node)
				c.flushMatches()
			case opDelete:
				if len(c.inserts) == 0 && len(c.deletes) == 0 {
					c.deleteFirst = true
				}
				c.deletes = append(c.deletes, node)
				c.flushMatches()
			case opMatch:
				c.matches = append(c.matches, node)
				c.flushEdits()
			}
		}
	}
	c.flushMatches()
	c.flushEdits()

	if len(c.spans) == 0 {
		// both sequences empty
		return []Span{{Kind: Match, SourceStart: 0, SourceEnd: -1, TargetStart: 0, TargetEnd: -1}}
	}
	return c.spans
}

func (c *classifier) flushMatches() {
	if len(c.matches) == 0 {
		return
	}
	first, last := c.matches[0], c.matches[len(c.matches)-1]
	c.spans = append(c.spans, Span{
		Kind:        Match,
		SourceStart: first.sourceIndex,
		SourceEnd:   last.sourceIndex,
		TargetStart: first.targetIndex,
		TargetEnd:   last.targetIndex,
	})
	c.matches = c.matches[:0]
}

// flushEdits emits the pending insert and delete runs. Runs of equal length
// merge into a single Replace; otherwise both are emitted in path order.
func (c *classifier) flushEdits() {
	if len(c.inserts) > 0 && len(c.inserts) == len(c.deletes) {
		c.spans = append(c.spans, Span{
			Kind:        Replace,
			SourceStart: c.deletes[0].sourceIndex,
			SourceEnd:   c.deletes[len(c.deletes)-1].sourceIndex,
			TargetStart: c.inserts[0].targetIndex,
			TargetEnd:   c.inserts[len(c.inserts)-1].targetIndex,
		})
		c.inserts = c.inserts[:0]
		c.deletes = c.deletes[:0]
		return
	}

	if c.deleteFirst {
		c.flushDeletes()
		c.flushInserts()
	} else {
		c.flushInserts()
		c.flushDeletes()
	}
}

func (c *classifier) flushInserts() {
	if len(c.inserts) == 0 {
		return
	}
	first, last := c.inserts[0], c.inserts[len(c.inserts)-1]
	c.spans = append(c.spans, Span{
		Kind:        Insert,
		SourceStart: first.sourceIndex,
		SourceEnd:   last.sourceIndex,
		TargetStart: first.targetIndex,
		TargetEnd:   last.targetIndex,
	})
	c.inserts = c.inserts[:0]
}

func (c *classifier) flushDeletes() {
	if len(c.deletes) == 0 {
		return
	}
	first, last := c.deletes[0], c.deletes[len(c.deletes)-1]
	c.spans = append(c.spans, Span{
		Kind:        Delete,
		SourceStart: first.sourceIndex,
		SourceEnd:   last.sourceIndex,
		TargetStart: first.targetIndex,
		TargetEnd:   first.targetIndex,
	})
	c.deletes = c.deletes[:0]
}
