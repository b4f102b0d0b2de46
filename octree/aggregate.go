package octree

import (
	"fmt"

	"github.com/phil-mansfield/bhtree/multipole"
)

// Aggregate recomputes the multipole of every internal node from its
// children, leaving leaves untouched. Nodes are processed from the deepest
// level up, so every child is final before its parent is combined.
//
// An error is returned if the root multipole contains a non-finite value.
func (t *Tree) Aggregate() error {
	levels := make([][]Idx, t.maxLevel+1)
	for i := range t.Nodes {
		n := &t.Nodes[i]
		if n.Level < 0 || n.IsLeaf() {
			continue
		}
		levels[n.Level] = append(levels[n.Level], Idx(i))
	}

	for l := len(levels) - 1; l >= 0; l-- {
		for _, i := range levels[l] {
			t.combineChildren(i)
		}
	}

	if err := t.Nodes[Root].Multipole.Check(); err != nil {
		return fmt.Errorf("Aggregation of the root node failed: %w", err)
	}
	return nil
}

func (t *Tree) combineChildren(i Idx) {
	n := &t.Nodes[i]
	m := multipole.Empty()
	for _, c := range n.Children {
		if c != Nil {
			m.Combine(&t.Nodes[c].Multipole)
		}
	}
	n.Multipole = m
}
