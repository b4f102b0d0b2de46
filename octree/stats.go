package octree

// Stats summarizes the shape of a tree.
type Stats struct {
	Nodes, Leaves, Internal int
	// MaxLevel is the level of the deepest node. The root is level 0.
	MaxLevel int
}

// Stats returns the shape summary of all nodes reachable from the root.
func (t *Tree) Stats() Stats {
	s := Stats{}
	t.Walk(func(i Idx, n *Node) {
		s.Nodes++
		if n.IsLeaf() {
			s.Leaves++
		} else {
			s.Internal++
		}
		if n.Level > s.MaxLevel {
			s.MaxLevel = n.Level
		}
	})
	return s
}

// Leaves returns the indices of every leaf reachable from the root in
// depth-first order.
func (t *Tree) Leaves() []Idx {
	leaves := []Idx{}
	t.Walk(func(i Idx, n *Node) {
		if n.IsLeaf() {
			leaves = append(leaves, i)
		}
	})
	return leaves
}

// Walk calls f on every node reachable from the root, parents before
// children. It uses an explicit stack.
func (t *Tree) Walk(f func(i Idx, n *Node)) {
	stack := []Idx{Root}
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.Nodes[i]
		f(i, n)
		for oct := OctantCount - 1; oct >= 0; oct-- {
			if c := n.Children[oct]; c != Nil {
				stack = append(stack, c)
			}
		}
	}
}

// ParticleLeaves returns, for each of the n particles the tree was built
// from, the index of the leaf holding it. Particles absent from the tree map
// to Nil.
func (t *Tree) ParticleLeaves(n int) []Idx {
	out := make([]Idx, n)
	for i := range out {
		out[i] = Nil
	}
	t.Walk(func(i Idx, node *Node) {
		if node.IsLeaf() && node.Particle >= 0 && node.Particle < n {
			out[node.Particle] = i
		}
	})
	return out
}
