package octree

import (
	"errors"
	"fmt"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

const (
	// CoincidenceShift is added to the x coordinate of a node's center of
	// mass when it exactly matches the center of mass of the node it is
	// being inserted into. It is a stopgap against exactly overlapping
	// particles and does not make near-coincident points safe.
	CoincidenceShift = 1e-6

	// DefaultMaxDepth is the deepest level a node may be placed at when no
	// explicit limit is given.
	DefaultMaxDepth = 128
)

// ErrMaxDepth is returned (wrapped) when a particle cannot be separated from
// its neighbors without exceeding the tree's maximum depth.
var ErrMaxDepth = errors.New("maximum tree depth exceeded")

// Tree is an octree stored as an arena of nodes. The root is always at index
// Root. Tree is not safe for concurrent insertion. Once built and aggregated
// it may be read concurrently.
type Tree struct {
	Nodes    []Node
	MaxDepth int

	maxLevel int
}

// Root is the arena index of the root node.
const Root Idx = 0

// NewTree creates a tree containing a single leaf which holds the first
// particle and spans a cube of side boxSize centered on center. If maxDepth
// is non-positive, DefaultMaxDepth is used.
func NewTree(
	boxSize float64, center geom.Vec, first *multipole.Particle, maxDepth int,
) *Tree {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	root := newNode(multipole.Point(first), 0)
	root.SideLength = boxSize
	root.CellCenter = center
	root.Level = 0

	return &Tree{Nodes: []Node{root}, MaxDepth: maxDepth}
}

// NewNode allocates a standalone, childless node wrapping p. The node has no
// size or position until it is passed to Insert. id is the index of p in the
// caller's particle collection.
func (t *Tree) NewNode(p *multipole.Particle, id int) Idx {
	t.Nodes = append(t.Nodes, newNode(multipole.Point(p), id))
	return Idx(len(t.Nodes) - 1)
}

// Node returns the node at index i.
func (t *Tree) Node(i Idx) *Node {
	return &t.Nodes[i]
}

// Insert places the standalone node b into the subtree rooted at a,
// descending until it finds an empty octant. A leaf met on the way is split
// by moving its multipole into a surrogate child. If the surrogate falls in
// the same octant as b, insertion continues inside the surrogate.
func (t *Tree) Insert(a, b Idx) error {
	for {
		na, nb := &t.Nodes[a], &t.Nodes[b]

		if na.Multipole.COM == nb.Multipole.COM {
			nb.Multipole.COM[0] += CoincidenceShift
		}

		oct, center := na.Octant(&nb.Multipole.COM)
		if c := na.Children[oct]; c != Nil {
			a = c
			continue
		}

		if na.Level+1 > t.MaxDepth {
			return fmt.Errorf(
				"Particle %d could not be separated from particle %d "+
					"within %d levels of the tree: %w",
				nb.Particle, t.leafParticle(a), t.MaxDepth, ErrMaxDepth,
			)
		}

		if !na.IsLeaf() {
			t.attach(a, b, oct, center)
			return nil
		}

		s, sOct := t.subdivide(a)
		if sOct != oct {
			t.attach(a, b, oct, center)
			return nil
		}
		a = s
	}
}

// subdivide moves the multipole of leaf a into a new surrogate child placed
// in the octant containing a's center of mass. a keeps its own multipole
// until the tree is aggregated.
func (t *Tree) subdivide(a Idx) (Idx, int) {
	na := &t.Nodes[a]
	oct, center := na.Octant(&na.Multipole.COM)

	s := newNode(na.Multipole, na.Particle)
	s.Parent = a
	s.SideLength = na.SideLength / 2
	s.CellCenter = center
	s.Level = na.Level + 1

	na.Particle = NoParticle

	t.Nodes = append(t.Nodes, s)
	si := Idx(len(t.Nodes) - 1)
	t.Nodes[a].Children[oct] = si
	t.updateLevel(s.Level)

	return si, oct
}

// attach sets the geometry of b and links it into octant oct of a.
func (t *Tree) attach(a, b Idx, oct int, center geom.Vec) {
	na, nb := &t.Nodes[a], &t.Nodes[b]
	nb.SideLength = na.SideLength / 2
	nb.CellCenter = center
	nb.Level = na.Level + 1
	nb.Parent = a
	na.Children[oct] = b
	t.updateLevel(nb.Level)
}

func (t *Tree) updateLevel(level int) {
	if level > t.maxLevel {
		t.maxLevel = level
	}
}

// leafParticle returns the particle held by a, or by the first leaf found
// below it.
func (t *Tree) leafParticle(a Idx) int {
	for {
		n := &t.Nodes[a]
		if n.IsLeaf() {
			return n.Particle
		}
		for _, c := range n.Children {
			if c != Nil {
				a = c
				break
			}
		}
	}
}
