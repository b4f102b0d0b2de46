/*package octree builds the lazily subdivided octree used by the Barnes-Hut
solver and fills in the multipoles of its internal nodes.

Nodes live in a single arena owned by a Tree and refer to one another by
index. A node is a leaf iff all eight of its child slots are Nil. Every leaf
holds exactly one particle. */
package octree

import (
	"fmt"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

// Idx is the index of a node within its Tree's arena.
type Idx int32

const (
	// Nil marks an empty child slot or a missing parent.
	Nil Idx = -1
	// NoParticle marks a node which does not own an input particle.
	NoParticle = -1
)

// Node is a single cubical cell of the tree.
type Node struct {
	// Parent is a non-owning back reference. It is Nil for the root and for
	// nodes which have not been inserted yet.
	Parent   Idx
	Children [8]Idx

	// Multipole is the particle's own multipole for leaves. For internal
	// nodes it is only meaningful after Tree.Aggregate has been called.
	Multipole multipole.Multipole

	SideLength float64
	CellCenter geom.Vec

	// Level is the depth of the node below the root, or -1 if the node has
	// not been placed in the tree.
	Level int
	// Particle is the index of the input particle held by a leaf.
	Particle int
}

func newNode(m multipole.Multipole, particle int) Node {
	n := Node{
		Parent: Nil, Multipole: m, Level: -1, Particle: particle,
	}
	for i := range n.Children {
		n.Children[i] = Nil
	}
	return n
}

// IsLeaf returns true if the node has no children.
func (n *Node) IsLeaf() bool {
	for _, c := range n.Children {
		if c != Nil {
			return false
		}
	}
	return true
}

// ChildCount returns the number of non-empty child slots.
func (n *Node) ChildCount() int {
	count := 0
	for _, c := range n.Children {
		if c != Nil {
			count++
		}
	}
	return count
}

func (n *Node) String() string {
	return fmt.Sprintf(
		"(mass: %.4g, COM: %.4g, center: %.4g, side: %.4g)",
		n.Multipole.Mass, n.Multipole.COM, n.CellCenter, n.SideLength,
	)
}
