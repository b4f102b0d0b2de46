package force

import (
	"fmt"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
	"github.com/phil-mansfield/bhtree/octree"
)

// Counts records the work done by one or more tree walks.
type Counts struct {
	// LeafInteractions and CellInteractions count accepted nodes which were
	// leaves and internal nodes, respectively.
	LeafInteractions, CellInteractions int
	// Openings counts internal nodes which failed the opening-angle test
	// and were descended into.
	Openings int
	// Overlaps counts nodes skipped because their center of mass coincided
	// exactly with the target.
	Overlaps int
}

// Add adds the counts in c2 to c.
func (c *Counts) Add(c2 *Counts) {
	c.LeafInteractions += c2.LeafInteractions
	c.CellInteractions += c2.CellInteractions
	c.Openings += c2.Openings
	c.Overlaps += c2.Overlaps
}

// Interactions returns the total number of accepted nodes.
func (c *Counts) Interactions() int {
	return c.LeafInteractions + c.CellInteractions
}

// Evaluator computes accelerations from an aggregated tree. A node is used
// as a single source if it is a leaf or if its side length is smaller than
// OpeningAngle times its distance to the target. An Evaluator only reads the
// tree, so one Evaluator may be shared between goroutines.
type Evaluator struct {
	Tree         *octree.Tree
	OpeningAngle float64
	// Kernel defaults to Newton if nil.
	Kernel Kernel
}

// NewEvaluator returns an Evaluator over t.
func NewEvaluator(t *octree.Tree, openingAngle float64, k Kernel) (*Evaluator, error) {
	if !(openingAngle >= 0) {
		return nil, fmt.Errorf(
			"Opening angle must be non-negative, but is %g.", openingAngle,
		)
	}
	if k == nil {
		k = Newton{}
	}
	return &Evaluator{Tree: t, OpeningAngle: openingAngle, Kernel: k}, nil
}

// Force returns the acceleration at x. An error wrapping
// multipole.ErrNonFinite is returned if the result is NaN or infinite.
func (e *Evaluator) Force(x *geom.Vec) (geom.Vec, error) {
	return e.ForceCounted(x, nil)
}

// ForceCounted is Force, but also adds the work done by the walk to c if c
// is non-nil.
func (e *Evaluator) ForceCounted(x *geom.Vec, c *Counts) (geom.Vec, error) {
	if c == nil {
		c = &Counts{}
	}
	k := e.Kernel
	if k == nil {
		k = Newton{}
	}

	acc := geom.Vec{}
	e.walk(x, octree.Root, k, &acc, c)

	if !acc.IsFinite() {
		return acc, fmt.Errorf(
			"Acceleration at %v is %v: %w", *x, acc, multipole.ErrNonFinite,
		)
	}
	return acc, nil
}

func (e *Evaluator) walk(x *geom.Vec, i octree.Idx, k Kernel, acc *geom.Vec, c *Counts) {
	n := e.Tree.Node(i)
	dx := n.Multipole.COM.Sub(x)
	r := dx.Norm()

	if r == 0 {
		c.Overlaps++
		return
	}

	leaf := n.IsLeaf()
	if leaf || n.SideLength < e.OpeningAngle*r {
		if leaf {
			c.LeafInteractions++
		} else {
			c.CellInteractions++
		}
		da := geom.Vec{}
		acc.AddSelf(k.AccelAt(dx, r, n.Multipole.Mass, &da))
		return
	}

	c.Openings++
	for _, child := range n.Children {
		if child != octree.Nil {
			e.walk(x, child, k, acc, c)
		}
	}
}
