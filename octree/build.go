package octree

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

// CheckParticles returns an error if ps cannot be placed into a cube of side
// boxSize centered on center.
func CheckParticles(boxSize float64, center geom.Vec, ps []multipole.Particle) error {
	if !(boxSize > 0) || math.IsInf(boxSize, 0) {
		return fmt.Errorf("Box size must be positive and finite, but is %g.", boxSize)
	} else if len(ps) == 0 {
		return fmt.Errorf("Need at least one particle to build a tree.")
	}

	half := boxSize / 2
	for i := range ps {
		p := &ps[i]
		if !(p.Mass >= 0) || math.IsInf(p.Mass, 0) {
			return fmt.Errorf(
				"Particle %d must have a non-negative, finite mass, but has %g.",
				i, p.Mass,
			)
		} else if !p.Pos.IsFinite() {
			return fmt.Errorf(
				"Particle %d has a non-finite position, %v.", i, p.Pos,
			)
		}

		for j := 0; j < 3; j++ {
			if math.Abs(p.Pos[j]-center[j]) > half {
				return fmt.Errorf(
					"Particle %d at %v lies outside the box of width %g "+
						"centered on %v.", i, p.Pos, boxSize, center,
				)
			}
		}
	}

	return nil
}

// Build checks ps, inserts the particles in order into a tree spanning a box
// of side boxSize centered on the origin and aggregates its multipoles. The
// first particle becomes the root. Insertion order changes the shape of the
// tree but not the root multipole.
func Build(boxSize float64, ps []multipole.Particle, maxDepth int) (*Tree, error) {
	center := geom.Vec{}
	if err := CheckParticles(boxSize, center, ps); err != nil {
		return nil, err
	}

	t := NewTree(boxSize, center, &ps[0], maxDepth)
	// Capacity hint. Most insertions add a node and a surrogate.
	nodes := make([]Node, 1, 2*len(ps))
	nodes[0] = t.Nodes[0]
	t.Nodes = nodes

	for i := 1; i < len(ps); i++ {
		b := t.NewNode(&ps[i], i)
		if err := t.Insert(Root, b); err != nil {
			return nil, err
		}
	}

	if err := t.Aggregate(); err != nil {
		return nil, err
	}

	return t, nil
}
