/*package bhtree computes approximate gravitational accelerations on a set of
point masses with the Barnes-Hut algorithm.

A BarnesHut solver builds an octree over its particles when it is created,
aggregates the multipoles of every cell and then answers force queries by
walking the tree. Any solver which satisfies Solver, such as the direct
summation solver in the direct package, can be used interchangeably with it
for cross-validation. */
package bhtree

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/bhtree/force"
	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
	"github.com/phil-mansfield/bhtree/octree"
)

// ErrNonFinite is wrapped by errors reporting NaN or infinite multipoles
// or forces.
var ErrNonFinite = multipole.ErrNonFinite

// Solver computes accelerations on particles.
type Solver interface {
	// Force returns the acceleration on p. p need not be one of the
	// solver's own particles.
	Force(p *multipole.Particle) (geom.Vec, error)
	// Forces returns the acceleration on each of the solver's particles,
	// aligned with the order they were given in.
	Forces() ([]geom.Vec, error)
}

// Params configures a BarnesHut solver.
type Params struct {
	// BoxSize is the side length of the cube, centered on the origin, which
	// must contain every particle.
	BoxSize float64
	// OpeningAngle is the ratio of cell size to distance below which a cell
	// is treated as a single mass.
	OpeningAngle float64
	// MaxDepth limits the depth of the tree. Zero means
	// octree.DefaultMaxDepth.
	MaxDepth int
	// Kernel is the force law. nil means force.Newton.
	Kernel force.Kernel
}

// CheckInit returns an error if the parameters are invalid.
func (p *Params) CheckInit() error {
	if !(p.BoxSize > 0) || math.IsInf(p.BoxSize, 0) {
		return fmt.Errorf("BoxSize must be positive and finite, but is %g.", p.BoxSize)
	} else if !(p.OpeningAngle >= 0) || math.IsInf(p.OpeningAngle, 0) {
		return fmt.Errorf(
			"OpeningAngle must be non-negative and finite, but is %g.",
			p.OpeningAngle,
		)
	} else if p.MaxDepth < 0 {
		return fmt.Errorf("MaxDepth must be non-negative, but is %d.", p.MaxDepth)
	}
	return nil
}

// BarnesHut is a Solver backed by an aggregated octree. It is safe for
// concurrent use once New returns.
type BarnesHut struct {
	Params
	Particles []multipole.Particle
	Tree      *octree.Tree

	eval *force.Evaluator
	// leaves[i] is the leaf holding particle i.
	leaves []octree.Idx
}

var _ Solver = &BarnesHut{}

// New builds and aggregates a tree over ps inside a box of side boxSize
// centered on the origin, using the unsoftened force law.
func New(boxSize, openingAngle float64, ps []multipole.Particle) (*BarnesHut, error) {
	return NewFromParams(&Params{BoxSize: boxSize, OpeningAngle: openingAngle}, ps)
}

// NewFromParams builds and aggregates a tree over ps. The particles are
// validated before any node is created.
func NewFromParams(p *Params, ps []multipole.Particle) (*BarnesHut, error) {
	if err := p.CheckInit(); err != nil {
		return nil, err
	}

	t, err := octree.Build(p.BoxSize, ps, p.MaxDepth)
	if err != nil {
		return nil, err
	}

	eval, err := force.NewEvaluator(t, p.OpeningAngle, p.Kernel)
	if err != nil {
		return nil, err
	}

	bh := &BarnesHut{
		Params: *p, Particles: ps, Tree: t, eval: eval,
		leaves: t.ParticleLeaves(len(ps)),
	}
	bh.Kernel = eval.Kernel
	return bh, nil
}

// Force returns the acceleration on p from every cell of the tree.
func (bh *BarnesHut) Force(p *multipole.Particle) (geom.Vec, error) {
	return bh.eval.Force(&p.Pos)
}

// ForceCounted is Force, but also records the work done in c.
func (bh *BarnesHut) ForceCounted(p *multipole.Particle, c *force.Counts) (geom.Vec, error) {
	return bh.eval.ForceCounted(&p.Pos, c)
}

// Forces returns the acceleration on every particle the solver was built
// from. Element i corresponds to particle i. Each particle is evaluated at
// the center of mass of its own leaf, which differs from its position only
// if it was shifted off a coincident particle during insertion.
func (bh *BarnesHut) Forces() ([]geom.Vec, error) {
	out, _, err := bh.ForcesCounted()
	return out, err
}

// ForcesCounted is Forces, but also returns the total work done.
func (bh *BarnesHut) ForcesCounted() ([]geom.Vec, force.Counts, error) {
	c := force.Counts{}
	out := make([]geom.Vec, len(bh.Particles))
	for i := range bh.Particles {
		acc, err := bh.eval.ForceCounted(bh.position(i), &c)
		if err != nil {
			return nil, c, fmt.Errorf("Particle %d: %w", i, err)
		}
		out[i] = acc
	}
	return out, c, nil
}

func (bh *BarnesHut) position(i int) *geom.Vec {
	if leaf := bh.leaves[i]; leaf != octree.Nil {
		return &bh.Tree.Node(leaf).Multipole.COM
	}
	return &bh.Particles[i].Pos
}

// Magnitudes returns the norm of every vector in vs.
func Magnitudes(vs []geom.Vec) []float64 {
	out := make([]float64, len(vs))
	for i := range vs {
		out[i] = vs[i].Norm()
	}
	return out
}
