/*package direct computes accelerations by summing over every pair of
particles. It is the O(N^2) reference that Barnes-Hut results are checked
against. */
package direct

import (
	"fmt"

	"github.com/phil-mansfield/bhtree/force"
	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

// Solver sums the contribution of every particle directly.
type Solver struct {
	Particles []multipole.Particle
	Kernel    force.Kernel
}

// New returns a direct solver over ps. If k is nil, the unsoftened Newtonian
// kernel is used.
func New(ps []multipole.Particle, k force.Kernel) *Solver {
	if k == nil {
		k = force.Newton{}
	}
	return &Solver{Particles: ps, Kernel: k}
}

// Force returns the acceleration on p due to every particle at a different
// position.
func (s *Solver) Force(p *multipole.Particle) (geom.Vec, error) {
	return s.forceAt(&p.Pos, -1)
}

// Forces returns the acceleration on each of the solver's particles, in
// order. Particle i never acts on itself.
func (s *Solver) Forces() ([]geom.Vec, error) {
	out := make([]geom.Vec, len(s.Particles))
	for i := range s.Particles {
		acc, err := s.forceAt(&s.Particles[i].Pos, i)
		if err != nil {
			return nil, err
		}
		out[i] = acc
	}
	return out, nil
}

func (s *Solver) forceAt(x *geom.Vec, skip int) (geom.Vec, error) {
	acc, da := geom.Vec{}, geom.Vec{}
	for j := range s.Particles {
		if j == skip {
			continue
		}
		p := &s.Particles[j]
		dx := p.Pos.Sub(x)
		r := dx.Norm()
		if r == 0 {
			continue
		}
		acc.AddSelf(s.Kernel.AccelAt(dx, r, p.Mass, &da))
	}

	if !acc.IsFinite() {
		return acc, fmt.Errorf(
			"Direct acceleration at %v is %v: %w", *x, acc, multipole.ErrNonFinite,
		)
	}
	return acc, nil
}
