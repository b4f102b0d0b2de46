/*package multipole contains the mass summaries stored at the nodes of a
Barnes-Hut tree: point particles and aggregated multipoles with a mass, a
center of mass and a quadrupole tensor. */
package multipole

import (
	"errors"
	"fmt"
	"math"

	"github.com/phil-mansfield/bhtree/geom"
)

// ErrNonFinite is wrapped by every error reporting a NaN or infinite value
// in a multipole or a force.
var ErrNonFinite = errors.New("non-finite value")

// Particle is a point mass.
type Particle struct {
	Mass float64
	Pos  geom.Vec
}

// Multipole summarizes a mass distribution by its total mass, its center of
// mass and its quadrupole tensor (the second mass moment about COM).
//
// The quadrupole of a single particle is the zero matrix.
type Multipole struct {
	Mass float64
	COM  geom.Vec
	Quad geom.Mat
}

// Point returns the multipole of a single particle.
func Point(p *Particle) Multipole {
	return Multipole{Mass: p.Mass, COM: p.Pos}
}

// Empty returns a multipole with no mass at the origin. It is the identity
// element of Combine.
func Empty() Multipole {
	return Multipole{}
}

// ShiftQuadrupole moves a quadrupole tensor of a distribution with the given
// total mass from oldCOM to newCOM using the parallel axis theorem.
func ShiftQuadrupole(q *geom.Mat, mass float64, oldCOM, newCOM *geom.Vec) geom.Mat {
	out := geom.Mat{}
	return *ShiftQuadrupoleAt(q, mass, oldCOM, newCOM, &out)
}

func ShiftQuadrupoleAt(
	q *geom.Mat, mass float64, oldCOM, newCOM *geom.Vec, out *geom.Mat,
) *geom.Mat {
	disp := newCOM.Sub(oldCOM)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = q[i][j] + mass*disp[i]*disp[j]
		}
	}
	return out
}

// Combine folds m2 into m. If both multipoles are massless, the combined
// center of mass is placed at the origin.
func (m *Multipole) Combine(m2 *Multipole) {
	mass := m.Mass + m2.Mass

	com := geom.Vec{}
	if mass != 0 {
		for i := 0; i < 3; i++ {
			com[i] = (m.Mass*m.COM[i] + m2.Mass*m2.COM[i]) / mass
		}
	}

	q1 := ShiftQuadrupole(&m.Quad, m.Mass, &m.COM, &com)
	q2 := ShiftQuadrupole(&m2.Quad, m2.Mass, &m2.COM, &com)

	m.Mass = mass
	m.COM = com
	m.Quad = *q1.AddSelf(&q2)
}

// Combined returns the combination of all the given multipoles without
// modifying any of them.
func Combined(ms ...Multipole) Multipole {
	out := Empty()
	for i := range ms {
		out.Combine(&ms[i])
	}
	return out
}

// Check returns an error if the multipole contains a NaN or infinite value
// (wrapping ErrNonFinite) or a negative mass.
func (m *Multipole) Check() error {
	if !m.COM.IsFinite() || !m.Quad.IsFinite() ||
		math.IsNaN(m.Mass) || math.IsInf(m.Mass, 0) {

		return fmt.Errorf(
			"Multipole with mass %g and center of mass %v is invalid: %w",
			m.Mass, m.COM, ErrNonFinite,
		)
	} else if m.Mass < 0 {
		return fmt.Errorf("Multipole has negative mass %g.", m.Mass)
	}
	return nil
}

func (m Multipole) String() string {
	return fmt.Sprintf("(mass: %.4g, COM: %.4g)", m.Mass, m.COM)
}
