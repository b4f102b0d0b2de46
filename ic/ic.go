/*package ic draws initial particle distributions: uniform random boxes and
Hernquist profiles. Every sampler is seeded so results are reproducible. */
package ic

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

// maxRejections bounds the number of draws a sampler may reject per
// particle before giving up.
const maxRejections = 1 << 16

// Uniform returns n particles with masses uniform in [0, maxMass) and
// positions uniform within a box of the given width centered on the origin.
func Uniform(n int, width, maxMass float64, seed int64) ([]multipole.Particle, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Particle count must be positive, but is %d.", n)
	} else if !(width > 0) {
		return nil, fmt.Errorf("Box width must be positive, but is %g.", width)
	} else if !(maxMass > 0) {
		return nil, fmt.Errorf("Maximum mass must be positive, but is %g.", maxMass)
	}

	r := rand.New(rand.NewSource(seed))
	ps := make([]multipole.Particle, n)
	for i := range ps {
		ps[i].Mass = maxMass * r.Float64()
		for j := 0; j < 3; j++ {
			ps[i].Pos[j] = width*r.Float64() - width/2
		}
	}
	return ps, nil
}

// Hernquist describes a Hernquist (1990) density profile with scale radius
// A and total mass M, rho(r) = M A / (2 pi r (r + A)^3).
type Hernquist struct {
	A, M float64
}

// EnclosedMass returns the mass inside radius r.
func (h *Hernquist) EnclosedMass(r float64) float64 {
	return h.M * r * r / ((r + h.A) * (r + h.A))
}

// Radius returns the radius enclosing the mass fraction f, with 0 <= f < 1.
func (h *Hernquist) Radius(f float64) float64 {
	s := math.Sqrt(f)
	return h.A * s / (1 - s)
}

// Sample returns n equal-mass particles drawn from the profile. Draws which
// fall outside a box of the given width centered on the origin are rejected
// and redrawn, so the sampled profile is truncated at the box edges.
func (h *Hernquist) Sample(n int, width float64, seed int64) ([]multipole.Particle, error) {
	if n <= 0 {
		return nil, fmt.Errorf("Particle count must be positive, but is %d.", n)
	} else if !(width > 0) {
		return nil, fmt.Errorf("Box width must be positive, but is %g.", width)
	} else if !(h.A > 0) {
		return nil, fmt.Errorf("Hernquist scale radius must be positive, but is %g.", h.A)
	} else if !(h.M > 0) {
		return nil, fmt.Errorf("Hernquist mass must be positive, but is %g.", h.M)
	}

	r := rand.New(rand.NewSource(seed))
	ps := make([]multipole.Particle, n)
	mp := h.M / float64(n)

	for i := range ps {
		ok := false
		for try := 0; try < maxRejections; try++ {
			x := h.samplePoint(r)
			if inBox(&x, width) {
				ps[i] = multipole.Particle{Mass: mp, Pos: x}
				ok = true
				break
			}
		}
		if !ok {
			return nil, fmt.Errorf(
				"Could not draw particle %d from a Hernquist profile with "+
					"A = %g inside a box of width %g.", i, h.A, width,
			)
		}
	}

	return ps, nil
}

// samplePoint draws a point with an isotropic direction and a radius
// distributed according to the enclosed mass.
func (h *Hernquist) samplePoint(r *rand.Rand) geom.Vec {
	rad := h.Radius(r.Float64())
	cosTheta := 2*r.Float64() - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2 * math.Pi * r.Float64()

	return geom.Vec{
		rad * sinTheta * math.Cos(phi),
		rad * sinTheta * math.Sin(phi),
		rad * cosTheta,
	}
}

func inBox(x *geom.Vec, width float64) bool {
	half := width / 2
	for j := 0; j < 3; j++ {
		if math.Abs(x[j]) > half {
			return false
		}
	}
	return true
}
