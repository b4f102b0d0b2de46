/*package force evaluates gravitational accelerations on a built and
aggregated octree using the Barnes-Hut opening-angle criterion. G = 1
throughout, so the returned "forces" are accelerations. */
package force

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/bhtree/geom"
)

// Kernel gives the acceleration at a point due to a mass at displacement dx
// (pointing from the point to the mass) and distance r = |dx| > 0.
type Kernel interface {
	AccelAt(dx *geom.Vec, r, mass float64, out *geom.Vec) *geom.Vec
}

// Newton is the unsoftened point-mass kernel, mass / r^2 along dx.
type Newton struct{}

func (Newton) AccelAt(dx *geom.Vec, r, mass float64, out *geom.Vec) *geom.Vec {
	return dx.ScaleAt(mass/(r*r*r), out)
}

// Softened is a finite-range softening kernel (Springel, Yoshida & White
// 2001). The separation r is replaced by r + eps(r), where eps(0) = Length
// and eps smoothly goes to zero at 2.8 Length. Beyond Cutoff no softening is
// applied at all.
type Softened struct {
	Length, Cutoff float64
}

// NewSoftened returns a softened kernel with the given softening length and
// cutoff radius.
func NewSoftened(length, cutoff float64) (*Softened, error) {
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf(
			"Softening length must be positive and finite, but is %g.", length,
		)
	} else if !(cutoff > 0) {
		return nil, fmt.Errorf(
			"Softening cutoff must be positive, but is %g.", cutoff,
		)
	}
	return &Softened{Length: length, Cutoff: cutoff}, nil
}

func (k *Softened) AccelAt(dx *geom.Vec, r, mass float64, out *geom.Vec) *geom.Vec {
	s := r + k.Epsilon(r)
	return dx.ScaleAt(mass/(s*s*r), out)
}

// Epsilon returns the softening added to a separation of r.
func (k *Softened) Epsilon(r float64) float64 {
	if r >= k.Cutoff {
		return 0
	}
	h := 2.8 * k.Length
	return -h/w2(r/h) - r
}

// w2 is the integrated cubic spline kernel. Outside u = 1 it is exactly
// -1/u, which makes Epsilon vanish.
func w2(u float64) float64 {
	u2 := u * u
	switch {
	case u < 0.5:
		return 16.0/3*u2 - 48.0/5*u2*u2 + 32.0/5*u2*u2*u - 14.0/5
	case u < 1:
		return 1/(15*u) + 32.0/3*u2 - 16*u2*u + 48.0/5*u2*u2 -
			32.0/15*u2*u2*u - 16.0/5
	default:
		return -1 / u
	}
}
