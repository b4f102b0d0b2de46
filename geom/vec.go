/*package geom contains the small fixed-size vector and matrix routines used
by the tree and the force solvers. */
package geom

import (
	"math"
)

// Vec represents a 3D vector. Most vector methods which return vectors also
// have *Self() and *At() variants which compute the operation in-place and at
// the specified location, respectively. All output vectors are valid unless
// they overlap with an input vector but are not equal to that vector.
type Vec [3]float64

// Add adds two vectors together.
func (v1 *Vec) Add(v2 *Vec) *Vec {
	return v1.AddAt(v2, &Vec{})
}

func (v1 *Vec) AddSelf(v2 *Vec) *Vec {
	return v1.AddAt(v2, v1)
}

func (v1 *Vec) AddAt(v2, out *Vec) *Vec {
	for i := 0; i < 3; i++ {
		out[i] = v1[i] + v2[i]
	}
	return out
}

// Sub computes the displacement vector v1 - v2.
func (v1 *Vec) Sub(v2 *Vec) *Vec {
	return v1.SubAt(v2, &Vec{})
}

func (v1 *Vec) SubSelf(v2 *Vec) *Vec {
	return v1.SubAt(v2, v1)
}

func (v1 *Vec) SubAt(v2, out *Vec) *Vec {
	for i := 0; i < 3; i++ {
		out[i] = v1[i] - v2[i]
	}
	return out
}

// Scale multiplies all components of a vector by a constant.
func (v *Vec) Scale(k float64) *Vec {
	return v.ScaleAt(k, &Vec{})
}

func (v *Vec) ScaleSelf(k float64) *Vec {
	return v.ScaleAt(k, v)
}

func (v *Vec) ScaleAt(k float64, out *Vec) *Vec {
	for i := 0; i < 3; i++ {
		out[i] = v[i] * k
	}
	return out
}

// Dot computes the dot product of two vectors.
func (v1 *Vec) Dot(v2 *Vec) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		sum += v1[i] * v2[i]
	}
	return sum
}

// Norm computes the norm of a vector.
func (v *Vec) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance between two points.
func (v1 *Vec) Distance(v2 *Vec) float64 {
	sum := 0.0
	for i := 0; i < 3; i++ {
		d := v1[i] - v2[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

// IsFinite returns true if no component of v is NaN or infinite.
func (v *Vec) IsFinite() bool {
	for i := 0; i < 3; i++ {
		if math.IsNaN(v[i]) || math.IsInf(v[i], 0) {
			return false
		}
	}
	return true
}

// AlmostEq returns true if every component of v1 and v2 is within eps of
// one another.
func (v1 *Vec) AlmostEq(v2 *Vec, eps float64) bool {
	for i := 0; i < 3; i++ {
		if math.Abs(v1[i]-v2[i]) > eps {
			return false
		}
	}
	return true
}
