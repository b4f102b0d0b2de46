package geom

import (
	"math"
)

// Mat is a 3x3 matrix stored in row-major order.
type Mat [3][3]float64

// Outer computes the outer product v1 v2^T.
func (v1 *Vec) Outer(v2 *Vec) *Mat {
	return v1.OuterAt(v2, &Mat{})
}

func (v1 *Vec) OuterAt(v2 *Vec, out *Mat) *Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = v1[i] * v2[j]
		}
	}
	return out
}

// Add adds two matrices together.
func (m1 *Mat) Add(m2 *Mat) *Mat {
	return m1.AddAt(m2, &Mat{})
}

func (m1 *Mat) AddSelf(m2 *Mat) *Mat {
	return m1.AddAt(m2, m1)
}

func (m1 *Mat) AddAt(m2, out *Mat) *Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m1[i][j] + m2[i][j]
		}
	}
	return out
}

// Scale multiplies every element of a matrix by a constant.
func (m *Mat) Scale(k float64) *Mat {
	return m.ScaleAt(k, &Mat{})
}

func (m *Mat) ScaleSelf(k float64) *Mat {
	return m.ScaleAt(k, m)
}

func (m *Mat) ScaleAt(k float64, out *Mat) *Mat {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][j] * k
		}
	}
	return out
}

// Trace returns the sum of the diagonal elements of m.
func (m *Mat) Trace() float64 {
	return m[0][0] + m[1][1] + m[2][2]
}

// IsFinite returns true if no element of m is NaN or infinite.
func (m *Mat) IsFinite() bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.IsNaN(m[i][j]) || math.IsInf(m[i][j], 0) {
				return false
			}
		}
	}
	return true
}

// AlmostEq returns true if every element of m1 and m2 is within eps of one
// another.
func (m1 *Mat) AlmostEq(m2 *Mat, eps float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(m1[i][j]-m2[i][j]) > eps {
				return false
			}
		}
	}
	return true
}
