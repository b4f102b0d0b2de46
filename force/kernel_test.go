package force

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/bhtree/geom"
)

func TestNewton(t *testing.T) {
	table := []struct {
		dx   geom.Vec
		mass float64
		mag  float64
	}{
		{geom.Vec{1, 0, 0}, 1, 1},
		{geom.Vec{0, 2, 0}, 1, 0.25},
		{geom.Vec{0, 0, -3}, 9, 1},
		{geom.Vec{3, 4, 0}, 50, 2},
	}

	for i, test := range table {
		r := test.dx.Norm()
		acc := Newton{}.AccelAt(&test.dx, r, test.mass, &geom.Vec{})
		if math.Abs(acc.Norm()-test.mag) > 1e-12 {
			t.Errorf("%d) Expected magnitude %g, got %g", i+1, test.mag, acc.Norm())
		}
		if acc.Dot(&test.dx) <= 0 {
			t.Errorf("%d) Acceleration %v does not point along %v",
				i+1, *acc, test.dx)
		}
	}
}

func TestSoftenedEpsilon(t *testing.T) {
	k, err := NewSoftened(0.5, 10)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, k.Epsilon(0), 1e-12, "eps(0) is the softening length")
	assert.InDelta(t, 0.0, k.Epsilon(2.8*0.5), 1e-12, "kernel edge")
	assert.InDelta(t, 0.0, k.Epsilon(5), 1e-12, "beyond the kernel")
	assert.Equal(t, 0.0, k.Epsilon(10), "at the cutoff")
	assert.Equal(t, 0.0, k.Epsilon(20), "beyond the cutoff")

	// Softening only ever weakens the force, and continuously so.
	prev := k.Epsilon(0)
	for i := 1; i <= 200; i++ {
		r := 1.5 * float64(i) / 200
		eps := k.Epsilon(r)
		assert.True(t, eps >= -1e-12, "eps(%g) = %g", r, eps)
		assert.True(t, math.Abs(eps-prev) < 0.05, "jump at r = %g", r)
		prev = eps
	}
}

func TestSoftenedAccel(t *testing.T) {
	k, err := NewSoftened(0.1, 5)
	require.NoError(t, err)

	for _, r := range []float64{0.01, 0.1, 0.2, 0.27} {
		dx := geom.Vec{r, 0, 0}
		soft := k.AccelAt(&dx, r, 1, &geom.Vec{})
		hard := Newton{}.AccelAt(&dx, r, 1, &geom.Vec{})
		assert.True(t, soft.Norm() < hard.Norm(),
			"softened %g >= unsoftened %g at r = %g", soft.Norm(), hard.Norm(), r)
		assert.True(t, soft[0] > 0)
	}

	// The magnitude is m / (r + eps)^2 along the displacement.
	for _, r := range []float64{0.05, 0.2} {
		dx := geom.Vec{0, 0, -r}
		s := r + k.Epsilon(r)
		acc := k.AccelAt(&dx, r, 3, &geom.Vec{})
		assert.InEpsilon(t, 3/(s*s), acc.Norm(), 1e-12)
		assert.True(t, acc[2] < 0)
	}

	// Far from the particle the kernels agree.
	dx := geom.Vec{0, 3, 0}
	soft := k.AccelAt(&dx, 3, 1, &geom.Vec{})
	hard := Newton{}.AccelAt(&dx, 3, 1, &geom.Vec{})
	assert.True(t, soft.AlmostEq(hard, 1e-12))

	// The softened force stays finite as r goes to zero.
	dx = geom.Vec{1e-12, 0, 0}
	soft = k.AccelAt(&dx, 1e-12, 1, &geom.Vec{})
	assert.InDelta(t, 1/(0.1*0.1), soft.Norm(), 1e-6)
}

func TestNewSoftened(t *testing.T) {
	_, err := NewSoftened(0, 1)
	assert.Error(t, err)
	_, err = NewSoftened(1, 0)
	assert.Error(t, err)
	_, err = NewSoftened(math.Inf(1), 1)
	assert.Error(t, err)
}
