package multipole

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/phil-mansfield/bhtree/geom"
)

func randomParticles(n int) []Particle {
	ps := make([]Particle, n)
	for i := range ps {
		ps[i].Mass = rand.Float64() * 10
		for j := 0; j < 3; j++ {
			ps[i].Pos[j] = rand.Float64()*20 - 10
		}
	}
	return ps
}

// directQuadrupole computes sum_k m_k (x_k - c)(x_k - c)^T.
func directQuadrupole(ps []Particle, com *geom.Vec) geom.Mat {
	q := geom.Mat{}
	for _, p := range ps {
		d := p.Pos.Sub(com)
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				q[i][j] += p.Mass * d[i] * d[j]
			}
		}
	}
	return q
}

func TestPoint(t *testing.T) {
	p := Particle{Mass: 3, Pos: geom.Vec{1, 2, 3}}
	m := Point(&p)
	assert.Equal(t, 3.0, m.Mass)
	assert.Equal(t, p.Pos, m.COM)
	assert.Equal(t, geom.Mat{}, m.Quad, "point quadrupole")
}

func TestCombineTwo(t *testing.T) {
	p1 := Particle{Mass: 1, Pos: geom.Vec{-1, 1, 1}}
	p2 := Particle{Mass: 2, Pos: geom.Vec{1, 1, 1}}

	m := Empty()
	m1, m2 := Point(&p1), Point(&p2)
	m.Combine(&m1)
	m.Combine(&m2)

	assert.InDelta(t, 3.0, m.Mass, 1e-12)
	want := geom.Vec{1.0 / 3, 1, 1}
	assert.True(t, m.COM.AlmostEq(&want, 1e-12), "COM is %v", m.COM)

	q := directQuadrupole([]Particle{p1, p2}, &want)
	assert.True(t, m.Quad.AlmostEq(&q, 1e-12), "quadrupole is %v", m.Quad)
	// Only the x axis separates the two particles.
	assert.InDelta(t, 8.0/3, m.Quad[0][0], 1e-12)
	assert.InDelta(t, 0.0, m.Quad[1][1], 1e-12)
}

func TestCombineMany(t *testing.T) {
	ps := randomParticles(50)
	ms := make([]Multipole, len(ps))
	for i := range ps {
		ms[i] = Point(&ps[i])
	}

	m := Combined(ms...)

	totalMass, com := 0.0, geom.Vec{}
	for _, p := range ps {
		totalMass += p.Mass
		com.AddSelf(p.Pos.Scale(p.Mass))
	}
	com.ScaleSelf(1 / totalMass)

	assert.InDelta(t, totalMass, m.Mass, 1e-9)
	assert.True(t, m.COM.AlmostEq(&com, 1e-9), "COM is %v, not %v", m.COM, com)
	q := directQuadrupole(ps, &com)
	assert.True(t, m.Quad.AlmostEq(&q, 1e-7), "quadrupole is %v, not %v", m.Quad, q)
}

func TestCombineOrderIndependent(t *testing.T) {
	ps := randomParticles(20)
	ms := make([]Multipole, len(ps))
	for i := range ps {
		ms[i] = Point(&ps[i])
	}
	left := Combined(ms...)

	// Fold in two halves, then combine the halves.
	a, b := Combined(ms[:7]...), Combined(ms[7:]...)
	b.Combine(&a)

	assert.InDelta(t, left.Mass, b.Mass, 1e-9)
	assert.True(t, left.COM.AlmostEq(&b.COM, 1e-9))
	assert.True(t, left.Quad.AlmostEq(&b.Quad, 1e-7))
}

func TestCombineMassless(t *testing.T) {
	m := Empty()
	m2 := Multipole{COM: geom.Vec{4, 5, 6}}
	m.Combine(&m2)
	assert.Equal(t, 0.0, m.Mass)
	assert.Equal(t, geom.Vec{}, m.COM)
	assert.NoError(t, m.Check())
}

func TestShiftQuadrupole(t *testing.T) {
	q := geom.Mat{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	from, to := geom.Vec{0, 0, 0}, geom.Vec{1, 2, 0}
	out := ShiftQuadrupole(&q, 2, &from, &to)
	want := geom.Mat{{3, 4, 0}, {4, 9, 0}, {0, 0, 1}}
	assert.Equal(t, want, out)
}

func TestCheck(t *testing.T) {
	m := Multipole{Mass: 1}
	assert.NoError(t, m.Check())

	m.COM[1] = math.NaN()
	assert.Error(t, m.Check())

	m = Multipole{Mass: math.Inf(1)}
	assert.Error(t, m.Check())

	m = Multipole{Mass: -1}
	assert.Error(t, m.Check())
}

func BenchmarkCombine(b *testing.B) {
	ps := randomParticles(1000)
	m := Empty()
	for i := 0; i < b.N; i++ {
		pm := Point(&ps[i%len(ps)])
		m.Combine(&pm)
	}
}
