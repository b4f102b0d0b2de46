package geom

import (
	"math"
	"math/rand"
	"testing"
)

func randomVecs(n int) []Vec {
	vs := make([]Vec, n)
	for i := range vs {
		for j := 0; j < 3; j++ {
			vs[i][j] = rand.Float64() - 0.5
		}
	}
	return vs
}

func TestVecArithmetic(t *testing.T) {
	table := []struct {
		v1, v2    Vec
		sum, diff Vec
		dot, dist float64
	}{
		{Vec{0, 0, 0}, Vec{0, 0, 0}, Vec{0, 0, 0}, Vec{0, 0, 0}, 0, 0},
		{Vec{1, 2, 3}, Vec{1, 2, 3}, Vec{2, 4, 6}, Vec{0, 0, 0}, 14, 0},
		{Vec{1, 0, 0}, Vec{0, 1, 0}, Vec{1, 1, 0}, Vec{1, -1, 0}, 0, math.Sqrt2},
		{Vec{-1, 1, 1}, Vec{1, 1, 1}, Vec{0, 2, 2}, Vec{-2, 0, 0}, 1, 2},
	}

	for i, test := range table {
		if sum := test.v1.Add(&test.v2); *sum != test.sum {
			t.Errorf("%d) Expected %v + %v = %v, got %v",
				i+1, test.v1, test.v2, test.sum, *sum)
		}
		if diff := test.v1.Sub(&test.v2); *diff != test.diff {
			t.Errorf("%d) Expected %v - %v = %v, got %v",
				i+1, test.v1, test.v2, test.diff, *diff)
		}
		if dot := test.v1.Dot(&test.v2); dot != test.dot {
			t.Errorf("%d) Expected %v . %v = %g, got %g",
				i+1, test.v1, test.v2, test.dot, dot)
		}
		if dist := test.v1.Distance(&test.v2); math.Abs(dist-test.dist) > 1e-12 {
			t.Errorf("%d) Expected |%v - %v| = %g, got %g",
				i+1, test.v1, test.v2, test.dist, dist)
		}
	}
}

func TestVecSelfVariants(t *testing.T) {
	vs := randomVecs(100)
	for i := 0; i+1 < len(vs); i++ {
		v1, v2 := vs[i], vs[i+1]

		want := v1.Add(&v2)
		got := v1
		got.AddSelf(&v2)
		if got != *want {
			t.Errorf("%d) AddSelf gave %v, Add gave %v", i+1, got, *want)
		}

		want = v1.Scale(3)
		got = v1
		got.ScaleSelf(3)
		if got != *want {
			t.Errorf("%d) ScaleSelf gave %v, Scale gave %v", i+1, got, *want)
		}
	}
}

func TestOuter(t *testing.T) {
	v1, v2 := Vec{1, 2, 3}, Vec{4, 5, 6}
	m := v1.Outer(&v2)
	want := Mat{{4, 5, 6}, {8, 10, 12}, {12, 15, 18}}
	if *m != want {
		t.Errorf("Expected outer product %v, got %v", want, *m)
	}
	if tr := v1.Outer(&v1).Trace(); tr != v1.Dot(&v1) {
		t.Errorf("Expected trace of v v^T to be %g, got %g", v1.Dot(&v1), tr)
	}
}

func TestIsFinite(t *testing.T) {
	if v := (Vec{1, 2, 3}); !v.IsFinite() {
		t.Errorf("Expected %v to be finite", v)
	}
	if v := (Vec{1, math.NaN(), 3}); v.IsFinite() {
		t.Errorf("Expected %v to not be finite", v)
	}
	m := Mat{}
	m[2][1] = math.Inf(1)
	if m.IsFinite() {
		t.Errorf("Expected %v to not be finite", m)
	}
}

func BenchmarkVecDistance(b *testing.B) {
	n := 1000
	vs := randomVecs(n)
	sum := 0.0
	for i := 0; i < b.N; i++ {
		sum += vs[i%n].Distance(&vs[(i+1)%n])
	}
}
