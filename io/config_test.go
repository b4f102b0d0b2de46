package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/bhtree/force"
)

func TestExampleConfigs(t *testing.T) {
	w, err := ParseConfig(ExampleForcesFile)
	require.NoError(t, err)
	require.NoError(t, w.CheckInit())
	assert.Equal(t, 100.0, w.BarnesHut.BoxSize)
	assert.Equal(t, 0.5, w.BarnesHut.OpeningAngle)
	assert.Equal(t, UniformSource, w.Particles.Source)
	assert.Equal(t, 10000, w.Particles.Count)
	assert.Equal(t, int64(1), w.Particles.Seed)
	assert.Error(t, w.CheckAccuracy(), "no AccuracyAngle")

	w, err = ParseConfig(ExampleAccuracyFile)
	require.NoError(t, err)
	require.NoError(t, w.CheckAccuracy())
	assert.Equal(t, []float64{0.1, 0.3, 0.5, 0.7, 1.0}, w.Output.AccuracyAngle)
	assert.Equal(t, 1e4, w.Particles.HernquistMass)
}

func TestDefaultColumns(t *testing.T) {
	w, err := ParseConfig(`[BarnesHut]
BoxSize = 1
OpeningAngle = 0.5
[Particles]
Source = Catalog
Input = cat.txt
XColumn = 4
[Output]
Output = out.txt`)
	require.NoError(t, err)
	require.NoError(t, w.CheckInit())
	assert.Equal(t, []int{0, 4, 2, 3}, w.Particles.Columns())
}

func TestCheckInit(t *testing.T) {
	base := `[Output]
Output = out.txt
`
	table := []struct {
		text string
		ok   bool
	}{
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0.7\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", true},
		{"[BarnesHut]\nBoxSize = 0\nOpeningAngle = 0.7\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = -1\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\nMaxDepth = -2\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\nSofteningLength = 1\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"SofteningLength = 1\nSofteningCutoff = 2.8\n" +
			"[Particles]\nSource = Uniform\nCount = 10\n", true},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Lattice\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Uniform\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Hernquist\nCount = 10\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Hernquist\nCount = 10\n" +
			"HernquistScale = 1\nHernquistMass = 1\n", true},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Catalog\n", false},
		{"[BarnesHut]\nBoxSize = 10\nOpeningAngle = 0\n" +
			"[Particles]\nSource = Catalog\nInput = cat.txt\nXColumn = 0\n", false},
	}

	for i, test := range table {
		w, err := ParseConfig(base + test.text)
		require.NoError(t, err, "%d", i+1)
		if err := w.CheckInit(); (err == nil) != test.ok {
			t.Errorf("%d) Expected ok = %v, got error %v", i+1, test.ok, err)
		}
	}

	w := DefaultWrapper()
	w.BarnesHut = BarnesHutConfig{BoxSize: 1, OpeningAngle: 1}
	w.Particles.Source, w.Particles.Count = UniformSource, 1
	assert.Error(t, w.CheckInit(), "missing Output")
}

func TestUnknownVariable(t *testing.T) {
	_, err := ParseConfig("[BarnesHut]\nBoxWidth = 10\n")
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	con := &BarnesHutConfig{BoxSize: 10, OpeningAngle: 0.5, MaxDepth: 20}
	p, err := con.Params(0.25)
	require.NoError(t, err)
	require.NoError(t, p.CheckInit())
	assert.Equal(t, 0.25, p.OpeningAngle)
	assert.Equal(t, 20, p.MaxDepth)
	assert.Nil(t, p.Kernel)

	con.SofteningLength, con.SofteningCutoff = 0.1, 0.28
	p, err = con.Params(0.5)
	require.NoError(t, err)
	k, ok := p.Kernel.(*force.Softened)
	require.True(t, ok)
	assert.Equal(t, 0.1, k.Length)
}
