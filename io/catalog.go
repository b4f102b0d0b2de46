package io

import (
	"fmt"

	"github.com/phil-mansfield/table"

	"github.com/phil-mansfield/bhtree/ic"
	"github.com/phil-mansfield/bhtree/multipole"
)

// ReadCatalog reads the particles in the text catalog fname. cols gives the
// mass, x, y, and z columns, in that order.
func ReadCatalog(fname string, cols []int) ([]multipole.Particle, error) {
	if len(cols) != 4 {
		return nil, fmt.Errorf(
			"Catalogs need four columns (mass, x, y, z), but %d were given.",
			len(cols),
		)
	}

	data, err := table.ReadTable(fname, cols, nil)
	if err != nil {
		return nil, err
	}
	return particlesFromColumns(data)
}

func particlesFromColumns(cols [][]float64) ([]multipole.Particle, error) {
	if len(cols) != 4 {
		return nil, fmt.Errorf("Expected 4 catalog columns, got %d.", len(cols))
	}
	ms, xs, ys, zs := cols[0], cols[1], cols[2], cols[3]
	n := len(ms)
	if len(xs) != n || len(ys) != n || len(zs) != n {
		return nil, fmt.Errorf(
			"Catalog columns have unequal lengths %d, %d, %d, and %d.",
			len(ms), len(xs), len(ys), len(zs),
		)
	} else if n == 0 {
		return nil, fmt.Errorf("Catalog contains no particles.")
	}

	ps := make([]multipole.Particle, n)
	for i := range ps {
		ps[i].Mass = ms[i]
		ps[i].Pos[0], ps[i].Pos[1], ps[i].Pos[2] = xs[i], ys[i], zs[i]
	}
	return ps, nil
}

// LoadParticles returns the particles described by con inside a box of
// side boxSize. con must already have passed CheckInit.
func LoadParticles(con *ParticlesConfig, boxSize float64) ([]multipole.Particle, error) {
	switch con.Source {
	case UniformSource:
		return ic.Uniform(con.Count, boxSize, con.MaxMass, con.Seed)
	case HernquistSource:
		h := &ic.Hernquist{A: con.HernquistScale, M: con.HernquistMass}
		return h.Sample(con.Count, boxSize, con.Seed)
	case CatalogSource:
		return ReadCatalog(con.Input, con.Columns())
	}
	return nil, fmt.Errorf("Unrecognized particle source '%s'.", con.Source)
}
