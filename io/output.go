package io

import (
	"bufio"
	"fmt"
	"os"

	"github.com/phil-mansfield/bhtree/geom"
	"github.com/phil-mansfield/bhtree/multipole"
)

// AccuracyRow is one line of an accuracy table.
type AccuracyRow struct {
	OpeningAngle        float64
	Mean, Median, P90   float64
	Max                 float64
	Interactions, Nodes int
}

// WriteForces writes one line per particle to fname: the particle's mass,
// position, acceleration, and acceleration magnitude.
func WriteForces(fname string, ps []multipole.Particle, acc []geom.Vec) error {
	if len(ps) != len(acc) {
		return fmt.Errorf(
			"Given %d particles but %d accelerations.", len(ps), len(acc),
		)
	}

	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# mass x y z ax ay az |a|")
	for i := range ps {
		p, a := &ps[i], &acc[i]
		fmt.Fprintf(
			w, "%.8g %.8g %.8g %.8g %.8g %.8g %.8g %.8g\n",
			p.Mass, p.Pos[0], p.Pos[1], p.Pos[2], a[0], a[1], a[2], a.Norm(),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// WriteAccuracy writes one line per row to fname.
func WriteAccuracy(fname string, rows []AccuracyRow) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# theta mean median p90 max interactions nodes")
	for _, r := range rows {
		fmt.Fprintf(
			w, "%.4g %.6g %.6g %.6g %.6g %d %d\n",
			r.OpeningAngle, r.Mean, r.Median, r.P90, r.Max,
			r.Interactions, r.Nodes,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}
