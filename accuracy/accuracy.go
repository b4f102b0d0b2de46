/*package accuracy compares the accelerations of an approximate solver
against a reference solver. */
package accuracy

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/phil-mansfield/bhtree/geom"
)

// Report summarizes the fractional errors of one approximate solution.
type Report struct {
	// Errors are the per-particle fractional errors |a - e| / |e|, in
	// particle order, skipping particles with a zero reference
	// acceleration. Index i therefore need not be particle i.
	Errors []float64
	// MagnitudeErrors are the per-particle fractional errors of the
	// acceleration magnitudes, ||a| - |e|| / |e|.
	MagnitudeErrors []float64

	Mean, Median, P90, Max float64
	MagnitudeMean, MagnitudeP90 float64
}

// Compare computes the fractional errors of approx relative to exact. The
// two slices must be aligned.
func Compare(approx, exact []geom.Vec) (*Report, error) {
	if len(approx) != len(exact) {
		return nil, fmt.Errorf(
			"Cannot compare %d accelerations against %d.",
			len(approx), len(exact),
		)
	}

	rep := &Report{}
	for i := range exact {
		norm := exact[i].Norm()
		if norm == 0 {
			continue
		}
		diff := approx[i].Sub(&exact[i])
		rep.Errors = append(rep.Errors, diff.Norm()/norm)
		rep.MagnitudeErrors = append(
			rep.MagnitudeErrors, math.Abs(approx[i].Norm()-norm)/norm,
		)
	}

	if len(rep.Errors) == 0 {
		return nil, fmt.Errorf("All reference accelerations are zero.")
	}

	sorted := sortedCopy(rep.Errors)
	rep.Mean = stat.Mean(sorted, nil)
	rep.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	rep.P90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	rep.Max = floats.Max(sorted)

	sorted = sortedCopy(rep.MagnitudeErrors)
	rep.MagnitudeMean = stat.Mean(sorted, nil)
	rep.MagnitudeP90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)

	return rep, nil
}

func (rep *Report) String() string {
	return fmt.Sprintf(
		"mean %.3g%%, median %.3g%%, 90th percentile %.3g%%, max %.3g%%",
		100*rep.Mean, 100*rep.Median, 100*rep.P90, 100*rep.Max,
	)
}

func sortedCopy(xs []float64) []float64 {
	out := make([]float64, len(xs))
	copy(out, xs)
	sort.Float64s(out)
	return out
}
