package io

import (
	"fmt"
	"math"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/bhtree"
	"github.com/phil-mansfield/bhtree/force"
)

const (
	ExampleForcesFile = `[BarnesHut]

#######################
# Required Parameters #
#######################

# Side length of the cube which contains every particle. The cube is centered
# on the origin.
BoxSize = 100

# Cells which are smaller than OpeningAngle times their distance to a particle
# are treated as a single mass. Smaller values are slower and more accurate.
# Zero gives the same result as direct summation.
OpeningAngle = 0.5

#######################
# Optional Parameters #
#######################

# Maximum depth of the tree. Particles which would need a deeper tree to be
# separated cause the run to fail. Default is 128.
# MaxDepth = 128

# Spline softening. Forces between particles closer than SofteningCutoff are
# softened with a kernel of scale SofteningLength. Leave unset for unsoftened
# forces.
# SofteningLength = 0.1
# SofteningCutoff = 0.28

[Particles]

# Source must be one of [ Uniform | Hernquist | Catalog ].
Source = Uniform

# Number of particles drawn for the Uniform and Hernquist sources.
Count = 10000
Seed = 1

# Uniform masses are drawn from [0, MaxMass).
MaxMass = 10

# The Hernquist source draws Count equal-mass particles from a profile with
# scale radius HernquistScale and total mass HernquistMass.
# HernquistScale = 5
# HernquistMass = 1e4

# The Catalog source reads a whitespace-separated text file with one particle
# per line. Columns are zero-indexed.
# Input = path/to/catalog.txt
# MassColumn = 0
# XColumn = 1
# YColumn = 2
# ZColumn = 3

[Output]

# File which accelerations will be written to, one particle per line.
Output = path/to/output.txt

#######################
# Optional Parameters #
#######################

# Prometheus textfile containing tree sizes and interaction counts.
# MetricsFile = bhtree.prom

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`

	ExampleAccuracyFile = `[BarnesHut]

# The [BarnesHut] and [Particles] sections are the same as for Forces. The
# OpeningAngle here is ignored in favor of the AccuracyAngle values below.
BoxSize = 100
OpeningAngle = 0.5

[Particles]

Source = Hernquist
Count = 2000
Seed = 1
HernquistScale = 5
HernquistMass = 1e4

[Output]

# A table of error statistics, one opening angle per line.
Output = path/to/accuracy.txt

# Each opening angle is compared against direct summation. Give one line per
# angle.
AccuracyAngle = 0.1
AccuracyAngle = 0.3
AccuracyAngle = 0.5
AccuracyAngle = 0.7
AccuracyAngle = 1.0

#######################
# Optional Parameters #
#######################

# Plot of the mean and 90th percentile errors against opening angle. Requires
# python and matplotlib.
# PlotFile = accuracy.png

# MetricsFile = bhtree.prom
# ProfileFile = prof.out
# LogFile = log.out`
)

// Particle sources.
const (
	UniformSource   = "Uniform"
	HernquistSource = "Hernquist"
	CatalogSource   = "Catalog"
)

type BarnesHutConfig struct {
	// Required
	BoxSize, OpeningAngle float64

	// Optional
	MaxDepth                         int
	SofteningLength, SofteningCutoff float64
}

func (con *BarnesHutConfig) ValidBoxSize() bool {
	return con.BoxSize > 0 && !math.IsInf(con.BoxSize, 0)
}
func (con *BarnesHutConfig) ValidOpeningAngle() bool {
	return con.OpeningAngle >= 0 && !math.IsInf(con.OpeningAngle, 0)
}
func (con *BarnesHutConfig) ValidMaxDepth() bool {
	return con.MaxDepth >= 0
}
func (con *BarnesHutConfig) ValidSofteningLength() bool {
	return con.SofteningLength > 0
}
func (con *BarnesHutConfig) ValidSofteningCutoff() bool {
	return con.SofteningCutoff > 0
}

// Softened returns true if the config asks for a softened kernel.
func (con *BarnesHutConfig) Softened() bool {
	return con.SofteningLength != 0 || con.SofteningCutoff != 0
}

// Params converts the section into solver parameters at the given opening
// angle.
func (con *BarnesHutConfig) Params(openingAngle float64) (*bhtree.Params, error) {
	p := &bhtree.Params{
		BoxSize:      con.BoxSize,
		OpeningAngle: openingAngle,
		MaxDepth:     con.MaxDepth,
	}
	if con.Softened() {
		k, err := force.NewSoftened(con.SofteningLength, con.SofteningCutoff)
		if err != nil {
			return nil, err
		}
		p.Kernel = k
	}
	return p, nil
}

func (con *BarnesHutConfig) CheckInit() error {
	if !con.ValidBoxSize() {
		return fmt.Errorf("Invalid/non-existent 'BoxSize' value, %g.", con.BoxSize)
	} else if !con.ValidOpeningAngle() {
		return fmt.Errorf("Invalid 'OpeningAngle' value, %g.", con.OpeningAngle)
	} else if !con.ValidMaxDepth() {
		return fmt.Errorf("Invalid 'MaxDepth' value, %d.", con.MaxDepth)
	}

	if con.Softened() {
		if !con.ValidSofteningLength() || !con.ValidSofteningCutoff() {
			return fmt.Errorf(
				"You must set both 'SofteningLength' and 'SofteningCutoff' " +
					"to positive values or neither.",
			)
		}
	}
	return nil
}

type ParticlesConfig struct {
	// Required
	Source string

	// Optional
	Count   int
	Seed    int64
	MaxMass float64

	HernquistScale, HernquistMass float64

	Input                                 string
	MassColumn, XColumn, YColumn, ZColumn int
}

func (con *ParticlesConfig) ValidSource() bool {
	switch con.Source {
	case UniformSource, HernquistSource, CatalogSource:
		return true
	}
	return false
}
func (con *ParticlesConfig) ValidCount() bool {
	return con.Count > 0
}
func (con *ParticlesConfig) ValidMaxMass() bool {
	return con.MaxMass > 0
}
func (con *ParticlesConfig) ValidHernquistScale() bool {
	return con.HernquistScale > 0
}
func (con *ParticlesConfig) ValidHernquistMass() bool {
	return con.HernquistMass > 0
}
func (con *ParticlesConfig) ValidInput() bool {
	return con.Input != ""
}

// ValidColumns returns true if all four catalog columns are non-negative
// and distinct.
func (con *ParticlesConfig) ValidColumns() bool {
	cols := con.Columns()
	for i := range cols {
		if cols[i] < 0 {
			return false
		}
		for j := 0; j < i; j++ {
			if cols[i] == cols[j] {
				return false
			}
		}
	}
	return true
}

// Columns returns the catalog columns in mass, x, y, z order.
func (con *ParticlesConfig) Columns() []int {
	return []int{con.MassColumn, con.XColumn, con.YColumn, con.ZColumn}
}

func (con *ParticlesConfig) CheckInit() error {
	if !con.ValidSource() {
		return fmt.Errorf(
			"Invalid/non-existent 'Source' value, '%s'. Must be one of "+
				"[ %s | %s | %s ].", con.Source,
			UniformSource, HernquistSource, CatalogSource,
		)
	}

	switch con.Source {
	case UniformSource:
		if !con.ValidCount() {
			return fmt.Errorf("Invalid/non-existent 'Count' value, %d.", con.Count)
		} else if !con.ValidMaxMass() {
			return fmt.Errorf("Invalid/non-existent 'MaxMass' value, %g.", con.MaxMass)
		}
	case HernquistSource:
		if !con.ValidCount() {
			return fmt.Errorf("Invalid/non-existent 'Count' value, %d.", con.Count)
		} else if !con.ValidHernquistScale() {
			return fmt.Errorf(
				"Invalid/non-existent 'HernquistScale' value, %g.",
				con.HernquistScale,
			)
		} else if !con.ValidHernquistMass() {
			return fmt.Errorf(
				"Invalid/non-existent 'HernquistMass' value, %g.",
				con.HernquistMass,
			)
		}
	case CatalogSource:
		if !con.ValidInput() {
			return fmt.Errorf("Invalid/non-existent 'Input' value.")
		} else if !con.ValidColumns() {
			return fmt.Errorf(
				"Catalog columns must be distinct and non-negative, but are "+
					"MassColumn = %d, XColumn = %d, YColumn = %d, ZColumn = %d.",
				con.MassColumn, con.XColumn, con.YColumn, con.ZColumn,
			)
		}
	}
	return nil
}

type OutputConfig struct {
	// Required
	Output string

	// Optional
	LogFile, ProfileFile, MetricsFile, PlotFile string
	AccuracyAngle                               []float64
}

func (con *OutputConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *OutputConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *OutputConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}
func (con *OutputConfig) ValidMetricsFile() bool {
	return con.MetricsFile != ""
}
func (con *OutputConfig) ValidPlotFile() bool {
	return con.PlotFile != ""
}
func (con *OutputConfig) ValidAccuracyAngle() bool {
	if len(con.AccuracyAngle) == 0 {
		return false
	}
	for _, theta := range con.AccuracyAngle {
		if !(theta >= 0) || math.IsInf(theta, 0) {
			return false
		}
	}
	return true
}

// Wrapper holds every section of a bhtree config file.
type Wrapper struct {
	BarnesHut BarnesHutConfig
	Particles ParticlesConfig
	Output    OutputConfig
}

func DefaultWrapper() *Wrapper {
	w := &Wrapper{}
	w.Particles.Seed = 1
	w.Particles.MaxMass = 1
	w.Particles.MassColumn = 0
	w.Particles.XColumn = 1
	w.Particles.YColumn = 2
	w.Particles.ZColumn = 3
	return w
}

// CheckInit validates the sections needed by the Forces mode.
func (w *Wrapper) CheckInit() error {
	if err := w.BarnesHut.CheckInit(); err != nil {
		return err
	} else if err := w.Particles.CheckInit(); err != nil {
		return err
	} else if !w.Output.ValidOutput() {
		return fmt.Errorf("Invalid/non-existent 'Output' value.")
	}
	return nil
}

// CheckAccuracy validates the sections needed by the Accuracy mode.
func (w *Wrapper) CheckAccuracy() error {
	if err := w.CheckInit(); err != nil {
		return err
	} else if !w.Output.ValidAccuracyAngle() {
		return fmt.Errorf(
			"Must give at least one non-negative, finite 'AccuracyAngle'.",
		)
	}
	return nil
}

// ReadConfig reads a config file on top of the defaults. It does not
// validate the result.
func ReadConfig(fname string) (*Wrapper, error) {
	w := DefaultWrapper()
	if err := gcfg.ReadFileInto(w, fname); err != nil {
		return nil, err
	}
	return w, nil
}

// ParseConfig is ReadConfig for config text held in memory.
func ParseConfig(text string) (*Wrapper, error) {
	w := DefaultWrapper()
	if err := gcfg.ReadStringInto(w, text); err != nil {
		return nil, err
	}
	return w, nil
}
