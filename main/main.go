package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/bhtree"
	"github.com/phil-mansfield/bhtree/accuracy"
	"github.com/phil-mansfield/bhtree/direct"
	"github.com/phil-mansfield/bhtree/io"
	"github.com/phil-mansfield/bhtree/metrics"
	"github.com/phil-mansfield/bhtree/multipole"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil { log.Fatal(err.Error()) }
	}

	if fg.log != nil {
		log.SetOutput(os.Stderr)
		err := fg.log.Close()
		if err != nil { log.Fatal(err.Error()) }
	}
}

func main() {
	var forcesStr, accuracyStr, exampleConfig string
	vars := map[string]*string{
		"Forces":        &forcesStr,
		"Accuracy":      &accuracyStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&forcesStr, "Forces", "",
		"Configuration file for [Forces] mode, which writes the Barnes-Hut "+
			"acceleration of every particle.",
	)
	flag.StringVar(
		&accuracyStr, "Accuracy", "",
		"Configuration file for [Accuracy] mode, which compares Barnes-Hut "+
			"accelerations against direct summation at several opening angles.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. Accepted arguments are 'Forces' and "+
			"'Accuracy'.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user gave
	// incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil { log.Fatal(err.Error()) }

	switch modeName {
	case "Forces":
		con, err := io.ReadConfig(forcesStr)
		if err != nil { log.Fatal(err.Error()) }
		if err := con.CheckInit(); err != nil { log.Fatal(err.Error()) }
		forcesMain(con)

	case "Accuracy":
		con, err := io.ReadConfig(accuracyStr)
		if err != nil { log.Fatal(err.Error()) }
		if err := con.CheckAccuracy(); err != nil { log.Fatal(err.Error()) }
		accuracyMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Forces":
			fmt.Println(io.ExampleForcesFile)
		case "Accuracy":
			fmt.Println(io.ExampleAccuracyFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Forces' and 'Accuracy'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive error
// if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" { setNames = append(setNames, name) }
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but bhtree "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO opens the log and profile files requested by con and loads the
// particles.
func setupIO(con *io.Wrapper) (ps []multipole.Particle, fg *FileGroup) {
	var err error
	fg = new(FileGroup)

	// Set up log file.
	if con.Output.ValidLogFile() {
		fg.log, err = os.Create(con.Output.LogFile)
		if err != nil { log.Fatal(err.Error()) }
		log.SetOutput(fg.log)
	}

	// Set up profile file.
	if con.Output.ValidProfileFile() {
		fg.prof, err = os.Create(con.Output.ProfileFile)
		if err != nil { log.Fatal(err.Error()) }
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil { log.Fatal(err.Error()) }
	}

	ps, err = io.LoadParticles(&con.Particles, con.BarnesHut.BoxSize)
	if err != nil { log.Fatal(err.Error()) }
	log.WithFields(log.Fields{
		"source":    con.Particles.Source,
		"particles": len(ps),
	}).Info("Loaded particles.")

	return ps, fg
}

// buildSolver builds a tree at the given opening angle and records its shape.
func buildSolver(
	con *io.Wrapper, theta float64, ps []multipole.Particle, rec *metrics.Recorder,
) *bhtree.BarnesHut {
	p, err := con.BarnesHut.Params(theta)
	if err != nil { log.Fatal(err.Error()) }

	t0 := time.Now()
	bh, err := bhtree.NewFromParams(p, ps)
	if err != nil { log.Fatal(err.Error()) }
	dt := time.Since(t0)

	stats := bh.Tree.Stats()
	rec.ObserveTree(stats, dt)
	log.WithFields(log.Fields{
		"theta":  theta,
		"nodes":  stats.Nodes,
		"leaves": stats.Leaves,
		"depth":  stats.MaxLevel,
		"build":  dt,
	}).Info("Built tree.")

	return bh
}

func forcesMain(con *io.Wrapper) {
	ps, fg := setupIO(con)
	defer fg.Close()
	rec := metrics.NewRecorder()

	bh := buildSolver(con, con.BarnesHut.OpeningAngle, ps, rec)

	t0 := time.Now()
	acc, counts, err := bh.ForcesCounted()
	if err != nil { log.Fatal(err.Error()) }
	rec.ObserveForces(counts, len(ps))
	mags := bhtree.Magnitudes(acc)
	log.WithFields(log.Fields{
		"interactions": counts.Interactions(),
		"openings":     counts.Openings,
		"maxAccel":     floats.Max(mags),
		"elapsed":      time.Since(t0),
	}).Info("Computed forces.")

	if err := io.WriteForces(con.Output.Output, ps, acc); err != nil {
		log.Fatal(err.Error())
	}
	log.WithField("file", con.Output.Output).Info("Wrote forces.")

	writeMetrics(con, rec)
}

func accuracyMain(con *io.Wrapper) {
	ps, fg := setupIO(con)
	defer fg.Close()
	rec := metrics.NewRecorder()

	// Direct summation uses the same force law as the trees.
	p, err := con.BarnesHut.Params(0)
	if err != nil { log.Fatal(err.Error()) }

	t0 := time.Now()
	exact, err := direct.New(ps, p.Kernel).Forces()
	if err != nil { log.Fatal(err.Error()) }
	log.WithField("elapsed", time.Since(t0)).Info("Computed direct forces.")

	rows := make([]io.AccuracyRow, len(con.Output.AccuracyAngle))
	for i, theta := range con.Output.AccuracyAngle {
		bh := buildSolver(con, theta, ps, rec)
		approx, counts, err := bh.ForcesCounted()
		if err != nil { log.Fatal(err.Error()) }
		rec.ObserveForces(counts, len(ps))

		rep, err := accuracy.Compare(approx, exact)
		if err != nil { log.Fatal(err.Error()) }

		rows[i] = io.AccuracyRow{
			OpeningAngle: theta,
			Mean:         rep.Mean,
			Median:       rep.Median,
			P90:          rep.P90,
			Max:          rep.Max,
			Interactions: counts.Interactions(),
			Nodes:        bh.Tree.Stats().Nodes,
		}
		log.WithFields(log.Fields{
			"theta":         theta,
			"mean":          rep.Mean,
			"p90":           rep.P90,
			"magnitudeMean": rep.MagnitudeMean,
		}).Info("Compared against direct summation.")
	}

	if err := io.WriteAccuracy(con.Output.Output, rows); err != nil {
		log.Fatal(err.Error())
	}
	log.WithField("file", con.Output.Output).Info("Wrote accuracy table.")

	if con.Output.ValidPlotFile() {
		plotAccuracy(rows, con.Output.PlotFile)
		log.WithField("file", con.Output.PlotFile).Info("Wrote accuracy plot.")
	}

	writeMetrics(con, rec)
}

func writeMetrics(con *io.Wrapper, rec *metrics.Recorder) {
	if !con.Output.ValidMetricsFile() { return }
	if err := rec.WriteTextfile(con.Output.MetricsFile); err != nil {
		log.Fatal(err.Error())
	}
}

// plotAccuracy plots the mean and 90th percentile fractional errors against
// opening angle.
func plotAccuracy(rows []io.AccuracyRow, fname string) {
	thetas := make([]float64, len(rows))
	means := make([]float64, len(rows))
	p90s := make([]float64, len(rows))
	for i := range rows {
		thetas[i] = rows[i].OpeningAngle
		means[i], p90s[i] = rows[i].Mean, rows[i].P90
	}

	plt.Figure()
	plt.Plot(thetas, means, "o-", plt.LW(2), plt.C("DarkSlateBlue"))
	plt.Plot(thetas, p90s, "s--", plt.LW(2), plt.C("DarkTurquoise"))

	plt.Title("Barnes-Hut error: mean (solid), 90th percentile (dashed)")
	plt.XLabel(`$\theta$`, plt.FontSize(16))
	plt.YLabel(`$|\delta a| / |a|$`, plt.FontSize(16))
	plt.YScale("log")

	plt.Grid(plt.Axis("y"))
	plt.SaveFig(fname)
	plt.Execute()
}
