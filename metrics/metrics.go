/*package metrics records the size of Barnes-Hut trees and the work done by
force walks in a prometheus registry which can be written to a textfile. */
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/phil-mansfield/bhtree/force"
	"github.com/phil-mansfield/bhtree/octree"
)

// Interaction kinds used as the "kind" label of bhtree_interactions_total.
const (
	LeafKind = "leaf"
	CellKind = "cell"
)

// Recorder owns a private registry so several Recorders can coexist in one
// process.
type Recorder struct {
	Registry *prometheus.Registry

	Nodes        prometheus.Gauge
	Leaves       prometheus.Gauge
	Depth        prometheus.Gauge
	BuildSeconds prometheus.Gauge

	Interactions *prometheus.CounterVec
	Openings     prometheus.Counter
	Overlaps     prometheus.Counter
	Forces       prometheus.Counter
}

// NewRecorder returns a Recorder with every metric registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		Registry: reg,
		Nodes: f.NewGauge(prometheus.GaugeOpts{
			Name: "bhtree_nodes",
			Help: "Number of nodes in the most recently built tree",
		}),
		Leaves: f.NewGauge(prometheus.GaugeOpts{
			Name: "bhtree_leaves",
			Help: "Number of leaves in the most recently built tree",
		}),
		Depth: f.NewGauge(prometheus.GaugeOpts{
			Name: "bhtree_depth",
			Help: "Deepest level of the most recently built tree",
		}),
		BuildSeconds: f.NewGauge(prometheus.GaugeOpts{
			Name: "bhtree_build_seconds",
			Help: "Time taken to build and aggregate the most recent tree",
		}),
		Interactions: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bhtree_interactions_total",
				Help: "Number of accepted nodes during force walks",
			},
			[]string{"kind"}, // kind: leaf, cell
		),
		Openings: f.NewCounter(prometheus.CounterOpts{
			Name: "bhtree_openings_total",
			Help: "Number of internal nodes opened during force walks",
		}),
		Overlaps: f.NewCounter(prometheus.CounterOpts{
			Name: "bhtree_overlaps_total",
			Help: "Number of nodes skipped for coinciding with the target",
		}),
		Forces: f.NewCounter(prometheus.CounterOpts{
			Name: "bhtree_forces_total",
			Help: "Number of force evaluations",
		}),
	}
}

// ObserveTree sets the tree gauges.
func (r *Recorder) ObserveTree(s octree.Stats, build time.Duration) {
	r.Nodes.Set(float64(s.Nodes))
	r.Leaves.Set(float64(s.Leaves))
	r.Depth.Set(float64(s.MaxLevel))
	r.BuildSeconds.Set(build.Seconds())
}

// ObserveForces adds the work done by n force evaluations to the counters.
func (r *Recorder) ObserveForces(c force.Counts, n int) {
	r.Interactions.WithLabelValues(LeafKind).Add(float64(c.LeafInteractions))
	r.Interactions.WithLabelValues(CellKind).Add(float64(c.CellInteractions))
	r.Openings.Add(float64(c.Openings))
	r.Overlaps.Add(float64(c.Overlaps))
	r.Forces.Add(float64(n))
}

// WriteTextfile writes every metric to fname in the text exposition format.
func (r *Recorder) WriteTextfile(fname string) error {
	return prometheus.WriteToTextfile(fname, r.Registry)
}
