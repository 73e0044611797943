// SPDX-License-Identifier: GPL-2.0-or-later

package sectormove

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Events            *prometheus.CounterVec
	BlockedTraces     prometheus.Counter
	QuadtreeSplits    prometheus.Counter
	QuadtreeCollapses prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "godoom",
			Subsystem: "sectormove",
			Name:      "events_total",
			Help:      "Sector move events by type and plane.",
		}, []string{"type", "plane"}),
		BlockedTraces: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godoom",
			Subsystem: "sectormove",
			Name:      "blocked_traces_total",
			Help:      "Traces stopped short by an entity.",
		}),
		QuadtreeSplits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godoom",
			Subsystem: "quadtree",
			Name:      "splits_total",
			Help:      "Quadtree leaves split into branches.",
		}),
		QuadtreeCollapses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "godoom",
			Subsystem: "quadtree",
			Name:      "collapses_total",
			Help:      "Quadtree branches collapsed into leaves.",
		}),
	}
}

// RegisterMetrics creates the counters and registers them with r
func RegisterMetrics(r prometheus.Registerer) (*Metrics, error) {
	m := NewMetrics()
	for _, c := range []prometheus.Collector{m.Events, m.BlockedTraces, m.QuadtreeSplits, m.QuadtreeCollapses} {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Split and Collapse let Metrics observe a quadtree
func (m *Metrics) Split()    { m.QuadtreeSplits.Inc() }
func (m *Metrics) Collapse() { m.QuadtreeCollapses.Inc() }

func (m *Metrics) event(ev SectorMoveEvent) {
	plane := "ceiling"
	if ev.Normal > 0 {
		plane = "floor"
	}
	m.Events.WithLabelValues(ev.Type.String(), plane).Inc()
}
