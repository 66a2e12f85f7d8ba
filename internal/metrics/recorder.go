// Package metrics counts indicator activity with Prometheus collectors. A
// Recorder subscribes to an engine and can dump its registry in the text
// exposition format when the program exits.
package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/rileyhilliard/pbar/internal/indicator"
)

const namespace = "pbar"

// Recorder is an indicator.Observer backed by a private registry.
type Recorder struct {
	registry *prometheus.Registry

	cyclesStarted    prometheus.Counter
	cyclesFinished   prometheus.Counter
	finishing        *prometheus.CounterVec
	staleSettlements prometheus.Counter
	bindings         *prometheus.CounterVec
	settleErrors     prometheus.Counter
	percentage       prometheus.Gauge
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		cyclesStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_started_total",
			Help:      "Progress cycles started.",
		}),
		cyclesFinished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_finished_total",
			Help:      "Progress cycles that faded out and returned to idle.",
		}),
		finishing: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finishing_total",
			Help:      "Cycles completed, by the mode they were in.",
		}, []string{"mode"}),
		staleSettlements: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_settlements_total",
			Help:      "Sources that settled after being replaced or cancelled.",
		}),
		bindings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bindings_total",
			Help:      "Sources bound to the indicator, by kind.",
		}, []string{"kind"}),
		settleErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "settle_errors_total",
			Help:      "Live sources that settled with an error.",
		}),
		percentage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "percentage",
			Help:      "Last reported indicator percentage.",
		}),
	}

	r.registry.MustRegister(
		r.cyclesStarted,
		r.cyclesFinished,
		r.finishing,
		r.staleSettlements,
		r.bindings,
		r.settleErrors,
		r.percentage,
	)
	return r
}

// OnEvent implements indicator.Observer.
func (r *Recorder) OnEvent(ev indicator.Event) {
	switch ev.Kind {
	case indicator.EventStarted:
		r.cyclesStarted.Inc()
	case indicator.EventFinishing:
		r.finishing.WithLabelValues(ev.State.Mode.String()).Inc()
	case indicator.EventIdle:
		r.cyclesFinished.Inc()
	case indicator.EventBound:
		r.bindings.WithLabelValues(ev.Source.String()).Inc()
	case indicator.EventSettled:
		if ev.Err != nil {
			r.settleErrors.Inc()
		}
	case indicator.EventStaleSettlement:
		r.staleSettlements.Inc()
	}
	r.percentage.Set(ev.State.Percentage)
}

// WriteText writes every collected metric family to w in the Prometheus
// text format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
