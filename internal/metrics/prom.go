package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records scheduling runs in Prometheus metrics.
type PromSink struct {
	solves   *prometheus.CounterVec
	duration *prometheus.HistogramVec
	clauses  *prometheus.GaugeVec
}

// NewPromSink registers solve metrics on the default Prometheus registerer.
func NewPromSink() (Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	solves := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "regatta_solves_total",
		Help: "Total number of scheduling runs by outcome",
	}, []string{"strategy", "backend", "status"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "regatta_solve_duration_seconds",
		Help:    "Time spent building and solving a schedule",
		Buckets: prometheus.DefBuckets,
	}, []string{"strategy", "backend"})
	clauses := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "regatta_model_clauses",
		Help: "Clauses of the last encoded scheduling model",
	}, []string{"strategy"})

	if err := reg.Register(solves); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solves = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(clauses); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			clauses = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{solves: solves, duration: duration, clauses: clauses}, nil
}

func (s *PromSink) RecordSolve(ev SolveEvent) error {
	s.solves.WithLabelValues(ev.Strategy, ev.Backend, ev.Status).Inc()
	s.duration.WithLabelValues(ev.Strategy, ev.Backend).Observe(ev.Duration.Seconds())
	s.clauses.WithLabelValues(ev.Strategy).Set(float64(ev.Clauses))
	return nil
}
