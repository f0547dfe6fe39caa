package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config defines settings for metrics sinks.
type Config struct {
	// Prometheus registers solve metrics on the default registry, served on /metrics by the API.
	Prometheus bool         `json:"prometheus"`
	Influx     InfluxConfig `json:"influx"`
}

// InfluxConfig points to an InfluxDB v2 bucket. An empty URL disables the sink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// SolveEvent describes one scheduling run.
type SolveEvent struct {
	RunID     string
	Strategy  string
	Backend   string
	Status    string
	Heats     int
	Boats     int
	Variables uint64
	Clauses   uint64
	Duration  time.Duration
	Time      time.Time
}

// Sink records scheduling runs for observability purposes.
type Sink interface {
	RecordSolve(ev SolveEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSolve(SolveEvent) error { return nil }

// NewSink creates the sinks enabled in the configuration, registering Prometheus collectors on reg.
func NewSink(cfg Config, reg prometheus.Registerer) (Sink, error) {
	sinks := make([]Sink, 0, 2)
	if cfg.Prometheus {
		sink, err := NewPromSinkWithRegistry(reg)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.Influx.URL != "" {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg.Influx))
	}

	switch len(sinks) {
	case 0:
		return NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
