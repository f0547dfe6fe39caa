package metrics

// MultiSink fans solve events out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordSolve forwards the event to all sinks, returning the first error encountered.
func (m *MultiSink) RecordSolve(ev SolveEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(ev); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the sinks holding connections, including those behind a MultiSink.
func Close(sink Sink) {
	switch s := sink.(type) {
	case *MultiSink:
		for _, inner := range s.Sinks {
			Close(inner)
		}
	case interface{ Close() }:
		s.Close()
	}
}
