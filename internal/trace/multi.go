package trace

// MultiTracer fans events out to several tracers. Its level is the most
// verbose of theirs; each tracer still filters by its own.
type MultiTracer struct {
	tracers []Tracer
	level   Level
}

func NewMultiTracer(tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{tracers: tracers}
	for _, t := range tracers {
		m.level = max(m.level, t.Level())
	}
	return m
}

func (t *MultiTracer) Emit(ev *Event) {
	for _, tr := range t.tracers {
		cp := *ev
		tr.Emit(&cp)
	}
}

func (t *MultiTracer) Flush() error { return t.each(Tracer.Flush) }

// Close closes the tracers in order and returns the first error.
func (t *MultiTracer) Close() error { return t.each(Tracer.Close) }

func (t *MultiTracer) each(fn func(Tracer) error) error {
	var first error
	for _, tr := range t.tracers {
		if err := fn(tr); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *MultiTracer) Level() Level { return t.level }
func (t *MultiTracer) Enabled() bool { return t.level > LevelOff }
