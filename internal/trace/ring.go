package trace

import (
	"fmt"
	"io"
	"sync"
)

const defaultRingSize = 4096

// RingTracer keeps the most recent events in memory. With a sink set by
// DumpTo it writes them out on Close, either always or only when a code
// block was left unformatted during the run.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	head   int
	full   bool
	level  Level

	sink      io.Writer
	format    Format
	onFailure bool
	failed    int
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = defaultRingSize
	}
	return &RingTracer{events: make([]Event, capacity), level: level}
}

// DumpTo sets the writer Close dumps to. With onFailure the dump happens
// only if an unformatted block was recorded.
func (t *RingTracer) DumpTo(w io.Writer, format Format, onFailure bool) *RingTracer {
	t.sink, t.format, t.onFailure = w, format, onFailure
	return t
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Accepts(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if ev.Outcome == OutcomeUnformatted {
		t.failed++
	}
	t.events[t.head] = *ev
	t.head = (t.head + 1) % len(t.events)
	if t.head == 0 {
		t.full = true
	}
}

// Snapshot returns the stored events oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.full {
		return append([]Event(nil), t.events[:t.head]...)
	}
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.head:]...)
	return append(out, t.events[:t.head]...)
}

// Failures counts the unformatted code blocks seen so far.
func (t *RingTracer) Failures() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.failed
}

// Dump writes the stored events to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	if format == FormatText {
		if _, err := fmt.Fprintf(w, "# last %d trace events, %d unformatted {@code} blocks\n", len(events), t.Failures()); err != nil {
			return err
		}
	}
	for i := range events {
		if _, err := w.Write(FormatEvent(&events[i], format)); err != nil {
			return err
		}
	}
	return nil
}

func (t *RingTracer) Flush() error { return nil }

// Close dumps to the sink, if any, and closes it.
func (t *RingTracer) Close() error {
	if t.sink == nil || (t.onFailure && t.Failures() == 0) {
		return nil
	}
	if err := t.Dump(t.sink, t.format); err != nil {
		return err
	}
	return closeWriter(t.sink)
}

func (t *RingTracer) Level() Level { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
