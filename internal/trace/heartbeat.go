package trace

import (
	"fmt"
	"sync"
	"time"
)

// Heartbeat wraps a Tracer, watches which spans are still open and emits a
// heartbeat every interval naming the oldest open span of the deepest
// scope seen. A host formatter stuck on one {@code} block shows up as the
// same block growing older beat after beat.
type Heartbeat struct {
	Tracer

	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	once     sync.Once

	mu   sync.Mutex
	open map[uint64]openSpan
}

type openSpan struct {
	scope   Scope
	name    string
	started time.Time
}

// StartHeartbeat starts beating on tracer. It returns nil when tracing is
// off or interval is not positive; a nil *Heartbeat is safe to Stop.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{
		Tracer:   tracer,
		interval: interval,
		stopCh:   make(chan struct{}),
		open:     make(map[uint64]openSpan),
	}
	h.wg.Add(1)
	go h.run()
	return h
}

// Emit records span boundaries and forwards ev.
func (h *Heartbeat) Emit(ev *Event) {
	h.mu.Lock()
	switch ev.Kind {
	case KindSpanBegin:
		h.open[ev.SpanID] = openSpan{scope: ev.Scope, name: ev.Name, started: ev.Time}
	case KindSpanEnd:
		delete(h.open, ev.SpanID)
	}
	h.mu.Unlock()
	h.Tracer.Emit(ev)
}

func (h *Heartbeat) run() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case now := <-ticker.C:
			seq++
			h.Tracer.Emit(h.beat(seq, now))
		case <-h.stopCh:
			return
		}
	}
}

func (h *Heartbeat) beat(seq uint64, now time.Time) *Event {
	ev := &Event{
		Time:   now,
		Seq:    NextSeq(),
		Kind:   KindHeartbeat,
		Scope:  ScopeDriver,
		GID:    getGoroutineID(),
		Name:   "heartbeat",
		Detail: fmt.Sprintf("#%d", seq),
	}
	if sp, n, ok := h.stalled(); ok {
		ev.Detail += fmt.Sprintf(" %s %s open %s", sp.scope, sp.name, now.Sub(sp.started).Round(time.Millisecond))
		ev.Extra = map[string]string{"open": fmt.Sprint(n)}
	}
	return ev
}

// stalled returns the oldest open span of the deepest open scope and how
// many spans are open in total.
func (h *Heartbeat) stalled() (openSpan, int, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var (
		best  openSpan
		found bool
	)
	for _, sp := range h.open {
		if sp.scope == ScopeDriver {
			continue
		}
		if !found || sp.scope > best.scope || (sp.scope == best.scope && sp.started.Before(best.started)) {
			best, found = sp, true
		}
	}
	return best, len(h.open), found
}

// Stop ends the beat and waits for the goroutine. It does not close the
// wrapped tracer.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stopCh) })
	h.wg.Wait()
}
