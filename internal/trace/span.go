package trace

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// NextSeq orders events across goroutines.
func NextSeq() uint64 { return seqCounter.Add(1) }

// NextSpanID never returns 0; 0 marks a span that was not started.
func NextSpanID() uint64 { return spanCounter.Add(1) }

// getGoroutineID parses "goroutine N [" from the stack header. Code
// blocks of one comment run on their own goroutines, so GID tells them
// apart in a trace.
func getGoroutineID() uint64 {
	var buf [64]byte
	head := buf[:runtime.Stack(buf[:], false)]
	head, ok := bytes.CutPrefix(head, []byte("goroutine "))
	if !ok {
		return 0
	}
	if i := bytes.IndexByte(head, ' '); i >= 0 {
		head = head[:i]
	}
	gid, err := strconv.ParseUint(string(head), 10, 64)
	if err != nil {
		return 0
	}
	return gid
}

// Span is one traced unit of work: the run, a file, a comment or a
// {@code} block. The zero-id span returned for filtered scopes ignores
// every call.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time

	extra   map[string]string
	parser  string
	outcome Outcome
}

// Begin emits the begin event of a new span under parent (0 for a root).
// Prefer Start, which takes the tracer and parent from a context.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return &Span{tracer: Nop}
	}
	s := &Span{
		tracer:  t,
		id:      NextSpanID(),
		parent:  parent,
		gid:     getGoroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Seq:      NextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
	}
}

// End emits the end event with everything recorded on the span and
// returns how long it was open.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Extra, ev.Parser, ev.Outcome = s.extra, s.parser, s.outcome
	s.tracer.Emit(ev)
	return now.Sub(s.started)
}

// WithExtra adds key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

// Block records how a code block span ended.
func (s *Span) Block(parser string, o Outcome) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	s.parser, s.outcome = parser, o
	return s
}

func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
