package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "Detail": LevelDetail, "debug": LevelDebug} {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelShouldEmit(t *testing.T) {
	cases := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelError, ScopeBlock, true},
		{LevelPhase, ScopeFile, true},
		{LevelPhase, ScopeComment, false},
		{LevelDetail, ScopeComment, true},
		{LevelDetail, ScopeBlock, false},
		{LevelDebug, ScopeBlock, true},
	}
	for _, c := range cases {
		if got := c.level.ShouldEmit(c.scope); got != c.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", c.level, c.scope, got, c.want)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)

	file := Begin(tr, ScopeFile, "Account.cls", 0)
	c := Begin(tr, ScopeComment, "comment", file.ID())
	// блоки на уровне detail не пишутся
	b := Begin(tr, ScopeBlock, "codeblock", c.ID())
	b.End("")
	c.WithExtra("tokens", "3").End("")
	file.End("ok")

	out := buf.String()
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "→ file:Account.cls") {
		t.Errorf("unexpected begin line %q", lines[0])
	}
	if !strings.Contains(lines[2], "comment:comment {tokens=3}") {
		t.Errorf("unexpected comment end line %q", lines[2])
	}
	if !strings.Contains(lines[3], "(ok)") {
		t.Errorf("unexpected file end line %q", lines[3])
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeBlock, "@42", 0).Block("anonymous", OutcomeFormatted).End("")

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected begin and end lines, got %q", buf.String())
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &got); err != nil {
		t.Fatalf("invalid json %q: %v", lines[1], err)
	}
	if got["kind"] != "end" || got["scope"] != "block" || got["parser"] != "anonymous" || got["outcome"] != "formatted" {
		t.Errorf("unexpected event %v", got)
	}
}

func TestBlockOutcomeText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	Begin(tr, ScopeBlock, "@7", 0).Block("", OutcomeCached).End("")
	if !strings.Contains(buf.String(), "block:@7 [cached]") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestLevelErrorKeepsUnformattedBlocks(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)
	Begin(tr, ScopeFile, "Account.cls", 0).End("")
	Begin(tr, ScopeBlock, "@1", 0).Block("apex", OutcomeFormatted).End("")
	Begin(tr, ScopeBlock, "@9", 0).Block("raw", OutcomeUnformatted).End("")

	out := strings.TrimSuffix(buf.String(), "\n")
	if strings.Count(out, "\n") != 0 || !strings.Contains(out, "block:@9 [unformatted via raw]") {
		t.Errorf("expected only the unformatted block end, got:\n%s", out)
	}
}

func TestStartParentsSpans(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	ctx, file := Start(ctx, ScopeFile, "Account.cls")
	_, block := Start(ctx, ScopeBlock, "@3")
	block.End("")
	file.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected 4 events, got %d", len(snap))
	}
	if snap[1].ParentID != file.ID() || snap[1].SpanID != block.ID() {
		t.Errorf("block begin = %+v, want parent %d", snap[1], file.ID())
	}
}

func TestStartSkipsFilteredScope(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	ctx, file := Start(ctx, ScopeFile, "Account.cls")
	inner, comment := Start(ctx, ScopeComment, "comment")
	if comment.ID() != 0 {
		t.Fatal("comment span must be off at phase level")
	}
	if parentID(inner) != file.ID() {
		t.Errorf("parent after filtered span = %d, want %d", parentID(inner), file.ID())
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		r.Emit(&Event{Kind: KindPoint, Scope: ScopeFile, Name: name})
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if strings.Join(names, "") != "cde" {
		t.Errorf("expected chronological cde, got %v", names)
	}
}

func TestMultiTracerFansOut(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(a, NewRingTracer(8, LevelPhase), b)
	if m.Level() != LevelDebug {
		t.Errorf("multi level = %v, want the most verbose", m.Level())
	}
	Begin(m, ScopeBlock, "x", 0)
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Errorf("expected one event in each ring, got %d and %d", len(a.Snapshot()), len(b.Snapshot()))
	}
}

func TestNopAndContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("expected Nop from empty context")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("expected tracer from context")
	}
	s := Begin(Nop, ScopeDriver, "x", 0)
	if d := s.End(""); d != 0 {
		t.Errorf("nop span duration %v", d)
	}
}

func TestRingDumpsOnlyAfterFailure(t *testing.T) {
	var buf bytes.Buffer
	r := NewRingTracer(8, LevelDebug).DumpTo(&buf, FormatText, true)
	Begin(r, ScopeBlock, "@1", 0).Block("anonymous", OutcomeFormatted).End("")
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("dumped without a failure:\n%s", buf.String())
	}

	Begin(r, ScopeBlock, "@2", 0).Block("raw", OutcomeUnformatted).End("")
	if err := r.Close(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "# last 4 trace events, 1 unformatted {@code} blocks\n") {
		t.Errorf("unexpected header in:\n%s", out)
	}
	if !strings.Contains(out, "block:@2 [unformatted via raw]") {
		t.Errorf("failing block missing from dump:\n%s", out)
	}
}

func TestModeBothStreamsAndDumps(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Level() != LevelDebug {
		t.Fatalf("level = %v, blocks must reach the ring", tr.Level())
	}
	ctx := WithTracer(context.Background(), tr)
	ctx, file := Start(ctx, ScopeFile, "Account.cls")
	_, block := Start(ctx, ScopeBlock, "@5")
	block.Block("raw", OutcomeUnformatted).End("")
	file.End("")
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	head, dump, ok := strings.Cut(out, "# last ")
	if !ok {
		t.Fatalf("no ring dump in:\n%s", out)
	}
	if strings.Contains(head, "block:") {
		t.Errorf("stream at phase level wrote block events:\n%s", head)
	}
	if !strings.Contains(dump, "block:@5 [unformatted via raw]") {
		t.Errorf("dump lacks the failing block:\n%s", dump)
	}
}

func TestHeartbeatNamesOldestBlock(t *testing.T) {
	r := NewRingTracer(16, LevelDebug)
	h := &Heartbeat{Tracer: r, open: make(map[uint64]openSpan)}
	start := time.Now()
	h.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeFile, SpanID: 1, Name: "Account.cls", Time: start})
	h.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeBlock, SpanID: 2, Name: "@40", Time: start})
	h.Emit(&Event{Kind: KindSpanBegin, Scope: ScopeBlock, SpanID: 3, Name: "@90", Time: start.Add(time.Second)})
	h.Emit(&Event{Kind: KindSpanEnd, Scope: ScopeBlock, SpanID: 3, Name: "@90"})

	ev := h.beat(1, start.Add(2*time.Second))
	if ev.Detail != "#1 block @40 open 2s" {
		t.Errorf("detail = %q", ev.Detail)
	}
	if ev.Extra["open"] != "2" {
		t.Errorf("open = %q", ev.Extra["open"])
	}
	if n := len(r.Snapshot()); n != 4 {
		t.Errorf("heartbeat forwarded %d events, want 4", n)
	}
}

func TestHeartbeatStop(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("heartbeat on a disabled tracer")
	}
	var nilBeat *Heartbeat
	nilBeat.Stop()

	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	h.Stop()
	h.Stop()
	n := len(r.Snapshot())
	if n == 0 || r.Snapshot()[0].Kind != KindHeartbeat {
		t.Fatalf("expected heartbeats, got %d events", n)
	}
	time.Sleep(10 * time.Millisecond)
	if len(r.Snapshot()) != n {
		t.Error("heartbeat kept beating after Stop")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Error("expected disabled tracer")
	}
}
