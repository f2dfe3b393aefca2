package diag

import (
	"sync"

	"apexdoc/internal/source"
)

// Reporter is the minimal contract for receiving diagnostics from a phase.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter writes into a *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(&Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// SyncReporter serializes calls to an underlying reporter. Code blocks inside
// one comment may be formatted concurrently and report through it.
type SyncReporter struct {
	mu   sync.Mutex
	Next Reporter
}

func (r *SyncReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.Next == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Next.Report(code, sev, primary, msg, notes)
}
