package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	// LevelOff disables tracing.
	LevelOff    Level = iota // no tracing
	LevelError               // only {@code} blocks left unformatted
	LevelPhase               // driver + file boundaries
	LevelDetail              // comment-level events
	LevelDebug               // everything including code blocks
)

// String returns the string representation of Level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelError:
		return "error"
	case LevelPhase:
		return "phase"
	case LevelDetail:
		return "detail"
	case LevelDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// ParseLevel converts a string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "off":
		return LevelOff, nil
	case "error":
		return LevelError, nil
	case "phase":
		return LevelPhase, nil
	case "detail":
		return LevelDetail, nil
	case "debug":
		return LevelDebug, nil
	default:
		return LevelOff, fmt.Errorf("invalid trace level: %q (expected: off|error|phase|detail|debug)", s)
	}
}

// ShouldEmit returns true if the given scope should emit at this level.
func (l Level) ShouldEmit(scope Scope) bool {
	switch l {
	case LevelOff:
		return false
	case LevelError:
		return scope == ScopeBlock // Accepts keeps only the failures
	case LevelPhase:
		return scope <= ScopeFile
	case LevelDetail:
		return scope <= ScopeComment
	case LevelDebug:
		return true
	}
	return false
}

// Accepts reports whether a tracer at level l records ev. Heartbeats pass
// at any enabled level.
func (l Level) Accepts(ev *Event) bool {
	switch {
	case l == LevelOff:
		return false
	case ev.Kind == KindHeartbeat:
		return true
	case l == LevelError:
		return ev.Kind == KindSpanEnd && ev.Outcome == OutcomeUnformatted
	}
	return l.ShouldEmit(ev.Scope)
}
