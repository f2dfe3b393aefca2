// Package trace provides a tracing subsystem for the ApexDoc formatter.
//
// The trace package tracks the formatting run, each source file, each doc
// comment and each embedded code block, to help diagnose slow files and
// snippets that hang the host formatter.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	apexdoc fmt --trace=- --trace-level=detail src/classes
//
// # Architecture
//
// The package provides several tracer implementations:
//
//   - Nop: Zero-overhead no-op tracer when disabled
//   - StreamTracer: Immediate write to output (file/stderr)
//   - RingTracer: The last events, written on Close (in --trace-mode=both
//     only when a {@code} block was left unformatted)
//   - MultiTracer: Combines multiple tracers
//   - Heartbeat: Wraps a tracer and periodically names the oldest open
//     span, so a snippet the host formatter hangs on is easy to spot
//
// # Levels
//
// Tracing verbosity is controlled by levels:
//
//   - LevelOff: No tracing
//   - LevelError: Only {@code} blocks left unformatted
//   - LevelPhase: Driver and file boundaries
//   - LevelDetail: Comment-level events
//   - LevelDebug: Everything including code blocks
//
// # Scopes
//
// Events are categorized by scope:
//
//   - ScopeDriver: Top-level CLI operations
//   - ScopeFile: Per-file processing
//   - ScopeComment: One doc comment through the pipeline
//   - ScopeBlock: One {@code} block through the host formatter
//
// # Context Propagation
//
// Tracers are propagated through the pipeline via context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	ctx, span := trace.Start(ctx, trace.ScopeComment, "comment")
//	defer span.End("")
package trace
