// Package trace provides the structured event log of diagdeck.
//
// # Usage
//
//	diagdeck group --trace=- --trace-level=detail reports/*.json
//
// # Tracers
//
//   - Nop: zero-overhead tracer when disabled
//   - StreamTracer: writes every event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events for crash dumps
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase emits driver-level spans (command, load, render). LevelDetail
// adds per-file spans. LevelDebug adds per-message events.
//
// Tracers travel through context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeLoad, "load", 0)
//	defer span.End("")
package trace
