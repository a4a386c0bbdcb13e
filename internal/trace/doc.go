// Package trace records what a macrokit run spends its time on.
//
// Events form nested spans: one driver span per CLI command, pass spans for
// lexing, expansion and printing, and file spans for each input. A tracer is
// chosen once per run and travels through the pipeline in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "expand", parent)
//	defer span.End("")
//
// Levels select how much is recorded:
//
//   - off: nothing
//   - error: nothing while running; the ring buffer is dumped on failure
//   - phase: driver and pass spans
//   - detail: plus one span per file
//   - debug: plus one span per macro call
//
// Every event carries the run id so traces from parallel runs written to one
// sink can be told apart.
package trace
