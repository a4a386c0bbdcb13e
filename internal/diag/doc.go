// Package diag defines the diagnostic model shared by the lexer, the token
// tree builder, the macro engines and the driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity, a tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code, a compact numeric identifier (see codes.go) with a stable ID such
//     as SYN2103 or SEQ3001.
//   - Message, short human oriented text.
//   - Primary, the source.Span pointing at the issue.
//   - Notes, optional secondary spans.
//   - Fixes, optional text edits.
//
// Code ranges: 1xxx lexer, 2xxx token tree and invocation syntax, 3xxx
// sequence expansion, 4xxx derive generators, 5xxx IO, 6xxx project config.
//
// # Emitting diagnostics
//
// Producers take a Reporter and either call Report directly or build one with
// ReportError/ReportWarning, chain WithNote/WithFix, and finish with Emit.
// BagReporter stores into a Bag, which supports sorting, dedup and filtering.
// Package diag never formats for humans; rendering lives in internal/diagfmt.
package diag
