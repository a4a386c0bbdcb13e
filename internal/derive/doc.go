// Package derive generates companion code for annotated Go struct types.
//
// A type opts in with a directive comment in its doc block:
//
//	//macrokit:derive Builder, CustomDebug
//	type Command struct { ... }
//
// Builder emits a CommandBuilder with chaining setters and a checked Build
// method. CustomDebug emits a GoString method whose per-field formatting can
// be overridden with a `debug:"..."` struct tag.
package derive
