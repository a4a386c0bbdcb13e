// Package seq implements the `seq!` repetition macro:
//
//	seq!(N in 0..4 { fn f~N() -> u64 { N * 2 } })
//
// ParseInvocation reads the header, Splice substitutes one value of the bound
// variable into a stream, ExpandRepetitions expands `#( ... )*` blocks and
// Expand chooses between repetition mode and whole-body mode. Every pass is a
// pure function of its input.
package seq
