// Package fuzztests holds fuzz harnesses for the front half of macrokit:
// source loading, lexing, tree building, the seq! expansion pass and the
// derive generators. They check for panics and runaway output on arbitrary
// input; none of them writes files.
package fuzztests
