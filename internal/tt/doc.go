// Package tt models source as token trees: identifiers, literals, single
// character punctuation and delimited groups. It is the input and output
// currency of every function-like macro.
//
// Invariants:
//   - Trees are values. Rewrites build new slices and never mutate an input Stream.
//   - A multi-character operator such as `..=` is a run of Punct trees where
//     every tree but the last has Spacing Joint.
//   - A Group's Span covers its delimiters; Delimiter None groups have no
//     delimiters of their own.
//   - Break records that a line break preceded the tree in its source. It is
//     a printing hint only and never affects equality.
package tt
