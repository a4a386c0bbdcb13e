// Package expand finds function-like macro calls in a file's token trees and
// replaces each call with its expansion.
//
// A call is `<name> ! <group>` where name is one of the configured macros and
// group uses any delimiter. Calls are found at every nesting depth, except
// inside the arguments of another call and inside expansion output.
package expand
