package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Byte classes for the ASCII fast path. Identifiers follow Go's rules so a
// spliced name like `f~N` always yields something the host language accepts.
const (
	classIdentStart uint8 = 1 << iota
	classDigit
	classHex
)

var byteClass = func() (t [utf8.RuneSelf]uint8) {
	for c := 'a'; c <= 'z'; c++ {
		t[c] |= classIdentStart
	}
	for c := 'A'; c <= 'Z'; c++ {
		t[c] |= classIdentStart
	}
	t['_'] |= classIdentStart
	for c := '0'; c <= '9'; c++ {
		t[c] |= classDigit | classHex
	}
	for _, c := range "abcdefABCDEF" {
		t[c] |= classHex
	}
	return t
}()

func hasClass(b byte, class uint8) bool {
	return b < utf8.RuneSelf && byteClass[b]&class != 0
}

func isIdentStartByte(b byte) bool    { return hasClass(b, classIdentStart) }
func isIdentContinueByte(b byte) bool { return hasClass(b, classIdentStart|classDigit) }
func isDec(b byte) bool               { return hasClass(b, classDigit) }
func isHex(b byte) bool               { return hasClass(b, classHex) }

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

// peekRune decodes the rune under the cursor; size is 0 at EOF.
func (lx *Lexer) peekRune() (r rune, size int) {
	rest := lx.cursor.Rest()
	switch {
	case len(rest) == 0:
		return utf8.RuneError, 0
	case rest[0] < utf8.RuneSelf:
		return rune(rest[0]), 1
	}
	return utf8.DecodeRune(rest)
}

func (lx *Lexer) bumpRune() {
	_, size := lx.peekRune()
	lx.cursor.Advance(size)
}

// isNumberAfterDot is true for `.5`, which is a float and not a Dot. `..5`
// stays a range because the second byte there is a dot.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}
