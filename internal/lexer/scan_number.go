package lexer

import (
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

// scanNumber accepts 0, 123, 1_000, 0b..., 0o..., 0x..., 1.0, .5, 1e-3, 1.0e+10.
// A trailing identifier suffix (42u8, 1.5f32) stays part of the literal so
// consumers can reject it with a precise span.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		// ".digits", guaranteed by isNumberAfterDot
		lx.cursor.Bump()
		kind = token.FloatLit
		lx.eatDigits(isDec)
		if !lx.scanExponent() {
			return lx.badNumber(start, "expected digit after exponent")
		}
		return lx.finishNumber(start, kind)
	}

	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		var digit func(byte) bool
		switch lx.cursor.Peek() {
		case 'b', 'B':
			digit = func(b byte) bool { return b == '0' || b == '1' }
		case 'o', 'O':
			digit = func(b byte) bool { return b >= '0' && b <= '7' }
		case 'x', 'X':
			digit = isHex
		}
		if digit != nil {
			lx.cursor.Bump()
			if !lx.eatDigits(digit) {
				return lx.badNumber(start, "expected digits after base prefix")
			}
			return lx.finishNumber(start, kind)
		}
	}

	lx.eatDigits(isDec)

	// fraction, but not the range operators `..` / `..=` and not `1.method`
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' {
		if b1 != '.' && !isIdentStartByte(b1) {
			lx.cursor.Bump()
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
	} else if lx.cursor.Peek() == '.' {
		// "1." at the very end of input
		lx.cursor.Bump()
		kind = token.FloatLit
	}

	mark := lx.cursor.Mark()
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		if !lx.scanExponent() {
			// "1else" style: the e belongs to a suffix, not an exponent
			lx.cursor.Reset(mark)
		} else {
			kind = token.FloatLit
		}
	}
	return lx.finishNumber(start, kind)
}

// eatDigits consumes digits accepted by digit plus '_' separators.
// It reports whether at least one digit was consumed.
func (lx *Lexer) eatDigits(digit func(byte) bool) bool {
	seen := false
	for {
		b := lx.cursor.Peek()
		switch {
		case digit(b):
			seen = true
		case b == '_':
		default:
			return seen
		}
		lx.cursor.Bump()
	}
}

// scanExponent consumes [eE][+-]?digits when present.
func (lx *Lexer) scanExponent() bool {
	if lx.cursor.Peek() != 'e' && lx.cursor.Peek() != 'E' {
		return true
	}
	lx.cursor.Bump()
	if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
		lx.cursor.Bump()
	}
	return lx.eatDigits(isDec)
}

func (lx *Lexer) finishNumber(start Mark, kind token.Kind) token.Token {
	// suffix such as u8, i64, f32
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) badNumber(start Mark, msg string) token.Token {
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
