package lexer

import (
	"github.com/elk-cloner/proc-macro-workshop/internal/diag"
	"github.com/elk-cloner/proc-macro-workshop/internal/token"
)

// multiPuncts lists every punct longer than one byte, longest first, so a
// range `..=` is never split into `..` and `=`.
var multiPuncts = []struct {
	text string
	kind token.Kind
}{
	{"..=", token.DotDotEq},
	{"...", token.DotDotDot},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"&^=", token.AndNotAssign},
	{"..", token.DotDot},
	{"::", token.ColonColon},
	{":=", token.ColonAssign},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"<-", token.LArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"&^", token.AndNot},
	{"++", token.Inc},
	{"--", token.Dec},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

// scanOperatorOrPunct matches the longest punct at the cursor.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	for _, p := range multiPuncts {
		if lx.cursor.HasPrefix(p.text) {
			lx.cursor.Advance(len(p.text))
			return emit(p.kind)
		}
	}

	if k, ok := singleCharKinds[lx.cursor.Peek()]; ok {
		lx.cursor.Bump()
		return emit(k)
	}

	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

var singleCharKinds = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	'?': token.Question,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
	'#': token.Hash,
	'~': token.Tilde,
	'$': token.Dollar,
}
