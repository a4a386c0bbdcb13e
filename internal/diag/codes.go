package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Token tree and invocation syntax
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynUnmatchedDelim    Code = 2003

	SynExpectIdent     Code = 2101
	SynExpectIn        Code = 2102
	SynExpectIntLit    Code = 2103
	SynExpectRangeOp   Code = 2104
	SynExpectBody      Code = 2105
	SynTrailingTokens  Code = 2106
	SynBadIntLit       Code = 2107
	SynMacroNeedsGroup Code = 2108

	// Sequence expansion
	SeqInfo             Code = 3000
	SeqRangeOverflow    Code = 3001
	SeqRangeTooLarge    Code = 3002
	SeqNestingTooDeep   Code = 3003
	SeqIncompleteSplice Code = 3004
	SeqReversedRange    Code = 3005
	SeqUnusedVariable   Code = 3006

	// Derive generators
	DrvInfo             Code = 4000
	DrvUnsupportedShape Code = 4001
	DrvEachNotSlice     Code = 4002
	DrvBadBuilderAttr   Code = 4003
	DrvDuplicateMethod  Code = 4004
	DrvUnknownDerive    Code = 4005
	DrvBadDebugFormat   Code = 4006
	DrvGoParseError     Code = 4007

	// IO
	IOInfo         Code = 5000
	IOLoadFailed   Code = 5001
	IOWriteFailed  Code = 5002
	IOFormatFailed Code = 5003

	// Project configuration
	PrjInfo          Code = 6000
	PrjBadConfig     Code = 6001
	PrjUnknownOption Code = 6002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Malformed numeric literal",
		LexTokenTooLong:             "Token exceeds maximum length",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynUnmatchedDelim:           "Unmatched closing delimiter",
		SynExpectIdent:              "Expected loop variable identifier",
		SynExpectIn:                 "Expected `in`",
		SynExpectIntLit:             "Expected integer literal",
		SynExpectRangeOp:            "Expected `..` or `..=`",
		SynExpectBody:               "Expected brace-delimited body",
		SynTrailingTokens:           "Unexpected tokens after body",
		SynBadIntLit:                "Invalid integer literal",
		SynMacroNeedsGroup:          "Macro call needs a delimited argument",
		SeqInfo:                     "Sequence information",
		SeqRangeOverflow:            "Range bound overflows",
		SeqRangeTooLarge:            "Range has too many iterations",
		SeqNestingTooDeep:           "Body nesting is too deep",
		SeqIncompleteSplice:         "Incomplete identifier splice",
		SeqReversedRange:            "Range start is greater than end",
		SeqUnusedVariable:           "Loop variable is never used",
		DrvInfo:                     "Derive information",
		DrvUnsupportedShape:         "Unsupported type shape for derive",
		DrvEachNotSlice:             "`each` requires a slice field",
		DrvBadBuilderAttr:           "Malformed builder attribute",
		DrvDuplicateMethod:          "Generated method name collides",
		DrvUnknownDerive:            "Unknown derive name",
		DrvBadDebugFormat:           "Malformed debug format",
		DrvGoParseError:             "Go source does not parse",
		IOInfo:                      "IO information",
		IOLoadFailed:                "Failed to load file",
		IOWriteFailed:               "Failed to write output",
		IOFormatFailed:              "Generated Go does not format",
		PrjInfo:                     "Project information",
		PrjBadConfig:                "Malformed project configuration",
		PrjUnknownOption:            "Unknown configuration option",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEQ%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("DRV%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
