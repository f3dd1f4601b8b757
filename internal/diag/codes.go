package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexTokenTooLong       Code = 1004
	LexBadDedent          Code = 1005
	LexTabError           Code = 1006
	LexBadContinuation    Code = 1007

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectExpression  Code = 2002
	SynExpectColon       Code = 2003
	SynExpectIdentifier  Code = 2004
	SynExpectIndent      Code = 2005
	SynExpectNewline     Code = 2006
	SynUnclosedDelimiter Code = 2007
	SynBadAssignTarget   Code = 2008
	SynExpectIn          Code = 2009
	SynBadStarExpr       Code = 2010
	SynExpectMatchCase   Code = 2011

	// Переписывание %-форматирования.
	// RwrSkip* — причины, по которым сайт остаётся как есть; rewrite молчит,
	// scan показывает их как info.
	RwrInfo            Code = 3000
	RwrSiteConvertible Code = 3001
	RwrSkipArity       Code = 3002
	RwrSkipVerb        Code = 3003
	RwrSkipFlags       Code = 3004
	RwrSkipStarWidth   Code = 3005
	RwrSkipMappingKey  Code = 3006
	RwrSkipLiteral     Code = 3007
	RwrSkipMultiline   Code = 3008
	RwrSkipArgText     Code = 3009
	RwrSkipStarredArg  Code = 3010
	RwrSkipBadSpec     Code = 3011
	RwrBadRange        Code = 3012

	// Ошибки I/O
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
	IOCacheError     Code = 4003

	// Observability
	ObsInfo    Code = 9000
	ObsTimings Code = 9001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:           "Unknown error",
		LexInfo:               "Lexical information",
		LexUnknownChar:        "Unknown character",
		LexUnterminatedString: "Unterminated string literal",
		LexBadNumber:          "Bad number literal",
		LexTokenTooLong:       "Token too long",
		LexBadDedent:          "Dedent does not match any outer indentation level",
		LexTabError:           "Inconsistent use of tabs and spaces in indentation",
		LexBadContinuation:    "Unexpected character after line continuation",
		SynInfo:               "Syntax information",
		SynUnexpectedToken:    "Unexpected token",
		SynExpectExpression:   "Expect expression",
		SynExpectColon:        "Expect colon",
		SynExpectIdentifier:   "Expect identifier",
		SynExpectIndent:       "Expect an indented block",
		SynExpectNewline:      "Expect end of line",
		SynUnclosedDelimiter:  "Unclosed delimiter",
		SynBadAssignTarget:    "Cannot assign to this expression",
		SynExpectIn:           "Missing 'in' in for statement",
		SynBadStarExpr:        "Starred expression is not allowed here",
		SynExpectMatchCase:    "Expect 'case' block in match statement",
		RwrInfo:               "Rewrite information",
		RwrSiteConvertible:    "Percent-format site is convertible",
		RwrSkipArity:          "Specifier count does not match argument count",
		RwrSkipVerb:           "Unsupported conversion type",
		RwrSkipFlags:          "Conversion flags are not supported",
		RwrSkipStarWidth:      "Dynamic width or precision is not supported",
		RwrSkipMappingKey:     "Mapping keys are not supported",
		RwrSkipLiteral:        "Literal cannot become an f-string",
		RwrSkipMultiline:      "Site spans multiple lines",
		RwrSkipArgText:        "Argument text cannot be embedded in an f-string",
		RwrSkipStarredArg:     "Starred argument is not supported",
		RwrSkipBadSpec:        "Malformed conversion specifier",
		RwrBadRange:           "Line range out of bounds",
		IOLoadFileError:       "I/O load file error",
		IOWriteFileError:      "I/O write file error",
		IOCacheError:          "Scan cache error",
		ObsInfo:               "Observability information",
		ObsTimings:            "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RWR%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 9000 && ic < 10000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
