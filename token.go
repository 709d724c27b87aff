package brio

import (
	"fmt"
	"sort"
)

const (
	EOF rune = -(iota + 1)
	EOL
	Keyword
	Ident
	Text
	Number
	Float
	Boolean
	Invalid
	Add
	Sub
	Mul
	Div
	Mod
	Assign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Lparen
	Rparen
	Lbrace
	Rbrace
	Lsquare
	Rsquare
	Comma
	Colon
)

// sorted for lookup
var keywords = []string{
	"break",
	"case",
	"continue",
	"default",
	"else",
	"false",
	"func",
	"if",
	"input",
	"let",
	"print",
	"return",
	"switch",
	"true",
	"while",
}

func isKeyword(str string) bool {
	i := sort.SearchStrings(keywords, str)
	return i < len(keywords) && keywords[i] == str
}

type Position struct {
	Line   int
	Column int
}

type Token struct {
	Literal string
	Type    rune
	Int     int64
	Real    float64
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case EOL:
		return "<eol>"
	case Add:
		return "<add>"
	case Sub:
		return "<sub>"
	case Mul:
		return "<mul>"
	case Div:
		return "<div>"
	case Mod:
		return "<mod>"
	case Assign:
		return "<assign>"
	case Eq:
		return "<eq>"
	case Ne:
		return "<ne>"
	case Lt:
		return "<lt>"
	case Le:
		return "<le>"
	case Gt:
		return "<gt>"
	case Ge:
		return "<ge>"
	case And:
		return "<and>"
	case Or:
		return "<or>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Lbrace:
		return "<lbrace>"
	case Rbrace:
		return "<rbrace>"
	case Lsquare:
		return "<lsquare>"
	case Rsquare:
		return "<rsquare>"
	case Comma:
		return "<comma>"
	case Colon:
		return "<colon>"
	case Keyword:
		prefix = "keyword"
	case Ident:
		prefix = "identifier"
	case Text:
		prefix = "string"
	case Number:
		prefix = "number"
	case Float:
		prefix = "float"
	case Boolean:
		prefix = "boolean"
	case Invalid:
		prefix = "invalid"
	default:
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
