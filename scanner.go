package brio

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

type cursor struct {
	char rune
	curr int
	next int
	Position
}

type Scanner struct {
	input []byte
	cursor

	str bytes.Buffer
}

func Scan(r io.Reader) *Scanner {
	buf, _ := io.ReadAll(r)
	buf, _ = bytes.CutPrefix(buf, []byte{0xef, 0xbb, 0xbf})
	s := Scanner{
		input: buf,
	}
	s.cursor.Line = 1
	s.read()
	return &s
}

func ScanString(str string) *Scanner {
	return Scan(strings.NewReader(str))
}

func (s *Scanner) Scan() Token {
	defer s.reset()

	s.skipBlank()

	var tok Token
	tok.Position = s.cursor.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}

	switch {
	case isNL(s.char):
		s.scanEOL(&tok)
	case isQuote(s.char):
		s.scanText(&tok)
	case isDigit(s.char):
		s.scanNumber(&tok)
	case isLetter(s.char):
		s.scanIdent(&tok)
	default:
		s.scanPunct(&tok)
	}
	return tok
}

func (s *Scanner) scanEOL(tok *Token) {
	tok.Type = EOL
	tok.Literal = `\n`
	s.read()
}

func (s *Scanner) scanText(tok *Token) {
	quote := s.char
	s.read()
	for !s.done() && s.char != quote {
		if s.char == backslash {
			s.read()
			if s.done() {
				break
			}
		}
		s.write()
		s.read()
	}
	if s.char == quote {
		s.read()
	}
	tok.Type = Text
	tok.Literal = s.literal()
}

func (s *Scanner) scanNumber(tok *Token) {
	for !s.done() && isDigit(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Number
	if s.char == dot && isDigit(s.peek()) {
		tok.Type = Float
		s.write()
		s.read()
		for !s.done() && isDigit(s.char) {
			s.write()
			s.read()
		}
	}
	tok.Literal = s.literal()
	if tok.Type == Float {
		tok.Real, _ = strconv.ParseFloat(tok.Literal, 64)
	} else {
		tok.Int, _ = strconv.ParseInt(tok.Literal, 10, 64)
	}
}

func (s *Scanner) scanIdent(tok *Token) {
	for !s.done() && isAlpha(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
	if tok.Literal == "true" || tok.Literal == "false" {
		tok.Type = Boolean
		return
	}
	if isKeyword(tok.Literal) {
		tok.Type = Keyword
	}
}

func (s *Scanner) scanPunct(tok *Token) {
	switch s.char {
	case plus:
		tok.Type = Add
	case minus:
		tok.Type = Sub
	case star:
		tok.Type = Mul
	case slash:
		tok.Type = Div
	case percent:
		tok.Type = Mod
	case comma:
		tok.Type = Comma
	case colon:
		tok.Type = Colon
	case lparen:
		tok.Type = Lparen
	case rparen:
		tok.Type = Rparen
	case lbrace:
		tok.Type = Lbrace
	case rbrace:
		tok.Type = Rbrace
	case lsquare:
		tok.Type = Lsquare
	case rsquare:
		tok.Type = Rsquare
	case equal:
		tok.Type = Assign
		if s.peek() == equal {
			s.write()
			s.read()
			tok.Type = Eq
		}
	case bang:
		tok.Type = Invalid
		if s.peek() == equal {
			s.write()
			s.read()
			tok.Type = Ne
		}
	case langle:
		tok.Type = Lt
		if s.peek() == equal {
			s.write()
			s.read()
			tok.Type = Le
		}
	case rangle:
		tok.Type = Gt
		if s.peek() == equal {
			s.write()
			s.read()
			tok.Type = Ge
		}
	case ampersand:
		tok.Type = Invalid
		if s.peek() == ampersand {
			s.write()
			s.read()
			tok.Type = And
		}
	case pipe:
		tok.Type = Invalid
		if s.peek() == pipe {
			s.write()
			s.read()
			tok.Type = Or
		}
	default:
		tok.Type = Invalid
	}
	s.write()
	s.read()
	tok.Literal = s.literal()
}

func (s *Scanner) skipBlank() {
	for !s.done() {
		switch {
		case isSpace(s.char):
			s.read()
		case s.char == pound, s.char == slash && s.peek() == slash:
			s.skipComment()
		default:
			return
		}
	}
}

func (s *Scanner) skipComment() {
	for !s.done() && !isNL(s.char) {
		s.read()
	}
}

func (s *Scanner) done() bool {
	return s.char == utf8.RuneError
}

func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char = utf8.RuneError
		s.curr = len(s.input)
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	if r == utf8.RuneError {
		s.char = r
		s.next = len(s.input)
		return
	}
	if s.char == nl {
		s.cursor.Line++
		s.cursor.Column = 0
	}
	s.cursor.Column++
	s.char, s.curr, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) reset() {
	s.str.Reset()
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) literal() string {
	return s.str.String()
}

const (
	lbrace     = '{'
	rbrace     = '}'
	lparen     = '('
	rparen     = ')'
	lsquare    = '['
	rsquare    = ']'
	langle     = '<'
	rangle     = '>'
	space      = ' '
	tab        = '\t'
	nl         = '\n'
	cr         = '\r'
	dquote     = '"'
	underscore = '_'
	pound      = '#'
	dot        = '.'
	plus       = '+'
	minus      = '-'
	star       = '*'
	slash      = '/'
	percent    = '%'
	ampersand  = '&'
	pipe       = '|'
	bang       = '!'
	equal      = '='
	comma      = ','
	colon      = ':'
	backslash  = '\\'
)

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == underscore
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return isLetter(r) || isDigit(r)
}

func isSpace(r rune) bool {
	return r == space || r == tab || r == cr
}

func isQuote(r rune) bool {
	return r == dquote
}

func isNL(r rune) bool {
	return r == nl
}
