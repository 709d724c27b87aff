package brio

import (
	"io"
	"strings"
)

func ParseString(str string) (Node, error) {
	return Parse(strings.NewReader(str))
}

func Parse(r io.Reader) (Node, error) {
	return NewParser(r).Parse()
}

type Parser struct {
	scan *Scanner
	curr Token
	peek Token

	keywords map[string]func() (Node, error)
	prefix   map[rune]func() (Node, error)
	infix    map[rune]func(Node) (Node, error)
}

func NewParser(r io.Reader) *Parser {
	p := Parser{
		scan:     Scan(r),
		infix:    make(map[rune]func(Node) (Node, error)),
		prefix:   make(map[rune]func() (Node, error)),
		keywords: make(map[string]func() (Node, error)),
	}
	p.registerInfix(Add, p.parseBinary)
	p.registerInfix(Sub, p.parseBinary)
	p.registerInfix(Mul, p.parseBinary)
	p.registerInfix(Div, p.parseBinary)
	p.registerInfix(Mod, p.parseBinary)
	p.registerInfix(Eq, p.parseBinary)
	p.registerInfix(Ne, p.parseBinary)
	p.registerInfix(Lt, p.parseBinary)
	p.registerInfix(Le, p.parseBinary)
	p.registerInfix(Gt, p.parseBinary)
	p.registerInfix(Ge, p.parseBinary)
	p.registerInfix(And, p.parseBinary)
	p.registerInfix(Or, p.parseBinary)
	p.registerInfix(Lparen, p.parseCall)
	p.registerInfix(Lsquare, p.parseIndex)

	p.registerPrefix(Number, p.parseNumber)
	p.registerPrefix(Float, p.parseFloat)
	p.registerPrefix(Text, p.parseText)
	p.registerPrefix(Boolean, p.parseBool)
	p.registerPrefix(Ident, p.parseIdentifier)
	p.registerPrefix(Lparen, p.parseGroup)
	p.registerPrefix(Lsquare, p.parseArray)
	p.registerPrefix(Keyword, p.parseKeywordExpr)

	p.registerKeyword("let", p.parseLet)
	p.registerKeyword("print", p.parsePrint)
	p.registerKeyword("if", p.parseIf)
	p.registerKeyword("while", p.parseWhile)
	p.registerKeyword("switch", p.parseSwitch)
	p.registerKeyword("return", p.parseReturn)
	p.registerKeyword("break", p.parseBreak)
	p.registerKeyword("continue", p.parseContinue)

	p.next()
	p.next()
	return &p
}

func (p *Parser) Parse() (Node, error) {
	block := Block{Line: 1}
	for !p.done() {
		if p.is(EOL) {
			p.next()
			continue
		}
		var (
			node Node
			err  error
		)
		if p.is(Keyword) && p.curr.Literal == "func" {
			node, err = p.parseFunction()
		} else {
			node, err = p.parseStatement()
		}
		if err != nil {
			return nil, err
		}
		block.Nodes = append(block.Nodes, node)
	}
	tracer().Debugf("parse: %d top level node(s)", len(block.Nodes))
	return block, nil
}

func (p *Parser) parseStatement() (Node, error) {
	p.skip(EOL)
	if p.is(Keyword) {
		if parse, ok := p.keywords[p.curr.Literal]; ok {
			return parse()
		}
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	if !p.is(Assign) {
		return expr, nil
	}
	ident, ok := expr.(Variable)
	if !ok {
		return nil, p.syntaxError("can not assign to non-variable")
	}
	p.next()
	value, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	stmt := Assignment{
		Line:  ident.Line,
		Ident: ident.Ident,
		Expr:  value,
	}
	return stmt, nil
}

func (p *Parser) parseBinary(left Node) (Node, error) {
	bin := Binary{
		Line: p.curr.Line,
		Op:   p.curr.Literal,
		Left: left,
	}
	pow := bindings[p.curr.Type]
	p.next()
	right, err := p.parseExpression(pow)
	if err != nil {
		return nil, err
	}
	bin.Right = right
	return bin, nil
}

func (p *Parser) parseCall(left Node) (Node, error) {
	ident, ok := left.(Variable)
	if !ok {
		return nil, p.syntaxError("can only call identifiers")
	}
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	call := Call{
		Line:  ident.Line,
		Ident: ident.Ident,
	}
	for !p.done() && !p.is(Rparen) {
		arg, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
		switch p.curr.Type {
		case Comma:
			p.next()
			if p.is(Rparen) {
				return nil, p.unexpected()
			}
		case Rparen:
		default:
			return nil, p.unexpected()
		}
	}
	return call, p.expect(Rparen)
}

func (p *Parser) parseIndex(left Node) (Node, error) {
	ix := Index{
		Line: p.curr.Line,
		Expr: left,
	}
	if err := p.expect(Lsquare); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	ix.Index = expr
	return ix, p.expect(Rsquare)
}

func (p *Parser) parseNumber() (Node, error) {
	defer p.next()
	lit := Literal[int64]{
		Line:  p.curr.Line,
		Value: p.curr.Int,
	}
	return lit, nil
}

func (p *Parser) parseFloat() (Node, error) {
	defer p.next()
	lit := Literal[float64]{
		Line:  p.curr.Line,
		Value: p.curr.Real,
	}
	return lit, nil
}

func (p *Parser) parseText() (Node, error) {
	defer p.next()
	lit := Literal[string]{
		Line:  p.curr.Line,
		Value: p.curr.Literal,
	}
	return lit, nil
}

func (p *Parser) parseBool() (Node, error) {
	defer p.next()
	lit := Literal[bool]{
		Line:  p.curr.Line,
		Value: p.curr.Literal == "true",
	}
	return lit, nil
}

func (p *Parser) parseIdentifier() (Node, error) {
	defer p.next()
	v := Variable{
		Line:  p.curr.Line,
		Ident: p.curr.Literal,
	}
	return v, nil
}

func (p *Parser) parseGroup() (Node, error) {
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	return expr, p.expect(Rparen)
}

func (p *Parser) parseArray() (Node, error) {
	arr := Array{
		Line: p.curr.Line,
	}
	if err := p.expect(Lsquare); err != nil {
		return nil, err
	}
	for !p.done() && !p.is(Rsquare) {
		item, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		arr.Items = append(arr.Items, item)
		switch p.curr.Type {
		case Comma:
			p.next()
			if p.is(Rsquare) {
				return nil, p.unexpected()
			}
		case Rsquare:
		default:
			return nil, p.unexpected()
		}
	}
	return arr, p.expect(Rsquare)
}

func (p *Parser) parseKeywordExpr() (Node, error) {
	if p.curr.Literal == "input" {
		return p.parseInput()
	}
	return nil, p.unexpected()
}

func (p *Parser) parseInput() (Node, error) {
	in := Input{
		Line: p.curr.Line,
	}
	p.next()
	if !p.is(Lparen) {
		return in, nil
	}
	p.next()
	if !p.is(Rparen) {
		prompt, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		in.Prompt = prompt
	}
	return in, p.expect(Rparen)
}

func (p *Parser) parseLet() (Node, error) {
	let := Let{
		Line: p.curr.Line,
	}
	p.next()
	if !p.is(Ident) {
		return nil, p.syntaxError("expected variable name after 'let'")
	}
	let.Ident = p.curr.Literal
	p.next()
	if !p.is(Assign) {
		return nil, p.syntaxError("expected '=' in variable declaration")
	}
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	let.Expr = expr
	return let, nil
}

func (p *Parser) parsePrint() (Node, error) {
	stmt := Print{
		Line: p.curr.Line,
	}
	p.next()
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	for !p.done() && !p.is(Rparen) {
		arg, err := p.parseExpression(powLowest)
		if err != nil {
			return nil, err
		}
		stmt.Args = append(stmt.Args, arg)
		switch p.curr.Type {
		case Comma:
			p.next()
			if p.is(Rparen) {
				return nil, p.unexpected()
			}
		case Rparen:
		default:
			return nil, p.unexpected()
		}
	}
	return stmt, p.expect(Rparen)
}

func (p *Parser) parseIf() (Node, error) {
	stmt := If{
		Line: p.curr.Line,
	}
	p.next()
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	cdt, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	stmt.Cdt = cdt
	if err := p.expect(Rparen); err != nil {
		return nil, err
	}
	stmt.Csq, err = p.parseBody()
	if err != nil {
		return nil, err
	}
	if p.is(Keyword) && p.curr.Literal == "else" {
		p.next()
		if p.is(Keyword) && p.curr.Literal == "if" {
			alt, err := p.parseIf()
			if err != nil {
				return nil, err
			}
			stmt.Alt = []Node{alt}
		} else {
			stmt.Alt, err = p.parseBody()
			if err != nil {
				return nil, err
			}
		}
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Node, error) {
	stmt := While{
		Line: p.curr.Line,
	}
	p.next()
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	cdt, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	stmt.Cdt = cdt
	if err := p.expect(Rparen); err != nil {
		return nil, err
	}
	stmt.Body, err = p.parseBody()
	return stmt, err
}

func (p *Parser) parseSwitch() (Node, error) {
	stmt := Switch{
		Line: p.curr.Line,
	}
	p.next()
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	cdt, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	stmt.Cdt = cdt
	if err := p.expect(Rparen); err != nil {
		return nil, err
	}
	p.skip(EOL)
	if err := p.expect(Lbrace); err != nil {
		return nil, err
	}
	for !p.done() && !p.is(Rbrace) {
		if p.is(EOL) {
			p.next()
			continue
		}
		if !p.is(Keyword) {
			return nil, p.syntaxError("expected 'case' or 'default' inside switch")
		}
		switch p.curr.Literal {
		case "case":
			c, err := p.parseCase()
			if err != nil {
				return nil, err
			}
			stmt.Cases = append(stmt.Cases, c)
		case "default":
			body, err := p.parseDefault()
			if err != nil {
				return nil, err
			}
			stmt.Default = body
		default:
			return nil, p.syntaxError("expected 'case' or 'default' inside switch")
		}
	}
	return stmt, p.expect(Rbrace)
}

func (p *Parser) parseCase() (Case, error) {
	c := Case{
		Line: p.curr.Line,
	}
	p.next()
	value, err := p.parseExpression(powLowest)
	if err != nil {
		return c, err
	}
	c.Value = value
	if err := p.expect(Colon); err != nil {
		return c, err
	}
	for !p.done() && !p.is(Rbrace) && !p.caseLabel() {
		if p.is(EOL) {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return c, err
		}
		c.Body = append(c.Body, stmt)
	}
	return c, nil
}

func (p *Parser) parseDefault() ([]Node, error) {
	p.next()
	if err := p.expect(Colon); err != nil {
		return nil, err
	}
	var body []Node
	for !p.done() && !p.is(Rbrace) && !p.caseLabel() {
		if p.is(EOL) {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	return body, nil
}

func (p *Parser) caseLabel() bool {
	return p.is(Keyword) && (p.curr.Literal == "case" || p.curr.Literal == "default")
}

func (p *Parser) parseReturn() (Node, error) {
	stmt := Return{
		Line: p.curr.Line,
	}
	p.next()
	expr, err := p.parseExpression(powLowest)
	if err != nil {
		return nil, err
	}
	stmt.Expr = expr
	return stmt, nil
}

func (p *Parser) parseBreak() (Node, error) {
	defer p.next()
	return Break{Line: p.curr.Line}, nil
}

func (p *Parser) parseContinue() (Node, error) {
	defer p.next()
	return Continue{Line: p.curr.Line}, nil
}

func (p *Parser) parseFunction() (Node, error) {
	fn := FuncDef{
		Line: p.curr.Line,
	}
	p.next()
	if !p.is(Ident) {
		return nil, p.syntaxError("expected function name")
	}
	fn.Ident = p.curr.Literal
	p.next()
	if err := p.expect(Lparen); err != nil {
		return nil, err
	}
	for !p.done() && !p.is(Rparen) {
		if !p.is(Ident) {
			return nil, p.syntaxError("expected parameter name")
		}
		fn.Params = append(fn.Params, p.curr.Literal)
		p.next()
		switch p.curr.Type {
		case Comma:
			p.next()
			if p.is(Rparen) {
				return nil, p.unexpected()
			}
		case Rparen:
		default:
			return nil, p.unexpected()
		}
	}
	if err := p.expect(Rparen); err != nil {
		return nil, err
	}
	var err error
	fn.Body, err = p.parseBody()
	return fn, err
}

func (p *Parser) parseBody() ([]Node, error) {
	p.skip(EOL)
	if err := p.expect(Lbrace); err != nil {
		return nil, err
	}
	var list []Node
	for !p.done() && !p.is(Rbrace) {
		if p.is(EOL) {
			p.next()
			continue
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list = append(list, stmt)
	}
	return list, p.expect(Rbrace)
}

func (p *Parser) parseExpression(pow int) (Node, error) {
	fn, ok := p.prefix[p.curr.Type]
	if !ok {
		return nil, p.unexpected()
	}
	left, err := fn()
	if err != nil {
		return nil, err
	}
	for !p.done() && !p.is(EOL) && pow < bindings[p.curr.Type] {
		fn, ok := p.infix[p.curr.Type]
		if !ok {
			return nil, p.unexpected()
		}
		left, err = fn(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) registerInfix(kind rune, fn func(Node) (Node, error)) {
	p.infix[kind] = fn
}

func (p *Parser) registerPrefix(kind rune, fn func() (Node, error)) {
	p.prefix[kind] = fn
}

func (p *Parser) registerKeyword(kw string, fn func() (Node, error)) {
	p.keywords[kw] = fn
}

func (p *Parser) skip(kind rune) {
	for p.is(kind) {
		p.next()
	}
}

func (p *Parser) expect(kind rune) error {
	if !p.is(kind) {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *Parser) unexpected() error {
	return SyntaxError{
		Token:  p.curr,
		Reason: "unexpected token",
	}
}

func (p *Parser) syntaxError(reason string) error {
	return SyntaxError{
		Token:  p.curr,
		Reason: reason,
	}
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
}

const (
	powLowest int = iota
	powOr
	powAnd
	powEqual
	powCompare
	powAdd
	powMul
	powCall
)

var bindings = map[rune]int{
	Or:      powOr,
	And:     powAnd,
	Eq:      powEqual,
	Ne:      powEqual,
	Lt:      powCompare,
	Le:      powCompare,
	Gt:      powCompare,
	Ge:      powCompare,
	Add:     powAdd,
	Sub:     powAdd,
	Mul:     powMul,
	Div:     powMul,
	Mod:     powMul,
	Lparen:  powCall,
	Lsquare: powCall,
}
