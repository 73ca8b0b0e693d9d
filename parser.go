package quark

import "fmt"

// Parser consumes a token stream and produces an AST. It is a
// recursive-descent parser for statements with a Pratt expression
// engine underneath: each infix token carries a binding precedence and
// the expression loop keeps folding while the next token binds tighter
// than the caller's floor.
type Parser struct {
	toks []Token
	pos  int
}

// NewParser creates a parser over the given tokens. The slice must end
// with an EOF token, as produced by Tokenize.
func NewParser(toks []Token) *Parser {
	return &Parser{toks: toks}
}

// Parse builds a CompilationUnit from the token stream.
func Parse(toks []Token) (*AstNode, error) {
	return NewParser(toks).Parse()
}

// ParseSource lexes and parses src in one step.
func ParseSource(src string) (*AstNode, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// Parse consumes the whole stream and returns the root node.
func (p *Parser) Parse() (*AstNode, error) {
	root := NewNode(NodeCompilationUnit, nil)
	for {
		p.skipNewlines()
		if p.check(EOF) {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		root.AddChild(stmt)
	}
	return root, nil
}

// ----- statements -----

func (p *Parser) statement() (*AstNode, error) {
	switch p.current().Type {
	case FN:
		return p.functionDef()
	case IF:
		return p.ifStatement()
	case WHEN:
		return p.whenStatement()
	case FOR:
		return p.forLoop()
	case WHILE:
		return p.whileLoop()
	default:
		expr, err := p.expression(PrecLowest)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeStatement, nil, expr), nil
	}
}

// functionDef parses `fn name param, param: body`. Parameters are bare
// identifiers separated by commas, terminated by the colon.
func (p *Parser) functionDef() (*AstNode, error) {
	if _, err := p.expect(FN); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	fn := NewNode(NodeFunction, &name)

	params := NewNode(NodeArguments, nil)
	for !p.check(COLON) && !p.check(EOF) {
		param, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		params.AddChild(NewNode(NodeIdentifier, &param))
		if p.check(COMMA) {
			p.advance()
		}
	}
	fn.AddChild(params)

	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	fn.AddChild(body)
	return fn, nil
}

// ifStatement parses an if with zero or more elseif clauses and an
// optional trailing else. Each elseif becomes a nested IfStatement
// child holding its own condition and block; the else block, when
// present, is the final child.
func (p *Parser) ifStatement() (*AstNode, error) {
	tok := p.advance()
	node := NewNode(NodeIf, &tok)

	cond, err := p.expression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.AddChild(cond)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	node.AddChild(body)

	p.skipNewlines()
	for p.check(ELSEIF) {
		p.advance()
		cond, err := p.expression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		node.AddChild(WithChildren(NodeIf, nil, cond, body))
		p.skipNewlines()
	}
	if p.check(ELSE) {
		p.advance()
		if _, err := p.expect(COLON); err != nil {
			return nil, err
		}
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		node.AddChild(body)
	}
	return node, nil
}

// whenStatement parses a when block: a subject expression followed by
// an indented list of patterns. Each pattern is one or more guard
// expressions joined by `or`, a colon, and a result expression.
func (p *Parser) whenStatement() (*AstNode, error) {
	tok := p.advance()
	node := NewNode(NodeWhen, &tok)

	subject, err := p.expression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.AddChild(subject)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(INDENT); err != nil {
		return nil, err
	}
	for !p.check(DEDENT) && !p.check(EOF) {
		pat, err := p.whenPattern()
		if err != nil {
			return nil, err
		}
		node.AddChild(pat)
		p.skipNewlines()
	}
	if _, err := p.expect(DEDENT); err != nil {
		return nil, err
	}
	return node, nil
}

// whenPattern parses `guard or guard ... : result`. Guards bind at
// comma precedence so a comma never runs into the next pattern.
func (p *Parser) whenPattern() (*AstNode, error) {
	pat := NewNode(NodePattern, nil)
	for {
		guard, err := p.expression(PrecComma)
		if err != nil {
			return nil, err
		}
		pat.AddChild(guard)
		if !p.check(OR) {
			break
		}
		p.advance()
	}
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	result, err := p.expression(PrecLowest)
	if err != nil {
		return nil, err
	}
	pat.AddChild(result)
	return pat, nil
}

// forLoop parses `for var in iterable: body`.
func (p *Parser) forLoop() (*AstNode, error) {
	tok := p.advance()
	node := NewNode(NodeForLoop, &tok)

	loopVar, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	node.AddChild(NewNode(NodeIdentifier, &loopVar))
	if _, err := p.expect(IN); err != nil {
		return nil, err
	}
	iter, err := p.expression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.AddChild(iter)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	node.AddChild(body)
	return node, nil
}

// whileLoop parses `while cond: body`.
func (p *Parser) whileLoop() (*AstNode, error) {
	tok := p.advance()
	node := NewNode(NodeWhileLoop, &tok)

	cond, err := p.expression(PrecLowest)
	if err != nil {
		return nil, err
	}
	node.AddChild(cond)
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	body, err := p.block()
	if err != nil {
		return nil, err
	}
	node.AddChild(body)
	return node, nil
}

// block parses the body that follows a colon. An indented body is a
// sequence of statements between INDENT and DEDENT; otherwise the body
// is a single statement on the same line.
func (p *Parser) block() (*AstNode, error) {
	node := NewNode(NodeBlock, nil)
	p.skipNewlines()
	if p.check(INDENT) {
		p.advance()
		for !p.check(DEDENT) && !p.check(EOF) {
			stmt, err := p.statement()
			if err != nil {
				return nil, err
			}
			node.AddChild(stmt)
			p.skipNewlines()
		}
		if _, err := p.expect(DEDENT); err != nil {
			return nil, err
		}
		return node, nil
	}
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	node.AddChild(stmt)
	return node, nil
}

// ----- expressions -----

// expression parses at the given precedence floor: it reads a prefix
// expression, then keeps folding infix operators as long as the next
// token binds strictly tighter than min.
func (p *Parser) expression(min Precedence) (*AstNode, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}
	for {
		cur := p.current()
		if cur.Type == NEWLINE || cur.Type == EOF {
			break
		}
		prec := tokenPrecedence(cur.Type)
		if prec <= min {
			break
		}
		left, err = p.infix(left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (p *Parser) prefix() (*AstNode, error) {
	tok := p.current()
	switch tok.Type {
	case INTEGER, FLOAT, STRING:
		p.advance()
		return NewNode(NodeLiteral, &tok), nil
	case IDENT:
		p.advance()
		return NewNode(NodeIdentifier, &tok), nil
	case LPAREN:
		p.advance()
		expr, err := p.expression(PrecLowest)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return expr, nil
	case LCURLY:
		return p.listLiteral()
	case LSQUARE:
		return p.dictLiteral()
	case MINUS, BANG, TILDE:
		p.advance()
		operand, err := p.expression(PrecUnary)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeUnaryOp, &tok, operand), nil
	case AT:
		p.advance()
		callee, err := p.expression(PrecCall)
		if err != nil {
			return nil, err
		}
		return p.callWith(callee)
	default:
		return nil, &ParseError{
			Kind:  ParseUnexpectedPrefix,
			Found: tok.Type,
			Line:  tok.Line,
			Col:   tok.Col,
		}
	}
}

// infix folds one infix construct onto left. The dispatch mirrors
// tokenPrecedence: any token it ranks is handled here, and any token
// that can begin an expression is treated as a juxtaposed call
// argument.
func (p *Parser) infix(left *AstNode) (*AstNode, error) {
	tok := p.current()
	switch tok.Type {
	case EQUALS:
		p.advance()
		right, err := p.expression(PrecAssignment - 1)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeOperator, &tok, left, right), nil
	case PIPE:
		p.advance()
		right, err := p.expression(PrecPipe)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodePipe, &tok, left, right), nil
	case IF:
		p.advance()
		cond, err := p.expression(PrecOr)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(ELSE); err != nil {
			return nil, err
		}
		els, err := p.expression(PrecTernary - 1)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeTernary, nil, cond, left, els), nil
	case POWER:
		p.advance()
		right, err := p.expression(PrecExponent - 1)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeBinaryOp, &tok, left, right), nil
	case DOT:
		p.advance()
		member, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeMemberAccess, &member, left), nil
	case LPAREN:
		return p.callWith(left)
	case PLUS, MINUS, STAR, SLASH, PERCENT,
		EQEQ, NEQ, LESS, LESSEQ, GREATER, GREATEREQ,
		AND, OR, AMPER, DOTDOT, COMMA:
		p.advance()
		right, err := p.expression(tokenPrecedence(tok.Type))
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeBinaryOp, &tok, left, right), nil
	default:
		// Juxtaposition: `f x` applies f to x. The argument binds
		// at term level so `f x + y` reads as `(f x) + y`.
		arg, err := p.expression(PrecTerm)
		if err != nil {
			return nil, err
		}
		return WithChildren(NodeFunctionCall, nil, left, arg), nil
	}
}

// callWith parses an explicit parenthesized call on callee. Arguments
// bind above comma precedence so the comma always separates them.
func (p *Parser) callWith(callee *AstNode) (*AstNode, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	call := WithChildren(NodeFunctionCall, nil, callee)
	args := NewNode(NodeArguments, nil)
	if !p.check(RPAREN) {
		for {
			arg, err := p.expression(PrecComma + 1)
			if err != nil {
				return nil, err
			}
			args.AddChild(arg)
			if !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	call.AddChild(args)
	return call, nil
}

// listLiteral parses `{a, b, c}`.
func (p *Parser) listLiteral() (*AstNode, error) {
	if _, err := p.expect(LCURLY); err != nil {
		return nil, err
	}
	node := NewNode(NodeList, nil)
	if !p.check(RCURLY) {
		for {
			elem, err := p.expression(PrecComma + 1)
			if err != nil {
				return nil, err
			}
			node.AddChild(elem)
			if !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RCURLY); err != nil {
		return nil, err
	}
	return node, nil
}

// dictLiteral parses `[key: value, ...]`. Each entry becomes an
// Expression node holding the key and value.
func (p *Parser) dictLiteral() (*AstNode, error) {
	if _, err := p.expect(LSQUARE); err != nil {
		return nil, err
	}
	node := NewNode(NodeDict, nil)
	if !p.check(RSQUARE) {
		for {
			key, err := p.expression(PrecComma + 1)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(COLON); err != nil {
				return nil, err
			}
			value, err := p.expression(PrecComma + 1)
			if err != nil {
				return nil, err
			}
			node.AddChild(WithChildren(NodeExpression, nil, key, value))
			if !p.check(COMMA) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(RSQUARE); err != nil {
		return nil, err
	}
	return node, nil
}

// tokenPrecedence ranks infix tokens. Tokens that never act as infix
// operators rank PrecLowest, except those that can begin an expression,
// which rank PrecApplication so the juxtaposition rule fires.
func tokenPrecedence(tt TokenType) Precedence {
	switch tt {
	case EQUALS:
		return PrecAssignment
	case PIPE:
		return PrecPipe
	case COMMA:
		return PrecComma
	case IF:
		return PrecTernary
	case OR:
		return PrecOr
	case AND:
		return PrecAnd
	case AMPER:
		return PrecBitAnd
	case EQEQ, NEQ:
		return PrecEquality
	case LESS, LESSEQ, GREATER, GREATEREQ:
		return PrecComparison
	case DOTDOT:
		return PrecRange
	case PLUS, MINUS:
		return PrecTerm
	case STAR, SLASH, PERCENT:
		return PrecFactor
	case POWER:
		return PrecExponent
	case DOT, LPAREN:
		return PrecCall
	default:
		if canStartExpression(tt) {
			return PrecApplication
		}
		return PrecLowest
	}
}

// canStartExpression reports whether tt is a valid first token of an
// expression. It drives the juxtaposition rule: inside an expression a
// token that could start a new one is read as a call argument.
func canStartExpression(tt TokenType) bool {
	switch tt {
	case INTEGER, FLOAT, STRING, IDENT, LPAREN, LCURLY, LSQUARE, MINUS, BANG, TILDE, AT:
		return true
	}
	return false
}

// ----- cursor helpers -----

func (p *Parser) current() Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos]
}

func (p *Parser) advance() Token {
	tok := p.current()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt TokenType) bool {
	return p.current().Type == tt
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, &ParseError{
			Kind:     ParseExpectedToken,
			Expected: tt,
			Found:    tok.Type,
			Line:     tok.Line,
			Col:      tok.Col,
		}
	}
	p.advance()
	return tok, nil
}

func (p *Parser) skipNewlines() {
	for p.check(NEWLINE) {
		p.advance()
	}
}

// ----- errors -----

// ParseErrorKind classifies syntax errors.
type ParseErrorKind int

const (
	ParseUnexpectedPrefix ParseErrorKind = iota
	ParseExpectedToken
)

// ParseError is a syntax error with the source position of the
// offending token.
type ParseError struct {
	Kind     ParseErrorKind
	Expected TokenType
	Found    TokenType
	Line     int
	Col      int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.message())
}

func (e *ParseError) message() string {
	switch e.Kind {
	case ParseExpectedToken:
		return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	default:
		return fmt.Sprintf("unexpected token %s", e.Found)
	}
}
