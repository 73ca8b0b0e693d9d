// lexer.go: whitespace-sensitive scanner for Quark source.
//
// The lexer walks the source once, left to right, with a single character
// of lookahead, and produces the full token slice up front (EOF included).
// Block structure is encoded in the stream itself: at the start of each
// physical line the scanner measures indentation against a stack of widths
// and synthesizes INDENT/DEDENT tokens. An INDENT is only ever opened right
// after a COLON ended the previous logical line; an indentation increase
// without that colon is left for the parser to reject through its normal
// expectations.
//
// Blank lines and //-comment-only lines are invisible: they are consumed
// before indentation is measured and emit nothing, not even NEWLINE.
//
// Errors are *LexError values carrying the 1-based line/column of the
// offending input; scanning halts at the first one.
package quark

import "fmt"

// Lexer scans a Quark source string into tokens.
type Lexer struct {
	src    string
	cur    int
	line   int // 1-based
	col    int // 1-based
	tokens []Token

	indents       []int
	atLineStart   bool
	pendingIndent bool // set only after emitting COLON
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:         src,
		line:        1,
		col:         1,
		indents:     []int{0},
		atLineStart: true,
	}
}

// Tokenize scans src in one call.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

// Scan tokenizes the entire source and returns tokens, always terminated by
// exactly one EOF after any trailing DEDENTs.
func (l *Lexer) Scan() ([]Token, error) {
	for {
		if l.atLineStart && !l.isAtEnd() {
			if l.skipBlankOrCommentLine() {
				continue
			}
			l.handleIndentation()
			l.atLineStart = false
		}

		l.skipInlineWhitespace()
		if l.isAtEnd() {
			break
		}
		if l.src[l.cur] == '/' && l.cur+1 < len(l.src) && l.src[l.cur+1] == '/' {
			l.skipComment()
			continue
		}

		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		if tok.Type == COLON {
			l.pendingIndent = true
		}
		l.tokens = append(l.tokens, tok)
	}

	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DEDENT)
	}
	l.emit(EOF)
	return l.tokens, nil
}

// skipBlankOrCommentLine consumes a line that holds nothing but whitespace
// or a // comment, through its newline. Reports whether it consumed one.
func (l *Lexer) skipBlankOrCommentLine() bool {
	j := l.cur
	for j < len(l.src) && (l.src[j] == ' ' || l.src[j] == '\t' || l.src[j] == '\r') {
		j++
	}
	blank := j >= len(l.src) || l.src[j] == '\n'
	comment := j+1 < len(l.src) && l.src[j] == '/' && l.src[j+1] == '/'
	if !blank && !comment {
		return false
	}
	for !l.isAtEnd() && l.src[l.cur] != '\n' {
		l.advance()
	}
	if !l.isAtEnd() {
		l.advance() // the newline itself
	}
	return true
}

// handleIndentation measures the current line's leading whitespace and
// emits INDENT/DEDENT against the indent stack. Spaces count 1, tabs 4;
// mixed widths are additive.
func (l *Lexer) handleIndentation() {
	level := 0
	for !l.isAtEnd() {
		switch l.src[l.cur] {
		case ' ':
			level++
		case '\t':
			level += 4
		default:
			top := l.indents[len(l.indents)-1]
			if l.pendingIndent && level > top {
				l.indents = append(l.indents, level)
				l.emit(INDENT)
			} else if level < top {
				for len(l.indents) > 0 && l.indents[len(l.indents)-1] > level {
					l.indents = l.indents[:len(l.indents)-1]
					l.emit(DEDENT)
				}
			}
			l.pendingIndent = false
			return
		}
		l.advance()
	}
	l.pendingIndent = false
}

// next scans one token. The caller has already dealt with line starts,
// inline whitespace and comments, so the current character begins a token.
func (l *Lexer) next() (Token, error) {
	startLine, startCol := l.line, l.col
	ch := l.src[l.cur]

	switch ch {
	case '\n':
		l.advance()
		l.atLineStart = true
		return Token{Type: NEWLINE, Line: startLine, Col: startCol}, nil
	case '+':
		l.advance()
		return l.tok(PLUS, "+", startLine, startCol), nil
	case '-':
		l.advance()
		return l.tok(MINUS, "-", startLine, startCol), nil
	case '*':
		l.advance()
		if l.cur < len(l.src) && l.src[l.cur] == '*' {
			l.advance()
			return l.tok(POWER, "**", startLine, startCol), nil
		}
		return l.tok(STAR, "*", startLine, startCol), nil
	case '/':
		l.advance()
		return l.tok(SLASH, "/", startLine, startCol), nil
	case '%':
		l.advance()
		return l.tok(PERCENT, "%", startLine, startCol), nil
	case '=':
		return l.two('=', EQEQ, "==", EQUALS, "="), nil
	case '!':
		return l.two('=', NEQ, "!=", BANG, "!"), nil
	case '<':
		return l.two('=', LESSEQ, "<=", LESS, "<"), nil
	case '>':
		return l.two('=', GREATEREQ, ">=", GREATER, ">"), nil
	case '~':
		l.advance()
		return l.tok(TILDE, "~", startLine, startCol), nil
	case '&':
		l.advance()
		return l.tok(AMPER, "&", startLine, startCol), nil
	case '|':
		l.advance()
		return l.tok(PIPE, "|", startLine, startCol), nil
	case '.':
		if l.cur+1 < len(l.src) && l.src[l.cur+1] == '.' {
			l.advance()
			l.advance()
			return l.tok(DOTDOT, "..", startLine, startCol), nil
		}
		if l.cur+1 < len(l.src) && isDigit(l.src[l.cur+1]) {
			return l.scanNumber(), nil
		}
		l.advance()
		return l.tok(DOT, ".", startLine, startCol), nil
	case '@':
		l.advance()
		return l.tok(AT, "@", startLine, startCol), nil
	case '(':
		l.advance()
		return l.tok(LPAREN, "(", startLine, startCol), nil
	case ')':
		l.advance()
		return l.tok(RPAREN, ")", startLine, startCol), nil
	case '{':
		l.advance()
		return l.tok(LCURLY, "{", startLine, startCol), nil
	case '}':
		l.advance()
		return l.tok(RCURLY, "}", startLine, startCol), nil
	case '[':
		l.advance()
		return l.tok(LSQUARE, "[", startLine, startCol), nil
	case ']':
		l.advance()
		return l.tok(RSQUARE, "]", startLine, startCol), nil
	case ',':
		l.advance()
		return l.tok(COMMA, ",", startLine, startCol), nil
	case ':':
		l.advance()
		return l.tok(COLON, ":", startLine, startCol), nil
	case '\'':
		return l.scanString()
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}
	if isAlpha(ch) {
		return l.scanIdentifier(), nil
	}
	return Token{}, &LexError{
		Kind: LexUnexpectedChar,
		Char: rune(ch),
		Line: startLine,
		Col:  startCol,
	}
}

// scanNumber parses an integer or float. A '.' is part of the number only
// when it is not followed by another '.', so "x..y" never swallows the
// range operator; "2." and ".5" are valid floats.
func (l *Lexer) scanNumber() Token {
	startLine, startCol := l.line, l.col
	start := l.cur
	isFloat := false

	if l.src[l.cur] == '.' {
		isFloat = true
		l.advance()
	}
	for !l.isAtEnd() && isDigit(l.src[l.cur]) {
		l.advance()
	}
	if !l.isAtEnd() && l.src[l.cur] == '.' &&
		!(l.cur+1 < len(l.src) && l.src[l.cur+1] == '.') {
		isFloat = true
		l.advance()
		for !l.isAtEnd() && isDigit(l.src[l.cur]) {
			l.advance()
		}
	}

	tt := INTEGER
	if isFloat {
		tt = FLOAT
	}
	return l.tok(tt, l.src[start:l.cur], startLine, startCol)
}

// scanString parses a '...'-delimited literal with backslash escapes for
// n, t, r, \ and '; any other escaped character yields itself. The lexeme
// holds the decoded text.
func (l *Lexer) scanString() (Token, error) {
	startLine, startCol := l.line, l.col
	l.advance() // opening quote

	var out []byte
	for !l.isAtEnd() && l.src[l.cur] != '\'' {
		ch := l.src[l.cur]
		if ch == '\\' {
			l.advance()
			if l.isAtEnd() {
				break
			}
			switch l.src[l.cur] {
			case 'n':
				out = append(out, '\n')
			case 't':
				out = append(out, '\t')
			case 'r':
				out = append(out, '\r')
			default:
				out = append(out, l.src[l.cur])
			}
			l.advance()
			continue
		}
		out = append(out, ch)
		l.advance()
	}

	if l.isAtEnd() {
		return Token{}, &LexError{Kind: LexUnterminatedString, Line: startLine, Col: startCol}
	}
	l.advance() // closing quote
	return l.tok(STRING, string(out), startLine, startCol), nil
}

// scanIdentifier parses [A-Za-z_][A-Za-z0-9_]* and re-tags keywords.
func (l *Lexer) scanIdentifier() Token {
	startLine, startCol := l.line, l.col
	start := l.cur
	for !l.isAtEnd() && isAlphaNum(l.src[l.cur]) {
		l.advance()
	}
	lexeme := l.src[start:l.cur]
	tt := IDENT
	if kw, ok := keywords[lexeme]; ok {
		tt = kw
	}
	return l.tok(tt, lexeme, startLine, startCol)
}

// two consumes a one- or two-character operator depending on whether the
// next character matches want.
func (l *Lexer) two(want byte, tt2 TokenType, lex2 string, tt1 TokenType, lex1 string) Token {
	startLine, startCol := l.line, l.col
	l.advance()
	if l.cur < len(l.src) && l.src[l.cur] == want {
		l.advance()
		return l.tok(tt2, lex2, startLine, startCol)
	}
	return l.tok(tt1, lex1, startLine, startCol)
}

func (l *Lexer) skipComment() {
	for !l.isAtEnd() && l.src[l.cur] != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipInlineWhitespace() {
	for !l.isAtEnd() {
		ch := l.src[l.cur]
		if ch == ' ' || ch == '\t' || ch == '\r' {
			l.advance()
		} else {
			return
		}
	}
}

func (l *Lexer) tok(tt TokenType, lexeme string, line, col int) Token {
	if tt == NEWLINE || tt == INDENT || tt == DEDENT || tt == EOF {
		lexeme = ""
	}
	return Token{Type: tt, Lexeme: lexeme, Line: line, Col: col}
}

func (l *Lexer) emit(tt TokenType) {
	l.tokens = append(l.tokens, Token{Type: tt, Line: l.line, Col: l.col})
}

func (l *Lexer) advance() {
	if l.isAtEnd() {
		return
	}
	if l.src[l.cur] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.cur++
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}
func isAlphaNum(b byte) bool { return isAlpha(b) || isDigit(b) }

// ----- errors -----

// LexErrorKind discriminates the two lexical failures.
type LexErrorKind int

const (
	LexUnexpectedChar LexErrorKind = iota
	LexUnterminatedString
)

// LexError is the lexer's terminal failure. Line and Col are 1-based; for
// an unterminated string they point at the opening quote.
type LexError struct {
	Kind LexErrorKind
	Char rune // set for LexUnexpectedChar
	Line int
	Col  int
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.message())
}

func (e *LexError) message() string {
	switch e.Kind {
	case LexUnterminatedString:
		return "unterminated string"
	default:
		return fmt.Sprintf("unexpected character %q", e.Char)
	}
}
