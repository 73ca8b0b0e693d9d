// token.go: the lexical vocabulary of Quark.
//
// Pure data: the closed TokenType enumeration, the Token record produced by
// the lexer (lexer.go) and consumed by the parser (parser.go), and the
// keyword table used to re-tag identifiers.
package quark

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Literals
	INTEGER TokenType = iota
	FLOAT
	STRING

	// Identifiers & keywords
	IDENT
	USE
	MODULE
	IN
	AND
	OR
	IF
	ELSEIF
	ELSE
	FOR
	WHILE
	WHEN
	FN
	CLASS

	// Operators
	PLUS      // "+"
	MINUS     // "-"
	STAR      // "*"
	SLASH     // "/"
	PERCENT   // "%"
	POWER     // "**"
	EQUALS    // "="
	EQEQ      // "=="
	NEQ       // "!="
	LESS      // "<"
	LESSEQ    // "<="
	GREATER   // ">"
	GREATEREQ // ">="
	BANG      // "!"
	TILDE     // "~"
	AMPER     // "&"
	PIPE      // "|"
	DOTDOT    // ".."
	DOT       // "."
	AT        // "@"

	// Delimiters
	LPAREN  // "("
	RPAREN  // ")"
	LCURLY  // "{" opens a list literal
	RCURLY  // "}"
	LSQUARE // "[" opens a dict literal
	RSQUARE // "]"
	COMMA   // ","
	COLON   // ":"

	// Structural
	NEWLINE
	INDENT
	DEDENT
	EOF
)

// Token is a lexical unit with its exact source text and 1-based position.
// Structural tokens (NEWLINE, INDENT, DEDENT, EOF) carry an empty Lexeme.
// Tokens are created once by the lexer and never mutated; the parser only
// reads them and copies the ones it attaches to AST nodes.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

func (t Token) String() string {
	return fmt.Sprintf("%s('%s') at %d:%d", t.Type, t.Lexeme, t.Line, t.Col)
}

// keywords re-tags scanned identifiers.
var keywords = map[string]TokenType{
	"use":    USE,
	"module": MODULE,
	"in":     IN,
	"and":    AND,
	"or":     OR,
	"if":     IF,
	"elseif": ELSEIF,
	"else":   ELSE,
	"for":    FOR,
	"while":  WHILE,
	"when":   WHEN,
	"fn":     FN,
	"class":  CLASS,
}

var tokenNames = map[TokenType]string{
	INTEGER:   "INTEGER",
	FLOAT:     "FLOAT",
	STRING:    "STRING",
	IDENT:     "IDENT",
	USE:       "USE",
	MODULE:    "MODULE",
	IN:        "IN",
	AND:       "AND",
	OR:        "OR",
	IF:        "IF",
	ELSEIF:    "ELSEIF",
	ELSE:      "ELSE",
	FOR:       "FOR",
	WHILE:     "WHILE",
	WHEN:      "WHEN",
	FN:        "FN",
	CLASS:     "CLASS",
	PLUS:      "PLUS",
	MINUS:     "MINUS",
	STAR:      "STAR",
	SLASH:     "SLASH",
	PERCENT:   "PERCENT",
	POWER:     "POWER",
	EQUALS:    "EQUALS",
	EQEQ:      "EQEQ",
	NEQ:       "NEQ",
	LESS:      "LESS",
	LESSEQ:    "LESSEQ",
	GREATER:   "GREATER",
	GREATEREQ: "GREATEREQ",
	BANG:      "BANG",
	TILDE:     "TILDE",
	AMPER:     "AMPER",
	PIPE:      "PIPE",
	DOTDOT:    "DOTDOT",
	DOT:       "DOT",
	AT:        "AT",
	LPAREN:    "LPAREN",
	RPAREN:    "RPAREN",
	LCURLY:    "LCURLY",
	RCURLY:    "RCURLY",
	LSQUARE:   "LSQUARE",
	RSQUARE:   "RSQUARE",
	COMMA:     "COMMA",
	COLON:     "COLON",
	NEWLINE:   "NEWLINE",
	INDENT:    "INDENT",
	DEDENT:    "DEDENT",
	EOF:       "EOF",
}

func (tt TokenType) String() string {
	if s, ok := tokenNames[tt]; ok {
		return s
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}
