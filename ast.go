// ast.go: the Quark abstract syntax tree.
//
// Pure data, like token.go: the closed NodeType enumeration, the AstNode
// record built by the parser, and the Precedence scale that drives the
// Pratt expression loop. An AstNode exclusively owns its children; the tree
// is built bottom-up and never mutated once a node has been returned to its
// caller.
package quark

import (
	"fmt"
	"strings"
)

// NodeType classifies an AST node.
type NodeType int

const (
	NodeCompilationUnit NodeType = iota
	NodeBlock
	NodeStatement
	NodeExpression
	NodeFunction
	NodeFunctionCall
	NodeArguments
	NodeIf
	NodeWhen
	NodePattern
	NodeForLoop
	NodeWhileLoop
	NodeLambda
	NodeTernary
	NodePipe
	NodeIdentifier
	NodeLiteral
	NodeOperator
	NodeBinaryOp
	NodeUnaryOp
	NodeList
	NodeDict
	NodeMemberAccess
)

var nodeNames = map[NodeType]string{
	NodeCompilationUnit: "CompilationUnit",
	NodeBlock:           "Block",
	NodeStatement:       "Statement",
	NodeExpression:      "Expression",
	NodeFunction:        "Function",
	NodeFunctionCall:    "FunctionCall",
	NodeArguments:       "Arguments",
	NodeIf:              "IfStatement",
	NodeWhen:            "WhenStatement",
	NodePattern:         "Pattern",
	NodeForLoop:         "ForLoop",
	NodeWhileLoop:       "WhileLoop",
	NodeLambda:          "Lambda",
	NodeTernary:         "Ternary",
	NodePipe:            "Pipe",
	NodeIdentifier:      "Identifier",
	NodeLiteral:         "Literal",
	NodeOperator:        "Operator",
	NodeBinaryOp:        "BinaryOp",
	NodeUnaryOp:         "UnaryOp",
	NodeList:            "List",
	NodeDict:            "Dict",
	NodeMemberAccess:    "MemberAccess",
}

func (nt NodeType) String() string {
	if s, ok := nodeNames[nt]; ok {
		return s
	}
	return fmt.Sprintf("NodeType(%d)", int(nt))
}

// AstNode is one node of the syntax tree. Token is the originating lexeme
// (operator, keyword, identifier) when the node has one; child order is
// semantically significant (condition before body, left operand before
// right).
type AstNode struct {
	Type     NodeType
	Token    *Token
	Children []*AstNode
}

// NewNode creates a node with no children. tok may be nil for nodes that
// have no originating token (blocks, argument lists, ternaries).
func NewNode(t NodeType, tok *Token) *AstNode {
	return &AstNode{Type: t, Token: tok}
}

// WithChildren creates a node owning the given children in order.
func WithChildren(t NodeType, tok *Token, children ...*AstNode) *AstNode {
	return &AstNode{Type: t, Token: tok, Children: children}
}

// AddChild appends a child. Only the constructing parse function may call
// this, before the node escapes to its caller.
func (n *AstNode) AddChild(child *AstNode) {
	n.Children = append(n.Children, child)
}

// Lexeme returns the originating token's text, or "" when there is none.
func (n *AstNode) Lexeme() string {
	if n.Token == nil {
		return ""
	}
	return n.Token.Lexeme
}

func (n *AstNode) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *AstNode) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(n.Type.String())
	if lex := n.Lexeme(); lex != "" {
		fmt.Fprintf(b, " '%s'", lex)
	}
	b.WriteByte('\n')
	for _, c := range n.Children {
		c.write(b, depth+1)
	}
}

// Precedence orders binding strength for the Pratt parser; a strictly
// greater value binds tighter.
type Precedence int

const (
	PrecLowest      Precedence = iota // 0
	PrecAssignment                    // =
	PrecPipe                          // |
	PrecComma                         // , as an operator
	PrecTernary                       // expr if cond else expr
	PrecOr                            // or
	PrecAnd                           // and
	PrecBitAnd                        // &
	PrecEquality                      // == !=
	PrecComparison                    // < <= > >=
	PrecRange                         // ..
	PrecTerm                          // + -
	PrecFactor                        // * / %
	PrecExponent                      // **
	PrecUnary                         // - ! ~ prefix
	PrecApplication                   // juxtaposition: f x
	PrecCall                          // () . @
)
