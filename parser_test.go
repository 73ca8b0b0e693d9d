// parser_test.go
package quark

import (
	"errors"
	"strings"
	"testing"
)

func parseTree(t *testing.T, src string) *AstNode {
	t.Helper()
	ast, err := ParseSource(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	return ast
}

func wantTree(t *testing.T, src, want string) {
	t.Helper()
	got := strings.TrimSpace(parseTree(t, src).String())
	want = strings.TrimSpace(want)
	if got != want {
		t.Fatalf("\nsource:\n%s\nwant:\n%s\ngot:\n%s\n", src, want, got)
	}
}

func parseErr(t *testing.T, src string) *ParseError {
	t.Helper()
	_, err := ParseSource(src)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("want *ParseError, got %v", err)
	}
	return pe
}

func Test_Parser_FactorBindsTighterThanTerm(t *testing.T) {
	wantTree(t, `2 + 3 * 4`, `
CompilationUnit
  Statement
    BinaryOp '+'
      Literal '2'
      BinaryOp '*'
        Literal '3'
        Literal '4'
`)
}

func Test_Parser_ParensOverridePrecedence(t *testing.T) {
	wantTree(t, `(2 + 3) * 4`, `
CompilationUnit
  Statement
    BinaryOp '*'
      BinaryOp '+'
        Literal '2'
        Literal '3'
      Literal '4'
`)
}

func Test_Parser_PowerIsRightAssociative(t *testing.T) {
	wantTree(t, `2 ** 3 ** 2`, `
CompilationUnit
  Statement
    BinaryOp '**'
      Literal '2'
      BinaryOp '**'
        Literal '3'
        Literal '2'
`)
}

func Test_Parser_AssignmentIsRightAssociative(t *testing.T) {
	wantTree(t, `a = b = c`, `
CompilationUnit
  Statement
    Operator '='
      Identifier 'a'
      Operator '='
        Identifier 'b'
        Identifier 'c'
`)
}

func Test_Parser_CommaIsLeftAssociative(t *testing.T) {
	wantTree(t, `a, b, c`, `
CompilationUnit
  Statement
    BinaryOp ','
      BinaryOp ','
        Identifier 'a'
        Identifier 'b'
      Identifier 'c'
`)
}

func Test_Parser_Juxtaposition_IsApplication(t *testing.T) {
	wantTree(t, `f x`, `
CompilationUnit
  Statement
    FunctionCall
      Identifier 'f'
      Identifier 'x'
`)
}

func Test_Parser_ApplicationBindsTighterThanTerm(t *testing.T) {
	// f x + y is (f x) + y, while x + y alone stays a plain sum.
	wantTree(t, `f x + y`, `
CompilationUnit
  Statement
    BinaryOp '+'
      FunctionCall
        Identifier 'f'
        Identifier 'x'
      Identifier 'y'
`)
	wantTree(t, `x + y`, `
CompilationUnit
  Statement
    BinaryOp '+'
      Identifier 'x'
      Identifier 'y'
`)
}

func Test_Parser_ApplicationChainGroupsRight(t *testing.T) {
	wantTree(t, `f g x`, `
CompilationUnit
  Statement
    FunctionCall
      Identifier 'f'
      FunctionCall
        Identifier 'g'
        Identifier 'x'
`)
}

func Test_Parser_ExplicitCallHasArgumentsNode(t *testing.T) {
	wantTree(t, `f(x, y + 1)`, `
CompilationUnit
  Statement
    FunctionCall
      Identifier 'f'
      Arguments
        Identifier 'x'
        BinaryOp '+'
          Identifier 'y'
          Literal '1'
`)
}

func Test_Parser_AtCall(t *testing.T) {
	wantTree(t, `@f(x)`, `
CompilationUnit
  Statement
    FunctionCall
      Identifier 'f'
      Arguments
        Identifier 'x'
`)
}

func Test_Parser_FunctionDef(t *testing.T) {
	wantTree(t, "fn add a, b:\n    a + b\n", `
CompilationUnit
  Function 'add'
    Arguments
      Identifier 'a'
      Identifier 'b'
    Block
      Statement
        BinaryOp '+'
          Identifier 'a'
          Identifier 'b'
`)
}

func Test_Parser_FunctionDefNoParams(t *testing.T) {
	wantTree(t, "fn hello:\n    greet()\n", `
CompilationUnit
  Function 'hello'
    Arguments
    Block
      Statement
        FunctionCall
          Identifier 'greet'
          Arguments
`)
}

func Test_Parser_TernaryChildOrder(t *testing.T) {
	// Children are condition, then-value, else-value.
	wantTree(t, `a if c else b`, `
CompilationUnit
  Statement
    Ternary
      Identifier 'c'
      Identifier 'a'
      Identifier 'b'
`)
}

func Test_Parser_ChainedTernaryLeansRight(t *testing.T) {
	wantTree(t, `a if c1 else b if c2 else d`, `
CompilationUnit
  Statement
    Ternary
      Identifier 'c1'
      Identifier 'a'
      Ternary
        Identifier 'c2'
        Identifier 'b'
        Identifier 'd'
`)
}

func Test_Parser_IfElseifElse(t *testing.T) {
	src := "if a:\n    x\nelseif b:\n    y\nelse:\n    z\n"
	wantTree(t, src, `
CompilationUnit
  IfStatement 'if'
    Identifier 'a'
    Block
      Statement
        Identifier 'x'
    IfStatement
      Identifier 'b'
      Block
        Statement
          Identifier 'y'
    Block
      Statement
        Identifier 'z'
`)
}

func Test_Parser_InlineBlock(t *testing.T) {
	wantTree(t, "if a: b\n", `
CompilationUnit
  IfStatement 'if'
    Identifier 'a'
    Block
      Statement
        Identifier 'b'
`)
}

func Test_Parser_WhenPatterns(t *testing.T) {
	src := "when x:\n    1: 'one'\n    2 or 3: 'few'\n"
	wantTree(t, src, `
CompilationUnit
  WhenStatement 'when'
    Identifier 'x'
    Pattern
      Literal '1'
      Literal 'one'
    Pattern
      BinaryOp 'or'
        Literal '2'
        Literal '3'
      Literal 'few'
`)
}

func Test_Parser_ForLoop(t *testing.T) {
	wantTree(t, "for i in 1..10:\n    f i\n", `
CompilationUnit
  ForLoop 'for'
    Identifier 'i'
    BinaryOp '..'
      Literal '1'
      Literal '10'
    Block
      Statement
        FunctionCall
          Identifier 'f'
          Identifier 'i'
`)
}

func Test_Parser_WhileLoop(t *testing.T) {
	wantTree(t, "while x < 10:\n    x = x + 1\n", `
CompilationUnit
  WhileLoop 'while'
    BinaryOp '<'
      Identifier 'x'
      Literal '10'
    Block
      Statement
        Operator '='
          Identifier 'x'
          BinaryOp '+'
            Identifier 'x'
            Literal '1'
`)
}

func Test_Parser_ListLiteral(t *testing.T) {
	wantTree(t, `{1, 2, 3}`, `
CompilationUnit
  Statement
    List
      Literal '1'
      Literal '2'
      Literal '3'
`)
}

func Test_Parser_DictLiteral(t *testing.T) {
	wantTree(t, `[a: 1, b: 2]`, `
CompilationUnit
  Statement
    Dict
      Expression
        Identifier 'a'
        Literal '1'
      Expression
        Identifier 'b'
        Literal '2'
`)
}

func Test_Parser_MemberAccessIsLeftAssociative(t *testing.T) {
	wantTree(t, `a.b.c`, `
CompilationUnit
  Statement
    MemberAccess 'c'
      MemberAccess 'b'
        Identifier 'a'
`)
}

func Test_Parser_PipeChain(t *testing.T) {
	wantTree(t, `data | clean | render`, `
CompilationUnit
  Statement
    Pipe '|'
      Pipe '|'
        Identifier 'data'
        Identifier 'clean'
      Identifier 'render'
`)
}

func Test_Parser_UnaryOperators(t *testing.T) {
	wantTree(t, `!a and ~b`, `
CompilationUnit
  Statement
    BinaryOp 'and'
      UnaryOp '!'
        Identifier 'a'
      UnaryOp '~'
        Identifier 'b'
`)
	// Unary minus binds tighter than **: -x ** 2 squares the negation.
	wantTree(t, `-x ** 2`, `
CompilationUnit
  Statement
    BinaryOp '**'
      UnaryOp '-'
        Identifier 'x'
      Literal '2'
`)
}

func Test_Parser_NestedBlocks(t *testing.T) {
	src := "fn outer:\n    if a:\n        b\n    c\n"
	wantTree(t, src, `
CompilationUnit
  Function 'outer'
    Arguments
    Block
      IfStatement 'if'
        Identifier 'a'
        Block
          Statement
            Identifier 'b'
      Statement
        Identifier 'c'
`)
}

func Test_Parser_MultipleStatements(t *testing.T) {
	wantTree(t, "a = 1\nb = 2\n", `
CompilationUnit
  Statement
    Operator '='
      Identifier 'a'
      Literal '1'
  Statement
    Operator '='
      Identifier 'b'
      Literal '2'
`)
}

func Test_Parser_MissingCloseParen(t *testing.T) {
	pe := parseErr(t, "f(x")
	if pe.Kind != ParseExpectedToken || pe.Expected != RPAREN || pe.Found != EOF {
		t.Fatalf("got kind=%d expected=%v found=%v", pe.Kind, pe.Expected, pe.Found)
	}
	if pe.Line != 1 || pe.Col != 4 {
		t.Fatalf("error at %d:%d, want 1:4", pe.Line, pe.Col)
	}
}

func Test_Parser_MissingColon(t *testing.T) {
	pe := parseErr(t, "if a\n    b\n")
	if pe.Kind != ParseExpectedToken || pe.Expected != COLON || pe.Found != NEWLINE {
		t.Fatalf("got kind=%d expected=%v found=%v", pe.Kind, pe.Expected, pe.Found)
	}
}

func Test_Parser_UnexpectedPrefixToken(t *testing.T) {
	pe := parseErr(t, "x = *")
	if pe.Kind != ParseUnexpectedPrefix || pe.Found != STAR {
		t.Fatalf("got kind=%d found=%v", pe.Kind, pe.Found)
	}
	if pe.Line != 1 || pe.Col != 5 {
		t.Fatalf("error at %d:%d, want 1:5", pe.Line, pe.Col)
	}
}

func Test_Parser_ErrorIsDeterministic(t *testing.T) {
	first := parseErr(t, "f(x")
	second := parseErr(t, "f(x")
	if *first != *second {
		t.Fatalf("same source produced different errors: %v vs %v", first, second)
	}
}
