package quark

import (
	"fmt"
	"strings"
)

// EnableColor turns on ANSI colors in FormatTree and FormatTokens.
// REPL-only; tests leave this false.
var EnableColor = false

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorBlue  = "\033[34m"
)

func colorize(s, c string) string {
	if !EnableColor {
		return s
	}
	return c + s + colorReset
}
func blue(s string) string  { return colorize(s, colorBlue) }
func green(s string) string { return colorize(s, colorGreen) }

// FormatTree renders the AST as an indented tree, two spaces per
// level. With EnableColor set, node types print blue and lexemes
// green; the uncolored output is identical to AstNode.String.
func FormatTree(n *AstNode) string {
	var b strings.Builder
	writeTree(&b, n, 0)
	return b.String()
}

func writeTree(b *strings.Builder, n *AstNode, depth int) {
	if n == nil {
		return
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(blue(n.Type.String()))
	if lex := n.Lexeme(); lex != "" {
		b.WriteString(" ")
		b.WriteString(green("'" + lex + "'"))
	}
	b.WriteString("\n")
	for _, c := range n.Children {
		writeTree(b, c, depth+1)
	}
}

// FormatTokens renders one token per line with its position, the form
// the lex subcommand prints.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		fmt.Fprintf(&b, "%3d:%-3d %s", t.Line, t.Col, blue(t.Type.String()))
		if t.Lexeme != "" {
			fmt.Fprintf(&b, " %s", green("'"+t.Lexeme+"'"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
