package quark

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Visualizer renders an AST as a Graphviz digraph. Each node becomes a
// box labeled with its type and lexeme, with edges from parent to
// child.
type Visualizer struct {
	b       strings.Builder
	counter int
}

// NewVisualizer creates an empty visualizer. It can be reused; each
// Visualize call starts fresh.
func NewVisualizer() *Visualizer {
	return &Visualizer{}
}

// Visualize returns the DOT source for the tree rooted at root.
func (v *Visualizer) Visualize(root *AstNode) string {
	v.b.Reset()
	v.counter = 0

	v.b.WriteString("digraph AST {\n")
	v.b.WriteString("    node [shape=box];\n")
	v.b.WriteString("    rankdir=TB;\n")
	v.visit(root, -1)
	v.b.WriteString("}\n")
	return v.b.String()
}

func (v *Visualizer) visit(n *AstNode, parent int) {
	id := v.counter
	v.counter++

	fmt.Fprintf(&v.b, "    node%d [label=\"%s\"];\n", id, escapeLabel(nodeLabel(n)))
	if parent >= 0 {
		fmt.Fprintf(&v.b, "    node%d -> node%d;\n", parent, id)
	}
	for _, c := range n.Children {
		v.visit(c, id)
	}
}

func nodeLabel(n *AstNode) string {
	if lex := n.Lexeme(); lex != "" {
		return n.Type.String() + "\n'" + lex + "'"
	}
	return n.Type.String()
}

func escapeLabel(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// RenderPNG writes the tree to path as a PNG by piping DOT source
// through the graphviz `dot` binary, which must be on PATH.
func (v *Visualizer) RenderPNG(root *AstNode, path string) error {
	dot := v.Visualize(root)
	cmd := exec.Command("dot", "-Tpng", "-o", path)
	cmd.Stdin = strings.NewReader(dot)
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}
	return nil
}
