package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	quark "github.com/amolbrkr/quark-lang"
)

const (
	appName     = "quark"
	historyFile = ".quark_history"
	promptMain  = ">> "
	promptCont  = ".. "
)

var banner = fmt.Sprintf("Quark %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", quark.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	switch cmd {
	case "lex":
		os.Exit(cmdLex(os.Args[2:]))
	case "parse":
		os.Exit(cmdParse(os.Args[2:]))
	case "viz":
		os.Exit(cmdViz(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(quark.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Quark %s (built %s)

Usage:
  %s lex <file.qk>                 Tokenize a file and print the tokens.
  %s parse <file.qk>               Parse a file and print the syntax tree.
  %s viz <file.qk> [-o out.png]    Render the syntax tree with graphviz.
  %s repl                          Start the REPL.
  %s version                       Print the compiled version.

`, quark.Version, quark.BuildDate, appName, appName, appName, appName, appName)
}

func readSource(cmd string, args []string) (name, src string, ok bool) {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s %s <file.qk>\n", appName, cmd)
		return "", "", false
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, args[0], err)
		return "", "", false
	}
	return filepath.Base(args[0]), string(data), true
}

// -----------------------------------------------------------------------------
// lex
// -----------------------------------------------------------------------------

func cmdLex(args []string) int {
	name, src, ok := readSource("lex", args)
	if !ok {
		return 2
	}
	toks, err := quark.Tokenize(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, quark.WrapErrorWithName(err, name, src).Error())
		return 1
	}
	fmt.Print(quark.FormatTokens(toks))
	return 0
}

// -----------------------------------------------------------------------------
// parse
// -----------------------------------------------------------------------------

func cmdParse(args []string) int {
	name, src, ok := readSource("parse", args)
	if !ok {
		return 2
	}
	ast, err := quark.ParseSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, quark.WrapErrorWithName(err, name, src).Error())
		return 1
	}
	fmt.Print(quark.FormatTree(ast))
	return 0
}

// -----------------------------------------------------------------------------
// viz
// -----------------------------------------------------------------------------

func cmdViz(args []string) int {
	fs := flag.NewFlagSet("viz", flag.ContinueOnError)
	out := fs.String("o", "ast.png", "output PNG path")
	dotOnly := fs.Bool("dot", false, "print DOT source instead of rendering")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	name, src, ok := readSource("viz", fs.Args())
	if !ok {
		return 2
	}
	ast, err := quark.ParseSource(src)
	if err != nil {
		fmt.Fprintln(os.Stderr, quark.WrapErrorWithName(err, name, src).Error())
		return 1
	}

	viz := quark.NewVisualizer()
	if *dotOnly {
		fmt.Print(viz.Visualize(ast))
		return 0
	}
	if err := viz.RenderPNG(ast, *out); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	fmt.Printf("wrote %s\n", *out)
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)
	quark.EnableColor = true

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readBlock(ln)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ast, err := quark.ParseSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(quark.WrapErrorWithSource(err, code).Error()))
			continue
		}
		fmt.Print(quark.FormatTree(ast))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// readBlock reads one input unit. A line that opens a block (ends in a
// colon, or leaves the parser wanting more tokens) switches to
// continuation mode, which runs until a blank line.
func readBlock(ln *liner.State) (string, bool) {
	var b strings.Builder
	multi := false

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			// Ctrl+C abort: discard the buffer.
			return "", true
		}

		if multi && strings.TrimSpace(line) == "" {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		if strings.HasSuffix(strings.TrimRight(line, " \t"), ":") || wantsMore(b.String()) {
			multi = true
		}
		if multi {
			continue
		}
		return b.String(), true
	}
}

// wantsMore reports whether src fails to parse only because input
// ended, meaning another line could complete it.
func wantsMore(src string) bool {
	_, err := quark.ParseSource(src)
	var pe *quark.ParseError
	if errors.As(err, &pe) {
		return pe.Found == quark.EOF
	}
	return false
}
