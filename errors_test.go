// errors_test.go
package quark

import (
	"errors"
	"strings"
	"testing"
)

func Test_WrapError_ParseSnippet(t *testing.T) {
	src := "a = 1\nf(x\nb = 2\n"
	_, err := ParseSource(src)
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	wrapped := WrapErrorWithSource(err, src)
	msg := wrapped.Error()

	for _, want := range []string{
		"PARSE ERROR at 2:4",
		"   1 | a = 1",
		"   2 | f(x",
		"     |    ^",
		"   3 | b = 2",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("snippet missing %q:\n%s", want, msg)
		}
	}
}

func Test_WrapError_LexSnippet(t *testing.T) {
	src := "x = 'never closed"
	_, err := Tokenize(src)
	if err == nil {
		t.Fatalf("expected a lex error")
	}
	msg := WrapErrorWithName(err, "demo.qk", src).Error()
	if !strings.Contains(msg, "LEXICAL ERROR in demo.qk at 1:5: unterminated string") {
		t.Fatalf("unexpected header:\n%s", msg)
	}
	if !strings.Contains(msg, "     |     ^") {
		t.Fatalf("caret not under the opening quote:\n%s", msg)
	}
}

func Test_WrapError_PassesOtherErrorsThrough(t *testing.T) {
	orig := errors.New("disk on fire")
	if got := WrapErrorWithSource(orig, "x"); got != orig {
		t.Fatalf("foreign error was rewritten: %v", got)
	}
}
