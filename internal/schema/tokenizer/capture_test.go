package tokenizer

import (
	"errors"
	"strings"
	"testing"
)

func openParenOffset(t *testing.T, src string) int {
	t.Helper()
	i := 0
	for ; i < len(src); i++ {
		if src[i] == '(' {
			return i
		}
	}
	t.Fatalf("no '(' found in %q", src)
	return -1
}

func TestCaptureParenExpressionSimple(t *testing.T) {
	src := "CHECK (price > 0)"
	open := openParenOffset(t, src)
	expr, end, err := CaptureParenExpression([]byte(src), open)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "price > 0" {
		t.Fatalf("expr = %q, want %q", expr, "price > 0")
	}
	if end != len(src) {
		t.Fatalf("end = %d, want %d", end, len(src))
	}
}

func TestCaptureParenExpressionNested(t *testing.T) {
	src := "CHECK ((a + (b - c)) > 0) rest"
	open := openParenOffset(t, src)
	expr, end, err := CaptureParenExpression([]byte(src), open)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "(a + (b - c)) > 0" {
		t.Fatalf("expr = %q", expr)
	}
	if src[end:] != " rest" {
		t.Fatalf("remainder = %q, want %q", src[end:], " rest")
	}
}

func TestCaptureParenExpressionIgnoresParensInQuotes(t *testing.T) {
	src := `CHECK (name != '(not a paren)')`
	open := openParenOffset(t, src)
	expr, _, err := CaptureParenExpression([]byte(src), open)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != `name != '(not a paren)'` {
		t.Fatalf("expr = %q", expr)
	}
}

func TestCaptureParenExpressionIgnoresParensInComments(t *testing.T) {
	src := "CHECK (a > 0 /* ) still open */ AND b < 1)"
	open := openParenOffset(t, src)
	expr, _, err := CaptureParenExpression([]byte(src), open)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expr != "a > 0 /* ) still open */ AND b < 1" {
		t.Fatalf("expr = %q", expr)
	}
}

func TestCaptureParenExpressionUnterminated(t *testing.T) {
	src := "CHECK (a > 0"
	open := openParenOffset(t, src)
	_, _, err := CaptureParenExpression([]byte(src), open)
	if err == nil {
		t.Fatal("expected an error for unterminated expression")
	}
}

func TestCaptureParenExpressionNestingTooDeep(t *testing.T) {
	var b strings.Builder
	b.WriteString("CHECK (")
	for i := 0; i <= MaxParenNestingDepth; i++ {
		b.WriteByte('(')
	}
	for i := 0; i <= MaxParenNestingDepth; i++ {
		b.WriteByte(')')
	}
	b.WriteByte(')')
	src := b.String()

	open := openParenOffset(t, src)
	_, _, err := CaptureParenExpression([]byte(src), open)
	if !errors.Is(err, ErrNestingTooDeep) {
		t.Fatalf("err = %v, want ErrNestingTooDeep", err)
	}
}
