package prelude

import (
	"testing"

	"github.com/deosjr/tlisp/lisp"
)

func TestPrelude(t *testing.T) {
	l := lisp.New()
	if err := Load(l); err != nil {
		t.Fatal(err)
	}
	for i, tt := range []struct {
		input string
		want  string
	}{
		{input: "(if t 1 2)", want: "1"},
		{input: "(if f 1 2)", want: "2"},
		{input: "(if '() 1 2)", want: "1"},
		{input: "(not f)", want: "t"},
		{input: "(not '())", want: "f"},
		{input: "(null? '())", want: "t"},
		{input: "(and)", want: "t"},
		{input: "(and 1 2)", want: "2"},
		{input: "(and 1 f 2)", want: "f"},
		{input: "(and f undefined)", want: "f"},
		{input: "(or)", want: "f"},
		{input: "(or f 3)", want: "3"},
		{input: "(or f f)", want: "f"},
		{input: "(or 1 undefined)", want: "1"},
		{input: "(let ((x 1) (y 2)) (add x y))", want: "3"},
		{input: "(let () 5)", want: "5"},
		{input: "(begin 1 2 3)", want: "3"},
		{input: "(begin)", want: "()"},
		{input: "(begin (define z 4) (mult z z))", want: "16"},
		{input: "(when t 1 2)", want: "2"},
		{input: "(when f 1)", want: "()"},
		{input: "(unless f 5)", want: "5"},
		{input: "(length '(1 2 3))", want: "3"},
		{input: "(length '())", want: "0"},
		{input: "(reverse '(1 2 3))", want: "(3 2 1)"},
		{input: "(filter (lambda (x) (gt x 1)) '(1 2 3))", want: "(2 3)"},
		{input: "((filter (lambda (x) (lt x 2))) '(1 2 3))", want: "(1)"},
		{input: "(last '(1 2 3))", want: "3"},
		{input: "(nth 1 '(a b c))", want: "b"},
		{input: `(equal? '(1 (2 "x")) '(1 (2 "x")))`, want: "t"},
		{input: "(equal? '(1) '(2))", want: "f"},
		{input: "((compose (add 1) (mult 2)) 5)", want: "11"},
		{input: "((compose) 5)", want: "5"},
	} {
		e, err := l.Eval(tt.input)
		if err != nil {
			t.Errorf("%d) eval error %v", i, err)
			continue
		}
		got := e.String()
		if got != tt.want {
			t.Errorf("%d) got %s want %s", i, got, tt.want)
		}
	}
}

func TestTailCallThroughMacros(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	l := lisp.New()
	if err := Load(l); err != nil {
		t.Fatal(err)
	}
	e, err := l.Eval(`(define count (lambda (n) (if (eq? n 0) 'done (count (sub n 1)))))
                      (count 100000)`)
	if err != nil {
		t.Fatal(err)
	}
	if e.String() != "done" {
		t.Errorf("got %s want done", e)
	}
}
