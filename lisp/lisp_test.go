package lisp

import (
	"io"
	"testing"
)

func newTestProcess() *process {
	return &process{out: io.Discard, maxExpansions: DefaultMaxExpansions}
}

// parse reads the first expression of program.
func parse(program string) (SExpression, error) {
	list, err := Multiparse(program)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, incompletef("no expression to read")
	}
	return list[0], nil
}

func TestLisp(t *testing.T) {
	// NOTE: one shared env for the whole table, meaning order matters here!
	main := newTestProcess()
	env := GlobalEnv().push()
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(define r 10)",
			want:  "r",
		},
		{
			input: "(mult 3 (mult r r))",
			want:  "300",
		},
		{
			input: "(cond ((gt (mult 11 11) 120) (mult 7 6)) (t oops))",
			want:  "42",
		},
		{
			input: "(define circle-area (lambda (r) (mult 3 (mult r r))))",
			want:  "circle-area",
		},
		{
			input: "(circle-area 3)",
			want:  "27",
		},
		{
			input: "(quote quoted)",
			want:  "quoted",
		},
		{
			input: "'quoted",
			want:  "quoted",
		},
		{
			input: "''quoted",
			want:  "'quoted",
		},
		{
			input: "(car (quote (1 2 3)))",
			want:  "1",
		},
		{
			input: "(cdr (quote (1 2 3)))",
			want:  "(2 3)",
		},
		{
			input: "(car '())",
			want:  "()",
		},
		{
			input: `(define fact
            (lambda (n)
                (cond ((lte n 1) 1) (t (mult n (fact (sub n 1)))))))`,
			want: "fact",
		},
		{
			input: "(fact 10)",
			want:  "3628800",
		},
		{
			input: "(define twice (lambda (x) (mult 2 x)))",
			want:  "twice",
		},
		{
			input: "(twice 5)",
			want:  "10",
		},
		{
			input: "(define repeat (lambda (f) (lambda (x) (f (f x)))))",
			want:  "repeat",
		},
		{
			input: "((repeat twice) 10)",
			want:  "40",
		},
		{
			input: "((repeat (repeat twice)) 10)",
			want:  "160",
		},
		{
			input: "((repeat (repeat (repeat (repeat twice)))) 10)",
			want:  "655360",
		},
		{
			input: `((lambda (a b) (cond ((num=? a 4) 6)
                          ((num=? b 4) (add 6 7))
                          (t 25))) 1 4)`,
			want: "13",
		},
		{
			input: "(cond ((add 1 1)))",
			want:  "2",
		},
		{
			input: "(cond (f 1))",
			want:  "f",
		},
		{
			input: "(cons 1 (quote (2 3)))",
			want:  "(1 2 3)",
		},
		{
			input: "(cons 1 2)",
			want:  "(1 . 2)",
		},
		{
			input: "(cons 1 (cons 1 2))",
			want:  "(1 1 . 2)",
		},
		{
			input: "'()",
			want:  "()",
		},
		{
			input: `"hello"`,
			want:  `"hello"`,
		},
		{
			input: "(lambda (x) x)",
			want:  "<procedure>",
		},
		{
			input: "fact",
			want:  "<procedure:fact>",
		},
		{
			input: "(macro (x) x)",
			want:  "<macro>",
		},
	} {
		p, err := parse(tt.input)
		if err != nil {
			t.Errorf("%d) parse error %v", i, err)
			continue
		}
		e, err := main.evalEnv(env, p)
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

func TestProcedures(t *testing.T) {
	l := New(WithOutput(io.Discard))
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "((lambda xs xs) 1 2 3)",
			want:  "(1 2 3)",
		},
		{
			input: "((lambda xs xs))",
			want:  "()",
		},
		{
			input: "((lambda (a . rest) rest) 1 2 3)",
			want:  "(2 3)",
		},
		{
			input: "((lambda (a . rest) rest) 1)",
			want:  "()",
		},
		{
			input: "(define g (lambda (n) (cond ((eq? n 0) 0) (t (g (sub n 1))))))",
			want:  "g",
		},
		{
			input: "(g 5)",
			want:  "0",
		},
		{
			input: "(define add3 (curry (lambda (a b c) (add a (add b c)))))",
			want:  "add3",
		},
		{
			input: "(((add3 1) 2) 3)",
			want:  "6",
		},
		{
			input: "((add3 1 2) 3)",
			want:  "6",
		},
		{
			input: "(add3 1 2 3)",
			want:  "6",
		},
		{
			input: "(add3 1)",
			want:  "<procedure:add3:(1)>",
		},
		{
			input: "(add 1)",
			want:  "<procedure:add:(1)>",
		},
		{
			input: "((add 1) 2)",
			want:  "3",
		},
		{
			input: "(procedure-arity (add 1))",
			want:  "(1 1)",
		},
		{
			input: "(procedure-orig-arity (add 1))",
			want:  "(2 2)",
		},
		{
			input: "(procedure-arity list)",
			want:  "(0 Infinity)",
		},
		{
			input: "(procedure-arity (lambda (a b . c) a))",
			want:  "(2 Infinity)",
		},
		{
			input: `(procedure-name (rename-procedure "plus" add))`,
			want:  `"plus"`,
		},
		{
			input: "(procedure-name add)",
			want:  `"add"`,
		},
		{
			input: "(map (add 1) '(1 2 3))",
			want:  "(2 3 4)",
		},
		{
			input: "(map (lambda (x) (mult x x)) '())",
			want:  "()",
		},
		{
			input: "(reduce add 0 '(1 2 3))",
			want:  "6",
		},
		{
			input: "(reduce (lambda (acc x) (cons x acc)) '() '(1 2 3))",
			want:  "(3 2 1)",
		},
		{
			input: "(reduce-right cons '() '(1 2 3))",
			want:  "(1 2 3)",
		},
		{
			input: "(apply add '(1 2))",
			want:  "3",
		},
		{
			input: "(apply list '())",
			want:  "()",
		},
		{
			input: "(lambda? car)",
			want:  "f",
		},
		{
			input: "(lambda? g)",
			want:  "t",
		},
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

func TestMacros(t *testing.T) {
	l := New(WithOutput(io.Discard))
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(define m (macro (a b) (list 'add a b)))",
			want:  "m",
		},
		{
			input: "(m 1 2)",
			want:  "3",
		},
		{
			input: "(macroexpand-1 '(m 1 2))",
			want:  "(add 1 2)",
		},
		{
			input: "(macroexpand '(m (m 1 2) 3))",
			want:  "(add (m 1 2) 3)",
		},
		{
			input: "(define m2 (macro (a b) `(add ,a ,b)))",
			want:  "m2",
		},
		{
			input: "(m2 1 2)",
			want:  "3",
		},
		{
			input: "(macro? m)",
			want:  "t",
		},
		{
			input: "m",
			want:  "<macro:m>",
		},
		{
			input: "(define swap (macro (a b) `(list ,b ,a)))",
			want:  "swap",
		},
		{
			input: "(swap 1 2)",
			want:  "(2 1)",
		},
		{
			input: "(define unless-zero (to-macro (lambda (n body) `(cond ((eq? ,n 0) 'zero) (t ,body)))))",
			want:  "unless-zero",
		},
		{
			input: "(unless-zero 0 undefined-symbol)",
			want:  "zero",
		},
		{
			input: "(unless-zero 1 'fine)",
			want:  "fine",
		},
		{
			input: "((macro (x) x) (add 2 2))",
			want:  "4",
		},
		{
			input: "(macroexpand-1 '(add 1 2))",
			want:  "(add 1 2)",
		},
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

func TestQuasiquote(t *testing.T) {
	l := New(WithOutput(io.Discard))
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(define xs '(2 3))",
			want:  "xs",
		},
		{
			input: "`(1 ,@xs 4)",
			want:  "(1 2 3 4)",
		},
		{
			input: "`(1 ,@(list 2 3) 4)",
			want:  "(1 2 3 4)",
		},
		{
			input: "`(a ,(add 1 2))",
			want:  "(a 3)",
		},
		{
			input: "`(1 . ,(add 1 1))",
			want:  "(1 . 2)",
		},
		{
			input: "`(,@xs)",
			want:  "(2 3)",
		},
		{
			input: "`(1 ,@'() 2)",
			want:  "(1 2)",
		},
		{
			input: "`x",
			want:  "x",
		},
		{
			input: "`(nested (list ,(car xs)))",
			want:  "(nested (list 2))",
		},
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

func TestTailRecursion(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}
	l := New(WithOutput(io.Discard))
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(define sum-to (lambda (n acc) (cond ((eq? n 0) acc) (t (sum-to (sub n 1) (add n acc))))))",
			want:  "sum-to",
		},
		{
			input: "(sum-to 100000 0)",
			want:  "5000050000",
		},
		{
			input: "(define depth-at (lambda (n) (cond ((eq? n 0) (environment-depth)) (t (depth-at (sub n 1))))))",
			want:  "depth-at",
		},
		{
			// frames do not pile up across tail calls
			input: "(eq? (depth-at 10) (depth-at 100000))",
			want:  "t",
		},
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

func TestAddBuiltin(t *testing.T) {
	l := New(WithOutput(io.Discard))
	err := l.AddBuiltin("first-of", Arity{1, Unbounded}, func(args SExpression, env *Env, arity Arity) (SExpression, error) {
		return args.(*Cons).Car(), nil
	})
	if err != nil {
		t.Fatal(err)
	}
	err = l.AddBuiltin("pair", Arity{2, 2}, func(args SExpression, env *Env, arity Arity) (SExpression, error) {
		return args, nil
	}, Curry())
	if err != nil {
		t.Fatal(err)
	}
	err = l.AddBuiltin("count", Arity{1, 1}, func(args SExpression, env *Env, arity Arity) (SExpression, error) {
		return Number(UnsafeLength(args)), nil
	}, SelfValidating())
	if err != nil {
		t.Fatal(err)
	}
	for i, tt := range []struct {
		input string
		want  string
	}{
		{
			input: "(first-of 1 2 3)",
			want:  "1",
		},
		{
			input: "((pair 1) 2)",
			want:  "(1 2)",
		},
		{
			input: "(count 1 2 3)",
			want:  "3",
		},
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
	if err := l.AddBuiltin("pair", Arity{0, 0}, nil); err == nil {
		t.Error("expected an error binding pair twice")
	}
}

func TestEvalEmpty(t *testing.T) {
	l := New()
	e, err := l.Eval("  ; nothing here\n")
	if err != nil {
		t.Fatal(err)
	}
	if e != Empty {
		t.Errorf("got %s want ()", e)
	}
}
