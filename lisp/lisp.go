package lisp

import (
	"io"
	"os"
)

// DefaultMaxExpansions bounds the macro expansion steps of a single form.
const DefaultMaxExpansions = 10000

// Lisp is an interpreter instance. Builtins live in the root frame and
// everything the program defines goes into Env, a child of that root.
type Lisp struct {
	process *process
	Env     *Env
}

type Option func(*process)

// WithOutput redirects what print writes.
func WithOutput(w io.Writer) Option {
	return func(p *process) {
		p.out = w
	}
}

// WithMaxExpansions bounds macro expansion; 0 disables the bound.
func WithMaxExpansions(n int) Option {
	return func(p *process) {
		p.maxExpansions = n
	}
}

func New(opts ...Option) Lisp {
	p := &process{out: os.Stdout, maxExpansions: DefaultMaxExpansions}
	for _, opt := range opts {
		opt(p)
	}
	return Lisp{process: p, Env: GlobalEnv().push()}
}

// Eval reads every expression in input and evaluates them in order,
// returning the value of the last one. Empty input evaluates to ().
func (l Lisp) Eval(input string) (SExpression, error) {
	sexprs, err := Multiparse(input)
	if err != nil {
		return nil, err
	}
	var result SExpression = Empty
	for _, e := range sexprs {
		result, err = l.EvalExpr(e)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func (l Lisp) EvalExpr(e SExpression) (SExpression, error) {
	return l.process.evalEnv(l.Env, e)
}

// BuiltinOption tweaks a builtin registered with AddBuiltin.
type BuiltinOption func(*Builtin)

// Curry enables partial application of the builtin.
func Curry() BuiltinOption {
	return func(b *Builtin) {
		b.curry = true
	}
}

// SelfValidating skips the arity check; the body gets every argument.
func SelfValidating() BuiltinOption {
	return func(b *Builtin) {
		b.noValidate = true
	}
}

// AddBuiltin binds a Go function as a procedure in the program frame.
func (l Lisp) AddBuiltin(name string, arity Arity, f NativeProc, opts ...BuiltinOption) error {
	b := newBuiltin(name, arity, func(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
		return f(args, env, arity)
	})
	for _, opt := range opts {
		opt(b)
	}
	return l.Env.Define(NewSymbol(name), b)
}
