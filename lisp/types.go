package lisp

import "math"

// SExpression is any value the evaluator operates on.
// The set of implementations is closed: Symbol, Number, String,
// the empty list, Cons, Lambda and Builtin.
type SExpression interface {
	String() string
	sexpression()
}

type Number float64

type String string

type emptyList struct{}

// Empty is the empty list, the terminator of every proper list.
var Empty SExpression = emptyList{}

func (Number) sexpression()    {}
func (String) sexpression()    {}
func (emptyList) sexpression() {}
func (*Symbol) sexpression()   {}
func (*Cons) sexpression()     {}
func (*Lambda) sexpression()   {}
func (*Builtin) sexpression()  {}

// Unbounded is the maximum of a variadic arity.
const Unbounded = math.MaxInt

// Arity is the inclusive [Min, Max] range of accepted argument counts.
type Arity struct {
	Min, Max int
}

// Procedure is implemented by Lambda and Builtin.
type Procedure interface {
	SExpression
	Name() string
	Arity() Arity
	// Curried reports whether partial application is enabled and
	// the arguments supplied so far.
	Curried() (bool, []SExpression)
	withCurried(args []SExpression) Procedure
}

type procedure struct {
	name    string
	arity   Arity
	curry   bool
	curried []SExpression
}

func (p *procedure) Name() string { return p.name }

func (p *procedure) Arity() Arity { return p.arity }

func (p *procedure) Curried() (bool, []SExpression) { return p.curry, p.curried }

// CurrentArity is the arity left after curried arguments are taken into account.
func CurrentArity(proc Procedure) Arity {
	curry, curried := proc.Curried()
	a := proc.Arity()
	if !curry {
		return a
	}
	if a.Max == Unbounded {
		return Arity{Min: 1, Max: Unbounded}
	}
	return Arity{Min: 1, Max: a.Max - len(curried)}
}

type param struct {
	sym      *Symbol
	variadic bool
}

// Lambda is a procedure defined in lisp, either with lambda or macro.
type Lambda struct {
	procedure
	params []param
	body   SExpression
	env    *Env
	macro  bool
}

func (l *Lambda) IsMacro() bool { return l.macro }

func (l *Lambda) withCurried(args []SExpression) Procedure {
	c := *l
	c.curry = true
	c.curried = args
	return &c
}

// builtinProc is the body of a builtin with access to the evaluator.
type builtinProc func(p *process, env *Env, args SExpression, arity Arity) (SExpression, error)

// NativeProc is the body of a primitive registered from Go.
// args is the argument list, already checked against arity.
type NativeProc func(args SExpression, env *Env, arity Arity) (SExpression, error)

// Builtin is a procedure implemented in Go.
type Builtin struct {
	procedure
	body builtinProc
	// noValidate builtins check their own arguments
	noValidate bool
}

func (b *Builtin) withCurried(args []SExpression) Procedure {
	c := *b
	c.curry = true
	c.curried = args
	return &c
}

func isFalse(e SExpression) bool {
	return e == SymF
}

func boolean(b bool) SExpression {
	if b {
		return SymT
	}
	return SymF
}

// TypeName is the name typeof reports for e.
func TypeName(e SExpression) string {
	switch e.(type) {
	case *Cons:
		return "pair"
	case emptyList:
		return "unit"
	case *Lambda, *Builtin:
		return "procedure"
	case String:
		return "string"
	case Number:
		return "number"
	case *Symbol:
		return "symbol"
	}
	return "unknown"
}
