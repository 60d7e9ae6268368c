package lisp

import (
	"fmt"
	"math"
	"strconv"
)

// GlobalEnv returns a root frame holding every builtin.
func GlobalEnv() *Env {
	env := newRootEnv()
	env.dict[SymT] = SymT
	env.dict[SymF] = SymF
	env.dict[NewSymbol("Infinity")] = Number(math.Inf(1))
	env.dict[NewSymbol("-Infinity")] = Number(math.Inf(-1))
	for _, b := range []*Builtin{
		// typecheck and equality
		newBuiltin("typeof", fixed(1), typeOf),
		curried(newBuiltin("eq?", fixed(2), isEq)),
		// numbers
		binaryOp("add", func(a, b float64) SExpression { return Number(a + b) }),
		binaryOp("sub", func(a, b float64) SExpression { return Number(a - b) }),
		binaryOp("mult", func(a, b float64) SExpression { return Number(a * b) }),
		binaryOp("div", func(a, b float64) SExpression { return Number(a / b) }),
		binaryOp("modulo", func(a, b float64) SExpression { return Number(math.Mod(a, b)) }),
		binaryOp("expt", func(a, b float64) SExpression { return Number(math.Pow(a, b)) }),
		unaryOp("sqrt", math.Sqrt),
		unaryOp("floor", math.Floor),
		unaryOp("ceiling", math.Ceil),
		unaryOp("truncate", math.Trunc),
		unaryOp("round", func(x float64) float64 { return math.Floor(x + 0.5) }),
		unaryOp("sin", math.Sin),
		unaryOp("cos", math.Cos),
		unaryOp("tan", math.Tan),
		unaryOp("asin", math.Asin),
		unaryOp("acos", math.Acos),
		unaryOp("atan", math.Atan),
		unaryOp("log", math.Log),
		unaryOp("exp", math.Exp),
		binaryOp("gt", func(a, b float64) SExpression { return boolean(a > b) }),
		binaryOp("lt", func(a, b float64) SExpression { return boolean(a < b) }),
		binaryOp("lte", func(a, b float64) SExpression { return boolean(a <= b) }),
		binaryOp("gte", func(a, b float64) SExpression { return boolean(a >= b) }),
		binaryOp("num=?", func(a, b float64) SExpression { return boolean(a == b) }),
		predicate("nan?", func(x SExpression) (bool, error) {
			n, err := numberArg("nan?", x)
			return math.IsNaN(n), err
		}),
		predicate("infinite?", func(x SExpression) (bool, error) {
			n, err := numberArg("infinite?", x)
			return math.IsInf(n, 0) || math.IsNaN(n), err
		}),
		predicate("integer?", func(x SExpression) (bool, error) {
			n, ok := x.(Number)
			return ok && isInteger(float64(n)), nil
		}),
		predicate("natural?", func(x SExpression) (bool, error) {
			n, ok := x.(Number)
			return ok && isInteger(float64(n)) && n >= 0, nil
		}),
		newBuiltin("number->string", Arity{1, 2}, number2string),
		newBuiltin("string->number", Arity{1, 2}, string2number),
		// strings
		curried(newBuiltin("str-concat", fixed(2), strConcat)),
		newBuiltin("str", fixed(1), str),
		// lists
		newBuiltin("cons", fixed(2), cons),
		newBuiltin("car", fixed(1), car),
		newBuiltin("cdr", fixed(1), cdr),
		newBuiltin("list", Arity{0, Unbounded}, list),
		newBuiltin("list*", Arity{2, Unbounded}, listStar),
		newBuiltin("append", Arity{0, Unbounded}, appendLists),
		predicate("list?", func(x SExpression) (bool, error) { return IsProperList(x), nil }),
		curried(newBuiltin("map", fixed(2), mapList)),
		curried(newBuiltin("reduce", fixed(3), reduceList)),
		curried(newBuiltin("reduce-right", fixed(3), reduceRightList)),
		newBuiltin("apply", fixed(2), apply),
		// symbols
		predicate("symbol-interned?", func(x SExpression) (bool, error) {
			s, ok := x.(*Symbol)
			if !ok {
				return false, typeErrorf("expected symbol?, given %s", x)
			}
			return s.Interned(), nil
		}),
		newBuiltin("string->symbol", fixed(1), string2symbol),
		newBuiltin("string->uninterned-symbol", fixed(1), string2uninterned),
		newBuiltin("gensym", Arity{0, 1}, gensymFunc),
		// interpreter
		newBuiltin("print", fixed(1), display),
		newBuiltin("exit", Arity{0, 1}, exit),
		newBuiltin("read/string", fixed(1), readString),
		newBuiltin("eval", fixed(1), eval),
		newBuiltin("macroexpand", fixed(1), macroexpand),
		newBuiltin("macroexpand-1", fixed(1), macroexpand1),
		newBuiltin("environment-depth", fixed(0), environmentDepth),
		newBuiltin("throw", fixed(1), throw),
		// procedures
		predicate("lambda?", func(x SExpression) (bool, error) {
			_, ok := x.(*Lambda)
			return ok, nil
		}),
		predicate("macro?", func(x SExpression) (bool, error) {
			l, ok := x.(*Lambda)
			return ok && l.IsMacro(), nil
		}),
		newBuiltin("procedure-arity", fixed(1), procedureArity),
		newBuiltin("procedure-orig-arity", fixed(1), procedureOrigArity),
		newBuiltin("procedure-name", fixed(1), procedureName),
		curried(newBuiltin("rename-procedure", fixed(2), renameProcedure)),
		newBuiltin("curry", fixed(1), curry),
		newBuiltin("to-macro", fixed(1), toMacro),
	} {
		env.dict[NewSymbol(b.name)] = b
	}
	return env
}

func fixed(n int) Arity {
	return Arity{n, n}
}

func newBuiltin(name string, arity Arity, f builtinProc) *Builtin {
	return &Builtin{procedure: procedure{name: name, arity: arity}, body: f}
}

func curried(b *Builtin) *Builtin {
	b.curry = true
	return b
}

func numberArg(name string, x SExpression) (float64, error) {
	n, ok := x.(Number)
	if !ok {
		return 0, typeErrorf("%s: expected number, given %s", name, x)
	}
	return float64(n), nil
}

func stringArg(name string, x SExpression) (string, error) {
	s, ok := x.(String)
	if !ok {
		return "", typeErrorf("%s: expected string, given %s", name, x)
	}
	return string(s), nil
}

func procedureArg(name string, x SExpression) (Procedure, error) {
	f, ok := x.(Procedure)
	if !ok {
		return nil, typeErrorf("%s: expected procedure, given %s", name, x)
	}
	return f, nil
}

func isInteger(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}

func binaryOp(name string, f func(a, b float64) SExpression) *Builtin {
	return curried(newBuiltin(name, fixed(2), func(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
		xs := ToSlice(args)
		a, err := numberArg(name, xs[0])
		if err != nil {
			return nil, err
		}
		b, err := numberArg(name, xs[1])
		if err != nil {
			return nil, err
		}
		return f(a, b), nil
	}))
}

func unaryOp(name string, f func(float64) float64) *Builtin {
	return newBuiltin(name, fixed(1), func(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
		a, err := numberArg(name, args.(*Cons).car)
		if err != nil {
			return nil, err
		}
		return Number(f(a)), nil
	})
}

func predicate(name string, f func(SExpression) (bool, error)) *Builtin {
	return newBuiltin(name, fixed(1), func(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
		ok, err := f(args.(*Cons).car)
		if err != nil {
			return nil, err
		}
		return boolean(ok), nil
	})
}

func typeOf(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return String(TypeName(args.(*Cons).car)), nil
}

// eq? compares by identity; numbers and strings by value.
func isEq(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	return boolean(xs[0] == xs[1]), nil
}

// (number->string n [radix])
func number2string(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	n, err := numberArg("number->string", xs[0])
	if err != nil {
		return nil, err
	}
	if len(xs) == 1 {
		return String(Number(n).String()), nil
	}
	radix, err := numberArg("number->string", xs[1])
	if err != nil {
		return nil, err
	}
	if radix < 2 || radix > 36 || !isInteger(radix) {
		return nil, typeErrorf("number->string: radix argument must be between 2 and 36")
	}
	if radix == 10 {
		return String(Number(n).String()), nil
	}
	if !isInteger(n) {
		return nil, typeErrorf("number->string: %s cannot be written in radix %d", Number(n), int(radix))
	}
	return String(strconv.FormatInt(int64(n), int(radix))), nil
}

// (string->number s [radix]) returns NaN when s is not a number.
func string2number(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	s, err := stringArg("string->number", xs[0])
	if err != nil {
		return nil, err
	}
	radix := 10.0
	if len(xs) == 2 {
		radix, err = numberArg("string->number", xs[1])
		if err != nil {
			return nil, err
		}
	}
	if radix == 10 {
		switch s {
		case "Infinity":
			return Number(math.Inf(1)), nil
		case "-Infinity":
			return Number(math.Inf(-1)), nil
		}
		f, ok := parseNumber(s)
		if !ok {
			return Number(math.NaN()), nil
		}
		return Number(f), nil
	}
	if radix < 2 || radix > 36 || !isInteger(radix) {
		return nil, typeErrorf("string->number: radix argument must be between 2 and 36")
	}
	i, err := strconv.ParseInt(s, int(radix), 64)
	if err != nil {
		return Number(math.NaN()), nil
	}
	return Number(i), nil
}

func strConcat(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	a, err := stringArg("str-concat", xs[0])
	if err != nil {
		return nil, err
	}
	b, err := stringArg("str-concat", xs[1])
	if err != nil {
		return nil, err
	}
	return String(a + b), nil
}

func str(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return String(args.(*Cons).car.String()), nil
}

func cons(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	return NewCons(xs[0], xs[1]), nil
}

func car(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return Car(args.(*Cons).car)
}

func cdr(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return Cdr(args.(*Cons).car)
}

// the argument list is already a fresh proper list
func list(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return args, nil
}

// (list* a b ... tail)
func listStar(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	return FromSlice(xs[:len(xs)-1], xs[len(xs)-1]), nil
}

func appendLists(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return Append(ToSlice(args)...)
}

// (map f list)
func mapList(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	f, err := procedureArg("map", xs[0])
	if err != nil {
		return nil, err
	}
	return Map(xs[1], func(x SExpression) (SExpression, error) {
		return p.apply(env, f, NewList(x))
	})
}

// (reduce f init list) calls (f acc x) from the left.
func reduceList(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	f, err := procedureArg("reduce", xs[0])
	if err != nil {
		return nil, err
	}
	return Reduce(xs[2], xs[1], func(acc, x SExpression) (SExpression, error) {
		return p.apply(env, f, NewList(acc, x))
	})
}

// (reduce-right f init list) calls (f x acc) from the right.
func reduceRightList(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	f, err := procedureArg("reduce-right", xs[0])
	if err != nil {
		return nil, err
	}
	return ReduceRight(xs[2], xs[1], func(x, acc SExpression) (SExpression, error) {
		return p.apply(env, f, NewList(x, acc))
	})
}

// (apply f args)
func apply(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	f, err := procedureArg("apply", xs[0])
	if err != nil {
		return nil, err
	}
	if !IsProperList(xs[1]) {
		return nil, typeErrorf("apply: %s is not a list", xs[1])
	}
	return p.apply(env, f, xs[1])
}

func string2symbol(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	s, err := stringArg("string->symbol", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return NewSymbol(s), nil
}

func string2uninterned(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	s, err := stringArg("string->uninterned-symbol", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return NewUninternedSymbol(s), nil
}

// (gensym [prefix])
func gensymFunc(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	prefix := "g"
	if c, ok := args.(*Cons); ok {
		s, err := stringArg("gensym", c.car)
		if err != nil {
			return nil, err
		}
		prefix = s
	}
	sym := NewUninternedSymbol(fmt.Sprintf("%s%d", prefix, p.gensym))
	p.gensym++
	return sym, nil
}

func display(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	x := args.(*Cons).car
	if _, err := fmt.Fprintln(p.out, x); err != nil {
		return nil, err
	}
	return x, nil
}

// (exit [code]) leaves terminating the process to the caller.
// code is an exit status, an integer in [0, 255].
func exit(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	code := 0.0
	if c, ok := args.(*Cons); ok {
		n, err := numberArg("exit", c.car)
		if err != nil {
			return nil, err
		}
		if !isInteger(n) || n < 0 || n > 255 {
			return nil, typeErrorf("exit: expected an integer between 0 and 255, given %s", Number(n))
		}
		code = n
	}
	return nil, &ExitError{Code: int(code)}
}

func readString(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	s, err := stringArg("read/string", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	sexprs, err := Multiparse(s)
	if err != nil {
		return nil, err
	}
	if len(sexprs) == 1 {
		return sexprs[0], nil
	}
	return NewList(sexprs...), nil
}

// (eval expression) evaluates in the calling environment.
func eval(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return p.evalEnv(env, args.(*Cons).car)
}

func macroexpand(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return p.macroExpand(env, args.(*Cons).car)
}

func macroexpand1(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	e, _, err := p.macroExpand1(env, args.(*Cons).car)
	return e, err
}

func environmentDepth(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	return Number(env.Depth()), nil
}

func throw(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	msg, err := stringArg("throw", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return nil, newError(UserError, "%s", msg)
}

func arityList(a Arity) SExpression {
	max := Number(a.Max)
	if a.Max == Unbounded {
		max = Number(math.Inf(1))
	}
	return NewList(Number(a.Min), max)
}

func procedureArity(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	f, err := procedureArg("procedure-arity", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return arityList(CurrentArity(f)), nil
}

func procedureOrigArity(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	f, err := procedureArg("procedure-orig-arity", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return arityList(f.Arity()), nil
}

func procedureName(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	f, err := procedureArg("procedure-name", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	return String(f.Name()), nil
}

// (rename-procedure name f) returns a renamed copy of f.
func renameProcedure(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	xs := ToSlice(args)
	name, err := stringArg("rename-procedure", xs[0])
	if err != nil {
		return nil, err
	}
	f, err := procedureArg("rename-procedure", xs[1])
	if err != nil {
		return nil, err
	}
	switch v := f.(type) {
	case *Lambda:
		c := *v
		c.name = name
		return &c, nil
	case *Builtin:
		c := *v
		c.name = name
		return &c, nil
	}
	return nil, typeErrorf("rename-procedure: expected procedure, given %s", f)
}

// (curry f) enables partial application, keeping curried arguments.
func curry(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	f, err := procedureArg("curry", args.(*Cons).car)
	if err != nil {
		return nil, err
	}
	_, supplied := f.Curried()
	return f.withCurried(supplied), nil
}

// (to-macro f) turns a lambda into a macro.
func toMacro(p *process, env *Env, args SExpression, arity Arity) (SExpression, error) {
	l, ok := args.(*Cons).car.(*Lambda)
	if !ok {
		return nil, typeErrorf("to-macro: expected lambda, given %s", args.(*Cons).car)
	}
	c := *l
	c.macro = true
	return &c, nil
}
