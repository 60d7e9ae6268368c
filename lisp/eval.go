package lisp

import (
	"fmt"
	"io"
)

// process holds the state shared by one interpreter's evaluations.
type process struct {
	out           io.Writer
	maxExpansions int
	gensym        int
}

func (p *process) evalEnv(env *Env, e SExpression) (SExpression, error) {
Loop:
	for {
		expanded, err := p.macroExpand(env, e)
		if err != nil {
			return nil, err
		}
		e = expanded
		ep, ok := e.(*Cons)
		if !ok {
			if s, ok := e.(*Symbol); ok {
				return env.Lookup(s)
			}
			// numbers, strings, () and procedures evaluate to themselves
			return e, nil
		}
		var proc Procedure
		switch car := ep.car.(type) {
		case Procedure:
			proc = car
		case *Symbol:
			// special forms get their arguments unevaluated
			switch car {
			case symQuote:
				args, err := specialArgs(ep, 1)
				if err != nil {
					return nil, err
				}
				return args[0], nil
			case symQuasiquote:
				args, err := specialArgs(ep, 1)
				if err != nil {
					return nil, err
				}
				return p.quasiquote(env, args[0])
			case symUnquote, symUnquoteSplicing:
				return nil, syntaxErrorf("%s: not inside quasiquote", car)
			case symCond:
				if !IsProperList(ep.cdr) {
					return nil, typeErrorf("cond: clauses must form a list: %s", ep)
				}
				for clauses := ep.cdr; clauses != Empty; {
					cc := clauses.(*Cons)
					clause, ok := cc.car.(*Cons)
					if !ok {
						return nil, typeErrorf("clause %s should be a list", cc.car)
					}
					tested, err := p.evalEnv(env, clause.car)
					if err != nil {
						return nil, err
					}
					if !isFalse(tested) {
						body, ok := clause.cdr.(*Cons)
						if !ok {
							return tested, nil
						}
						e = body.car
						continue Loop
					}
					clauses = cc.cdr
				}
				return SymF, nil
			case symDefine:
				args, err := specialArgs(ep, 2)
				if err != nil {
					return nil, err
				}
				sym, ok := args[0].(*Symbol)
				if !ok {
					return nil, typeErrorf("%s is not a symbol and so cannot be used to bind a name", args[0])
				}
				evalled, err := p.evalEnv(env, args[1])
				if err != nil {
					return nil, err
				}
				if l, ok := evalled.(*Lambda); ok && l.name == "" {
					l.name = sym.name
				}
				if err := env.Define(sym, evalled); err != nil {
					return nil, err
				}
				return sym, nil
			case symLambda, symMacro:
				args, err := specialArgs(ep, 2)
				if err != nil {
					return nil, err
				}
				params, err := parseParams(args[0])
				if err != nil {
					return nil, err
				}
				return &Lambda{
					procedure: procedure{arity: paramsArity(params)},
					params:    params,
					body:      args[1],
					env:       env,
					macro:     car == symMacro,
				}, nil
			}
		case *Cons:
		default:
			return nil, typeErrorf("%s is not a procedure", car)
		}
		// procedure call
		if proc == nil {
			f, err := p.evalEnv(env, ep.car)
			if err != nil {
				return nil, err
			}
			proc, ok = f.(Procedure)
			if !ok {
				return nil, typeErrorf("%s is not a procedure", ep.car)
			}
		}
		if m, ok := proc.(*Lambda); ok && m.macro {
			// a macro reached through an expression rather than a name
			expansion, err := p.expand(m, ep.cdr)
			if err != nil {
				return nil, err
			}
			e = expansion
			continue Loop
		}
		if !IsProperList(ep.cdr) {
			return nil, typeErrorf("argument list given to %s is dotted: %s", procName(proc), ep)
		}
		args, err := Map(ep.cdr, func(x SExpression) (SExpression, error) {
			return p.evalEnv(env, x)
		})
		if err != nil {
			return nil, err
		}
		args, partial, err := collectArgs(proc, args)
		if err != nil {
			return nil, err
		}
		if partial != nil {
			return partial, nil
		}
		switch f := proc.(type) {
		case *Lambda:
			env, err = f.bindParams(args)
			if err != nil {
				return nil, err
			}
			e = f.body
		case *Builtin:
			return f.body(p, env, args, f.arity)
		}
	}
}

// apply calls proc outside of tail position, for builtins such as map.
func (p *process) apply(env *Env, proc Procedure, args SExpression) (SExpression, error) {
	if m, ok := proc.(*Lambda); ok && m.macro {
		return nil, typeErrorf("cannot apply macro %s", procName(proc))
	}
	args, partial, err := collectArgs(proc, args)
	if err != nil {
		return nil, err
	}
	if partial != nil {
		return partial, nil
	}
	switch f := proc.(type) {
	case *Lambda:
		frame, err := f.bindParams(args)
		if err != nil {
			return nil, err
		}
		return p.evalEnv(frame, f.body)
	case *Builtin:
		return f.body(p, env, args, f.arity)
	}
	return nil, typeErrorf("%s is not a procedure", proc)
}

// collectArgs prepends curried arguments and checks the arity. A non-nil
// partial procedure is returned when a curried procedure is still
// missing arguments.
func collectArgs(proc Procedure, args SExpression) (SExpression, Procedure, error) {
	n := UnsafeLength(args)
	arity := proc.Arity()
	curry, curried := proc.Curried()
	if curry {
		if len(curried)+n < arity.Min {
			supplied := make([]SExpression, 0, len(curried)+n)
			supplied = append(supplied, curried...)
			supplied = append(supplied, ToSlice(args)...)
			return nil, proc.withCurried(supplied), nil
		}
		if len(curried) > 0 {
			args = FromSlice(curried, args)
			n += len(curried)
		}
	}
	if b, ok := proc.(*Builtin); ok && b.noValidate {
		return args, nil, nil
	}
	if n < arity.Min {
		return nil, nil, arityErrorf("too few arguments given to %s: expected %s, got %d", procName(proc), arity, n)
	}
	if n > arity.Max {
		return nil, nil, arityErrorf("too many arguments given to %s: expected %s, got %d", procName(proc), arity, n)
	}
	return args, nil, nil
}

func procName(proc Procedure) string {
	if proc.Name() == "" {
		return "[lambda]"
	}
	return proc.Name()
}

func (a Arity) String() string {
	switch {
	case a.Max == Unbounded:
		return fmt.Sprintf("at least %d", a.Min)
	case a.Min == a.Max:
		return fmt.Sprint(a.Min)
	}
	return fmt.Sprintf("between %d and %d", a.Min, a.Max)
}

// specialArgs checks the operands of a special form.
func specialArgs(ep *Cons, n int) ([]SExpression, error) {
	name := ep.car.String()
	if !IsProperList(ep.cdr) {
		return nil, typeErrorf("argument list given to %s is dotted: %s", name, ep)
	}
	args := ToSlice(ep.cdr)
	if len(args) < n {
		return nil, arityErrorf("too few arguments given to %s: %s", name, ep)
	}
	if len(args) > n {
		return nil, arityErrorf("too many arguments given to %s: %s", name, ep)
	}
	return args, nil
}

// macroFor returns the macro named or held by head, if any.
func macroFor(env *Env, head SExpression) *Lambda {
	switch h := head.(type) {
	case *Symbol:
		v, ok := env.find(h)
		if !ok {
			return nil
		}
		if l, ok := v.(*Lambda); ok && l.macro {
			return l
		}
	case *Lambda:
		if h.macro {
			return h
		}
	}
	return nil
}

// macroExpand1 expands e once if it is a macro call.
func (p *process) macroExpand1(env *Env, e SExpression) (SExpression, bool, error) {
	c, ok := e.(*Cons)
	if !ok {
		return e, false, nil
	}
	m := macroFor(env, c.car)
	if m == nil {
		return e, false, nil
	}
	expansion, err := p.expand(m, c.cdr)
	if err != nil {
		return nil, false, err
	}
	return expansion, true, nil
}

// macroExpand expands e until its head is no longer a macro.
func (p *process) macroExpand(env *Env, e SExpression) (SExpression, error) {
	for n := 0; ; n++ {
		if p.maxExpansions > 0 && n >= p.maxExpansions {
			return nil, newError(ExpansionError, "macro expansion of %s did not finish after %d steps", e, n)
		}
		expanded, ok, err := p.macroExpand1(env, e)
		if err != nil {
			return nil, err
		}
		if !ok {
			return e, nil
		}
		e = expanded
	}
}

// expand runs the macro body on the unevaluated arguments.
func (p *process) expand(m *Lambda, args SExpression) (SExpression, error) {
	if !IsProperList(args) {
		return nil, typeErrorf("argument list given to %s is dotted: %s", procName(m), args)
	}
	args, partial, err := collectArgs(m, args)
	if err != nil {
		return nil, err
	}
	if partial != nil {
		return partial, nil
	}
	env, err := m.bindParams(args)
	if err != nil {
		return nil, err
	}
	return p.evalEnv(env, m.body)
}
