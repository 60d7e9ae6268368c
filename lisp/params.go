package lisp

// parseParams reads a lambda list:
//
//	()        no parameters
//	xs        every argument bound to xs
//	(a b)     exactly two
//	(a b . r) two or more, the rest bound to r
func parseParams(arglist SExpression) ([]param, error) {
	switch v := arglist.(type) {
	case emptyList:
		return nil, nil
	case *Symbol:
		return []param{{sym: v, variadic: true}}, nil
	case *Cons:
	default:
		return nil, typeErrorf("%s is not an argument list", arglist)
	}
	params := []param{}
	seen := map[*Symbol]bool{}
	all := []SExpression{}
	for x := range Iterate(arglist, true) {
		all = append(all, x)
	}
	for i, x := range all {
		last := i == len(all)-1
		if last && x == Empty {
			break
		}
		s, ok := x.(*Symbol)
		if !ok {
			return nil, typeErrorf("%s is not a symbol and so cannot be in an argument list", x)
		}
		if seen[s] {
			return nil, syntaxErrorf("duplicate argument name %s", s)
		}
		seen[s] = true
		params = append(params, param{sym: s, variadic: last})
	}
	return params, nil
}

func paramsArity(params []param) Arity {
	switch {
	case len(params) == 0:
		return Arity{0, 0}
	case params[len(params)-1].variadic:
		return Arity{len(params) - 1, Unbounded}
	}
	return Arity{len(params), len(params)}
}

// bindParams populates a fresh child of the lambda's environment.
// args has already been checked against the lambda's arity.
func (l *Lambda) bindParams(args SExpression) (*Env, error) {
	env := l.env.push()
	pointer := args
	for _, p := range l.params {
		if p.variadic {
			if err := env.Define(p.sym, pointer); err != nil {
				return nil, err
			}
			continue
		}
		c := pointer.(*Cons)
		if err := env.Define(p.sym, c.car); err != nil {
			return nil, err
		}
		pointer = c.cdr
	}
	env.prune()
	return env, nil
}
