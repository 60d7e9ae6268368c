package lisp

// quasiquote copies a template, evaluating unquoted parts. Nested
// quasiquotes are not tracked: an inner unquote is evaluated by the
// outermost quasiquote.
func (p *process) quasiquote(env *Env, ast SExpression) (SExpression, error) {
	c, ok := ast.(*Cons)
	if !ok {
		return ast, nil
	}
	if c.car == symUnquote {
		x, err := unquoteArg(c)
		if err != nil {
			return nil, err
		}
		return p.evalEnv(env, x)
	}
	if inner, ok := c.car.(*Cons); ok && inner.car == symUnquoteSplicing {
		x, err := unquoteArg(inner)
		if err != nil {
			return nil, err
		}
		spliced, err := p.evalEnv(env, x)
		if err != nil {
			return nil, err
		}
		rest, err := p.quasiquote(env, c.cdr)
		if err != nil {
			return nil, err
		}
		return Append(spliced, rest)
	}
	car, err := p.quasiquote(env, c.car)
	if err != nil {
		return nil, err
	}
	cdr, err := p.quasiquote(env, c.cdr)
	if err != nil {
		return nil, err
	}
	return NewCons(car, cdr), nil
}

func unquoteArg(c *Cons) (SExpression, error) {
	rest, ok := c.cdr.(*Cons)
	if !ok || rest.cdr != Empty {
		return nil, syntaxErrorf("%s: takes exactly one argument", c.car)
	}
	return rest.car, nil
}
