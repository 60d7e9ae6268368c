package lisp

// Env is one frame of the lexical environment. Frames are shared by
// pointer between closures and child frames.
type Env struct {
	dict  map[*Symbol]SExpression
	outer *Env
}

func newRootEnv() *Env {
	return &Env{dict: map[*Symbol]SExpression{}}
}

func (e *Env) push() *Env {
	return &Env{dict: map[*Symbol]SExpression{}, outer: e}
}

func (e *Env) find(s *Symbol) (SExpression, bool) {
	for env := e; env != nil; env = env.outer {
		if v, ok := env.dict[s]; ok {
			return v, true
		}
	}
	return nil, false
}

// Lookup resolves s in this frame or the closest enclosing one.
func (e *Env) Lookup(s *Symbol) (SExpression, error) {
	v, ok := e.find(s)
	if !ok {
		return nil, referenceErrorf("symbol %s has no value", s)
	}
	return v, nil
}

// Define binds s in this frame. Shadowing an outer binding is fine,
// binding a name twice in the same frame is not.
func (e *Env) Define(s *Symbol, sexp SExpression) error {
	if _, ok := e.dict[s]; ok {
		return referenceErrorf("cannot rebind symbol %s", s)
	}
	e.dict[s] = sexp
	return nil
}

// Depth is the number of frames from e up to the root.
func (e *Env) Depth() int {
	n := 0
	for env := e; env != nil; env = env.outer {
		n++
	}
	return n
}

// prune skips the outer frame when all of its bindings are shadowed
// here: any lookup that misses e would miss that frame as well.
func (e *Env) prune() {
	if e.outer == nil {
		return
	}
	for k := range e.outer.dict {
		if _, ok := e.dict[k]; !ok {
			return
		}
	}
	e.outer = e.outer.outer
}
