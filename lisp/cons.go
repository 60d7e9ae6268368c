package lisp

import "iter"

// Cons is an immutable pair. proper records whether the chain
// starting here ends in Empty, so IsProperList is O(1).
type Cons struct {
	car, cdr SExpression
	proper   bool
}

// NewCons builds a pair. Passing a nil operand is a programming error.
func NewCons(car, cdr SExpression) *Cons {
	if car == nil || cdr == nil {
		panic("cons: expected a valid value, got nil")
	}
	proper := cdr == Empty
	if c, ok := cdr.(*Cons); ok {
		proper = c.proper
	}
	return &Cons{car: car, cdr: cdr, proper: proper}
}

func (c *Cons) Car() SExpression { return c.car }
func (c *Cons) Cdr() SExpression { return c.cdr }

// IsProperList reports whether v is Empty or a cons chain ending in Empty.
func IsProperList(v SExpression) bool {
	if v == Empty {
		return true
	}
	c, ok := v.(*Cons)
	return ok && c.proper
}

// Car of Empty is Empty.
func Car(v SExpression) (SExpression, error) {
	switch l := v.(type) {
	case emptyList:
		return Empty, nil
	case *Cons:
		return l.car, nil
	}
	return nil, typeErrorf("%s is not a list", v)
}

// Cdr of Empty is Empty.
func Cdr(v SExpression) (SExpression, error) {
	switch l := v.(type) {
	case emptyList:
		return Empty, nil
	case *Cons:
		return l.cdr, nil
	}
	return nil, typeErrorf("%s is not a list", v)
}

// Iterate yields every car of the chain starting at v. With yieldLast
// the terminating value (Empty for proper lists) is yielded as well.
func Iterate(v SExpression, yieldLast bool) iter.Seq[SExpression] {
	return func(yield func(SExpression) bool) {
		e := v
		for {
			c, ok := e.(*Cons)
			if !ok {
				break
			}
			if !yield(c.car) {
				return
			}
			e = c.cdr
		}
		if yieldLast {
			yield(e)
		}
	}
}

// NewList builds a proper list.
func NewList(xs ...SExpression) SExpression {
	return FromSlice(xs, Empty)
}

// FromSlice builds a list of xs terminated by tail.
func FromSlice(xs []SExpression, tail SExpression) SExpression {
	e := tail
	for i := len(xs) - 1; i >= 0; i-- {
		e = NewCons(xs[i], e)
	}
	return e
}

// ToSlice returns the cars of a list, ignoring a dotted tail.
func ToSlice(v SExpression) []SExpression {
	list := []SExpression{}
	for x := range Iterate(v, false) {
		list = append(list, x)
	}
	return list
}

// UnsafeLength counts the cons cells of v. It does not detect cycles.
func UnsafeLength(v SExpression) int {
	n := 0
	for e := v; ; n++ {
		c, ok := e.(*Cons)
		if !ok {
			return n
		}
		e = c.cdr
	}
}

// Append concatenates lists. The last argument may be any value and
// is shared by the result; every other argument must be a proper list.
func Append(lists ...SExpression) (SExpression, error) {
	if len(lists) == 0 {
		return Empty, nil
	}
	result := lists[len(lists)-1]
	for i := len(lists) - 2; i >= 0; i-- {
		r, err := appendTwo(lists[i], result)
		if err != nil {
			return nil, err
		}
		result = r
	}
	return result, nil
}

func appendTwo(list1, list2 SExpression) (SExpression, error) {
	if !IsProperList(list1) {
		return nil, typeErrorf("append: %s is not a list", list1)
	}
	if list1 == Empty {
		return list2, nil
	}
	if list2 == Empty {
		return list1, nil
	}
	return FromSlice(ToSlice(list1), list2), nil
}

// Map applies f to every element of a proper list.
func Map(list SExpression, f func(SExpression) (SExpression, error)) (SExpression, error) {
	if !IsProperList(list) {
		return nil, typeErrorf("map: %s is not a list", list)
	}
	out := []SExpression{}
	for x := range Iterate(list, false) {
		y, err := f(x)
		if err != nil {
			return nil, err
		}
		out = append(out, y)
	}
	return FromSlice(out, Empty), nil
}

// Reduce folds a proper list from the left: f(f(seed, x0), x1)...
func Reduce(list, seed SExpression, f func(acc, x SExpression) (SExpression, error)) (SExpression, error) {
	if !IsProperList(list) {
		return nil, typeErrorf("reduce: %s is not a list", list)
	}
	acc := seed
	for x := range Iterate(list, false) {
		var err error
		acc, err = f(acc, x)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// Reduce1 is Reduce seeded with the first element.
func Reduce1(list SExpression, f func(acc, x SExpression) (SExpression, error)) (SExpression, error) {
	c, ok := list.(*Cons)
	if !ok || !c.proper {
		return nil, typeErrorf("reduce: expected a non-empty list, got %s", list)
	}
	return Reduce(c.cdr, c.car, f)
}

// ReduceRight folds a proper list from the right: f(x0, f(x1, seed))...
func ReduceRight(list, seed SExpression, f func(x, acc SExpression) (SExpression, error)) (SExpression, error) {
	if !IsProperList(list) {
		return nil, typeErrorf("reduce-right: %s is not a list", list)
	}
	xs := ToSlice(list)
	acc := seed
	for i := len(xs) - 1; i >= 0; i-- {
		var err error
		acc, err = f(xs[i], acc)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// ReduceRight1 is ReduceRight seeded with the last element.
func ReduceRight1(list SExpression, f func(x, acc SExpression) (SExpression, error)) (SExpression, error) {
	c, ok := list.(*Cons)
	if !ok || !c.proper {
		return nil, typeErrorf("reduce-right: expected a non-empty list, got %s", list)
	}
	xs := ToSlice(c)
	return ReduceRight(FromSlice(xs[:len(xs)-1], Empty), xs[len(xs)-1], f)
}
