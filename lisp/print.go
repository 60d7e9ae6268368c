package lisp

import (
	"math"
	"strconv"
	"strings"
)

func (n Number) String() string {
	f := float64(n)
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	case f == 0:
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (s String) String() string {
	return strconv.Quote(string(s))
}

func (s *Symbol) String() string {
	return s.name
}

func (emptyList) String() string {
	return "()"
}

var quotePrefix = map[*Symbol]string{
	symQuote:           "'",
	symQuasiquote:      "`",
	symUnquote:         ",",
	symUnquoteSplicing: ",@",
}

func (c *Cons) String() string {
	if s, ok := c.car.(*Symbol); ok {
		if rest, ok := c.cdr.(*Cons); ok && rest.cdr == Empty {
			if prefix, ok := quotePrefix[s]; ok {
				return prefix + rest.car.String()
			}
		}
	}
	var b strings.Builder
	b.WriteByte('(')
	var e SExpression = c
	for {
		cell := e.(*Cons)
		b.WriteString(cell.car.String())
		next, ok := cell.cdr.(*Cons)
		if !ok {
			if cell.cdr != Empty {
				b.WriteString(" . ")
				b.WriteString(cell.cdr.String())
			}
			break
		}
		b.WriteByte(' ')
		e = next
	}
	b.WriteByte(')')
	return b.String()
}

func (l *Lambda) String() string {
	kind := "procedure"
	if l.macro {
		kind = "macro"
	}
	return printProcedure(kind, &l.procedure)
}

func (b *Builtin) String() string {
	return printProcedure("procedure", &b.procedure)
}

func printProcedure(kind string, p *procedure) string {
	s := "<" + kind
	if p.name != "" {
		s += ":" + p.name
	}
	if len(p.curried) > 0 {
		s += ":" + NewList(p.curried...).String()
	}
	return s + ">"
}
