package lisp

import "sync"

// Symbol is compared by identity. Interned symbols with the same
// name are the same *Symbol.
type Symbol struct {
	name     string
	interned bool
}

// symbols is never evicted
var symbols = struct {
	sync.Mutex
	m map[string]*Symbol
}{m: map[string]*Symbol{}}

// NewSymbol returns the interned symbol called name.
func NewSymbol(name string) *Symbol {
	symbols.Lock()
	defer symbols.Unlock()
	if s, ok := symbols.m[name]; ok {
		return s
	}
	s := &Symbol{name: name, interned: true}
	symbols.m[name] = s
	return s
}

// NewUninternedSymbol returns a symbol that is only equal to itself.
func NewUninternedSymbol(name string) *Symbol {
	return &Symbol{name: name}
}

func (s *Symbol) Name() string { return s.name }

func (s *Symbol) Interned() bool { return s.interned }

var (
	symQuote           = NewSymbol("quote")
	symQuasiquote      = NewSymbol("quasiquote")
	symUnquote         = NewSymbol("unquote")
	symUnquoteSplicing = NewSymbol("unquote-splicing")
	symCond            = NewSymbol("cond")
	symDefine          = NewSymbol("define")
	symLambda          = NewSymbol("lambda")
	symMacro           = NewSymbol("macro")

	// SymT and SymF are the canonical true and false values.
	SymT = NewSymbol("t")
	SymF = NewSymbol("f")
)
