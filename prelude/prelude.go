// Package prelude holds the forms every tlisp program expects but the
// evaluator does not provide natively.
package prelude

import (
	_ "embed"
	"fmt"

	"github.com/deosjr/tlisp/lisp"
)

//go:embed prelude.lisp
var prelude string

// Load evaluates the prelude in l's environment.
func Load(l lisp.Lisp) error {
	if err := l.Load(prelude); err != nil {
		return fmt.Errorf("prelude: %w", err)
	}
	return nil
}
