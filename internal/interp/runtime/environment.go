package runtime

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/ast"
)

// Binding is one variable's runtime value and mutability.
type Binding struct {
	Value   Value
	Mutable bool
}

// Scope is one lexical level of the environment: its own bindings plus
// any statements deferred within it, run LIFO on scope exit (§3.5,
// §4.5). This mirrors the scope-as-struct shape of
// _examples/original_source/lang/src/core/running/environment.rs.
type Scope struct {
	bindings map[string]*Binding
	deferred []ast.Statement
}

func newScope() *Scope {
	return &Scope{bindings: make(map[string]*Binding)}
}

// Deferred returns this scope's deferred statements in LIFO
// (last-declared-first-run) order.
func (s *Scope) Deferred() []ast.Statement {
	out := make([]ast.Statement, len(s.deferred))
	for i, stmt := range s.deferred {
		out[len(s.deferred)-1-i] = stmt
	}
	return out
}

// Environment is the runtime scope chain: a stack of scopes, the
// bottom of which is the process-global scope and can never be popped
// (§4.5). This vector-of-scopes shape is grounded directly on
// environment.rs's `scopes: Vec<Scope>`, rather than the teacher's
// linked-list-of-environments shape, since spec.md's own design note
// asks for it explicitly.
type Environment struct {
	scopes []*Scope
}

// NewEnvironment creates an environment with just the global scope.
func NewEnvironment() *Environment {
	return &Environment{scopes: []*Scope{newScope()}}
}

// Push enters a new, empty scope.
func (e *Environment) Push() {
	e.scopes = append(e.scopes, newScope())
}

// Pop leaves the innermost scope and returns it so the caller can run
// its deferred statements; it is a programming error to pop the global
// scope, and Pop panics rather than silently corrupting the stack.
func (e *Environment) Pop() *Scope {
	if len(e.scopes) <= 1 {
		panic("runtime: cannot pop the global scope")
	}
	top := e.scopes[len(e.scopes)-1]
	e.scopes = e.scopes[:len(e.scopes)-1]
	return top
}

// Top returns the innermost scope without popping it, so deferred
// statements can run while it (and the bindings they reference) are
// still part of the chain (§4.4.2: deferred statements run "before
// popping").
func (e *Environment) Top() *Scope {
	return e.scopes[len(e.scopes)-1]
}

// Declare binds name in the innermost scope, shadowing any outer
// binding of the same name.
func (e *Environment) Declare(name string, value Value, mutable bool) {
	top := e.scopes[len(e.scopes)-1]
	top.bindings[name] = &Binding{Value: value, Mutable: mutable}
}

// Get walks the scope chain from innermost to outermost, returning the
// nearest binding's value.
func (e *Environment) Get(name string) (Value, error) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].bindings[name]; ok {
			return b.Value, nil
		}
	}
	return nil, fmt.Errorf("unknown variable '%s'", name)
}

// Set walks the scope chain and updates the nearest binding, failing
// if it is unknown or immutable.
func (e *Environment) Set(name string, value Value) error {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if b, ok := e.scopes[i].bindings[name]; ok {
			if !b.Mutable {
				return fmt.Errorf("variable '%s' is immutable and cannot be modified", name)
			}
			b.Value = value
			return nil
		}
	}
	return fmt.Errorf("unknown variable '%s'", name)
}

// Defer appends stmt to the innermost scope's deferred list.
func (e *Environment) Defer(stmt ast.Statement) {
	top := e.scopes[len(e.scopes)-1]
	top.deferred = append(top.deferred, stmt)
}

// Depth returns the number of scopes currently on the stack, including
// the global scope.
func (e *Environment) Depth() int {
	return len(e.scopes)
}
