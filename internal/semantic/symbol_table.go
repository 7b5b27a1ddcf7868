// Package semantic implements the Analyzer: the one-pass visitor that
// type-checks and validates a lowered, folded semantic tree, producing
// a batch of diagnostics (spec §4.3).
package semantic

import (
	"github.com/ohl-lang/ohl/internal/types"
	"github.com/ohl-lang/ohl/pkg/token"
)

// Symbol is a variable binding tracked during analysis: its type,
// mutability, and whether it has been read (§4.3.4). Unlike the
// teacher's symbol table, ohl names are resolved case-sensitively —
// spec.md gives no indication of case folding anywhere in the grammar,
// so names are stored and compared verbatim rather than normalized.
type Symbol struct {
	Name    string
	Type    types.VarType
	Mutable bool
	Used    bool
	Pos     token.Position // declaration site, for unused/immutable diagnostics
}

// SymbolTable is one lexical scope of compile-time bindings, chained to
// its enclosing scope.
type SymbolTable struct {
	symbols map[string]*Symbol
	order   []string
	outer   *SymbolTable
}

// NewSymbolTable creates a scope with no enclosing scope (the
// function-body root).
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make(map[string]*Symbol)}
}

// NewEnclosedSymbolTable creates a new scope nested inside outer.
func NewEnclosedSymbolTable(outer *SymbolTable) *SymbolTable {
	st := NewSymbolTable()
	st.outer = outer
	return st
}

// Define declares name in the current scope, shadowing any outer
// binding of the same name (shadowing is permitted, per §4.5).
func (st *SymbolTable) Define(name string, typ types.VarType, mutable bool, pos token.Position) *Symbol {
	sym := &Symbol{Name: name, Type: typ, Mutable: mutable, Pos: pos}
	st.symbols[name] = sym
	st.order = append(st.order, name)
	return sym
}

// Resolve looks up name through the scope chain, returning the nearest
// binding and whether it was found.
func (st *SymbolTable) Resolve(name string) (*Symbol, bool) {
	if sym, ok := st.symbols[name]; ok {
		return sym, true
	}
	if st.outer != nil {
		return st.outer.Resolve(name)
	}
	return nil, false
}

// DefinedLocally reports whether name is declared directly in this
// scope, not an outer one.
func (st *SymbolTable) DefinedLocally(name string) bool {
	_, ok := st.symbols[name]
	return ok
}

// LocalSymbols returns this scope's own bindings in declaration order,
// for the unused-variable sweep run at block exit (§4.3.4).
func (st *SymbolTable) LocalSymbols() []*Symbol {
	out := make([]*Symbol, 0, len(st.order))
	for _, name := range st.order {
		out = append(out, st.symbols[name])
	}
	return out
}

// Outer returns the enclosing scope, or nil at the outermost scope.
func (st *SymbolTable) Outer() *SymbolTable {
	return st.outer
}
