package cmd

import (
	"fmt"
	"os"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/diag"
	"github.com/ohl-lang/ohl/internal/fold"
	"github.com/ohl-lang/ohl/internal/lower"
	"github.com/ohl-lang/ohl/internal/parsetree"
	"github.com/ohl-lang/ohl/internal/semantic"
)

// loadParseTree reads and decodes the YAML parse-tree fixture at path.
func loadParseTree(path string) (*parsetree.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	prog, err := parsetree.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode parse tree from %s: %w", path, err)
	}
	return prog, nil
}

// lowerFile loads and lowers the parse tree at path into a semantic tree.
func lowerFile(path string) (*ast.Start, error) {
	raw, err := loadParseTree(path)
	if err != nil {
		return nil, err
	}
	start, err := lower.Lower(raw)
	if err != nil {
		return nil, fmt.Errorf("lowering failed: %w", err)
	}
	return start, nil
}

// analyzeFile runs lowering, folding, and analysis over path, returning
// the folded tree alongside the analyzer's diagnostic bag.
func analyzeFile(path string) (*ast.Start, *diag.Bag, error) {
	start, err := lowerFile(path)
	if err != nil {
		return nil, nil, err
	}
	folded := fold.Fold(start)
	bag := semantic.Analyze(folded)
	return folded, bag, nil
}

// printDiagnostics renders every diagnostic in bag to stderr. Source
// excerpts are left blank: the CLI's input is a decoded parse tree
// (§6.1), not raw .ohl source text, so there is no source line to
// quote back at the user.
func printDiagnostics(bag *diag.Bag, color bool) {
	for _, d := range bag.All() {
		fmt.Fprintln(os.Stderr, d.Format(color))
	}
}
