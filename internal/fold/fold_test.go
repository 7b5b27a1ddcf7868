package fold

import (
	"testing"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/types"
)

func wrap(e ast.Expression) *ast.Start {
	return &ast.Start{
		Functions: []*ast.Function{
			{
				Name: "main",
				Body: &ast.Block{
					Statements: []ast.Statement{&ast.ReturnStmt{Expr: e}},
				},
			},
		},
	}
}

func folded(t *testing.T, e ast.Expression) ast.Expression {
	t.Helper()
	start := Fold(wrap(e))
	return start.Functions[0].Body.Statements[0].(*ast.ReturnStmt).Expr
}

func TestFoldIntAdd(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitInt{Value: 2}, Op: types.ADD, Rhs: &ast.LitInt{Value: 3}}
	got, ok := folded(t, e).(*ast.LitInt)
	if !ok {
		t.Fatalf("folded result is %T, want *ast.LitInt", folded(t, e))
	}
	if got.Value != 5 {
		t.Errorf("2+3 folded to %d, want 5", got.Value)
	}
}

func TestFoldDivideByZeroNotFolded(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitInt{Value: 1}, Op: types.DIVIDE, Rhs: &ast.LitInt{Value: 0}}
	got := folded(t, e)
	if _, ok := got.(*ast.LitInt); ok {
		t.Errorf("divide by zero was folded, want it left for runtime")
	}
	if got != e {
		t.Errorf("divide by zero node was replaced, want identity preserved")
	}
}

func TestFoldRootInt(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitInt{Value: 8}, Op: types.ROOT, Rhs: &ast.LitInt{Value: 3}}
	got, ok := folded(t, e).(*ast.LitInt)
	if !ok {
		t.Fatalf("ROOT(8,3) not folded, got %T", folded(t, e))
	}
	if got.Value != 2 {
		t.Errorf("ROOT(8,3) = %d, want 2", got.Value)
	}
}

func TestFoldRootNegativeBaseNotFolded(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitInt{Value: -8}, Op: types.ROOT, Rhs: &ast.LitInt{Value: 3}}
	got := folded(t, e)
	if _, ok := got.(*ast.LitInt); ok {
		t.Errorf("ROOT(-8,3) was folded, want it left for runtime (a>=0 required)")
	}
}

func TestFoldStringConcat(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitString{Value: "a"}, Op: types.ADD, Rhs: &ast.LitString{Value: "b"}}
	got, ok := folded(t, e).(*ast.LitString)
	if !ok {
		t.Fatalf("string ADD not folded, got %T", folded(t, e))
	}
	if got.Value != "ab" {
		t.Errorf("\"a\"+\"b\" = %q, want %q", got.Value, "ab")
	}
}

func TestFoldBooleanAlgebra(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitBool{Value: true}, Op: types.AND, Rhs: &ast.LitBool{Value: false}}
	got, ok := folded(t, e).(*ast.LitBool)
	if !ok {
		t.Fatalf("AND not folded, got %T", folded(t, e))
	}
	if got.Value != false {
		t.Errorf("true && false = %v, want false", got.Value)
	}
}

func TestFoldCrossLiteralEqualityStructural(t *testing.T) {
	e := &ast.Expr{Lhs: &ast.LitInt{Value: 1}, Op: types.EQUAL, Rhs: &ast.LitBool{Value: true}}
	got, ok := folded(t, e).(*ast.LitBool)
	if !ok {
		t.Fatalf("EQUAL across literal kinds not folded, got %T", folded(t, e))
	}
	if got.Value != false {
		t.Errorf("1 == true folded to %v, want false (different literal kinds)", got.Value)
	}
}

func TestFoldNegative(t *testing.T) {
	e := &ast.PrfxExpr{Op: types.NEGATIVE, Rhs: &ast.LitInt{Value: 5}}
	got, ok := folded(t, e).(*ast.LitInt)
	if !ok {
		t.Fatalf("NEGATIVE not folded, got %T", folded(t, e))
	}
	if got.Value != -5 {
		t.Errorf("NEGATIVE(5) = %d, want -5", got.Value)
	}
}

func TestFoldReciprocalZeroNotFolded(t *testing.T) {
	e := &ast.PrfxExpr{Op: types.RECIPROCAL, Rhs: &ast.LitFloat{Value: 0}}
	got := folded(t, e)
	if _, ok := got.(*ast.LitFloat); ok {
		t.Errorf("RECIPROCAL(0.0) was folded, want it left for runtime")
	}
}

func TestFoldIsIdempotent(t *testing.T) {
	e := &ast.Expr{
		Lhs: &ast.Expr{Lhs: &ast.LitInt{Value: 1}, Op: types.ADD, Rhs: &ast.LitInt{Value: 2}},
		Op:  types.MULTIPLY,
		Rhs: &ast.LitInt{Value: 4},
	}
	first := Fold(wrap(e))
	second := Fold(first)

	firstExpr := first.Functions[0].Body.Statements[0].(*ast.ReturnStmt).Expr
	secondExpr := second.Functions[0].Body.Statements[0].(*ast.ReturnStmt).Expr

	if firstExpr.String() != secondExpr.String() {
		t.Errorf("folding twice changed the tree: %q then %q", firstExpr.String(), secondExpr.String())
	}
}

func TestFoldDescendsIntoLoopBody(t *testing.T) {
	start := &ast.Start{
		Functions: []*ast.Function{
			{
				Name: "main",
				Body: &ast.Block{
					Statements: []ast.Statement{
						&ast.WhileExpr{
							Cond: &ast.LitBool{Value: true},
							Body: &ast.Block{
								Statements: []ast.Statement{
									&ast.AssignStmt{
										Name: "x",
										Expr: &ast.Expr{Lhs: &ast.LitInt{Value: 1}, Op: types.ADD, Rhs: &ast.LitInt{Value: 1}},
									},
								},
							},
						},
					},
				},
			},
		},
	}

	Fold(start)

	whileStmt := start.Functions[0].Body.Statements[0].(*ast.WhileExpr)
	assign := whileStmt.Body.Statements[0].(*ast.AssignStmt)
	got, ok := assign.Expr.(*ast.LitInt)
	if !ok {
		t.Fatalf("fold did not descend into while body, got %T", assign.Expr)
	}
	if got.Value != 2 {
		t.Errorf("1+1 inside while body folded to %d, want 2", got.Value)
	}
}
