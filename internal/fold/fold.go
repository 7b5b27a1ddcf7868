// Package fold implements the constant folder: a bottom-up rewrite that
// replaces literal-only sub-trees with equivalent literal nodes while
// structurally preserving everything else (spec §4.2).
//
// Folding emits no diagnostics and rewrites the tree in place; it is
// idempotent: folding an already-folded tree returns an equal tree. Unlike the original Rust folder this is
// grounded on, Fold descends into every statement and expression kind,
// including loop bodies, match arms, and deferred statements; the
// original skips several of these, which looks like an oversight
// rather than a deliberate limit given spec.md's universal folding
// invariant (see DESIGN.md).
package fold

import (
	"math"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/types"
	"github.com/ohl-lang/ohl/pkg/token"
)

// Fold folds every function body in start, in place, and returns start
// for convenience.
func Fold(start *ast.Start) *ast.Start {
	for _, fn := range start.Functions {
		fn.Body = foldBlock(fn.Body)
	}
	return start
}

func foldBlock(b *ast.Block) *ast.Block {
	if b == nil {
		return nil
	}
	for i, s := range b.Statements {
		b.Statements[i] = foldStmt(s)
	}
	return b
}

func foldStmt(s ast.Statement) ast.Statement {
	switch n := s.(type) {
	case *ast.Block:
		return foldBlock(n)
	case *ast.LetStmt:
		n.Init = foldExpr(n.Init)
		return n
	case *ast.AssignStmt:
		n.Expr = foldExpr(n.Expr)
		return n
	case *ast.ReturnStmt:
		if n.Expr != nil {
			n.Expr = foldExpr(n.Expr)
		}
		return n
	case *ast.DeferStmt:
		n.Body = foldStmt(n.Body)
		return n
	case *ast.IfExpr:
		n.Cond = foldExpr(n.Cond)
		n.Then = foldBlock(n.Then)
		if n.Else != nil {
			n.Else = foldStmt(n.Else)
		}
		return n
	case *ast.WhileExpr:
		n.Cond = foldExpr(n.Cond)
		n.Body = foldBlock(n.Body)
		return n
	case *ast.DoWhile:
		n.Body = foldBlock(n.Body)
		n.Cond = foldExpr(n.Cond)
		return n
	case *ast.LoopExpr:
		n.Count = foldExpr(n.Count)
		n.Body = foldBlock(n.Body)
		return n
	case *ast.ForExpr:
		if n.Init != nil {
			n.Init = foldStmt(n.Init)
		}
		n.Cond = foldExpr(n.Cond)
		if n.Modifier != nil {
			n.Modifier = foldStmt(n.Modifier)
		}
		n.Body = foldBlock(n.Body)
		return n
	case *ast.ForEach:
		n.Iterable = foldExpr(n.Iterable)
		n.Body = foldBlock(n.Body)
		return n
	case *ast.MatchStmt:
		n.Scrutinee = foldExpr(n.Scrutinee)
		for _, arm := range n.Arms {
			arm.Pattern = foldExpr(arm.Pattern)
			arm.Body = foldBlock(arm.Body)
		}
		return n
	case *ast.ExprStmt:
		n.Expr = foldExpr(n.Expr)
		return n
	default:
		// Break, Continue, Repeat, BlankStmt carry no sub-expressions.
		return s
	}
}

// foldExpr folds e bottom-up and returns the (possibly replaced) node.
func foldExpr(e ast.Expression) ast.Expression {
	switch n := e.(type) {
	case *ast.Expr:
		n.Lhs = foldExpr(n.Lhs)
		n.Rhs = foldExpr(n.Rhs)
		if folded := foldBinary(n); folded != nil {
			return folded
		}
		return n
	case *ast.PrfxExpr:
		n.Rhs = foldExpr(n.Rhs)
		if folded := foldPrefix(n); folded != nil {
			return folded
		}
		return n
	case *ast.Cast:
		n.Expr = foldExpr(n.Expr)
		return n
	case *ast.Range:
		n.Start = foldExpr(n.Start)
		n.End = foldExpr(n.End)
		return n
	case *ast.Call:
		for i, a := range n.Args {
			n.Args[i] = foldExpr(a)
		}
		return n
	default:
		// Ident, PtfxExpr (postfix ++/--/** always mutates, never
		// folds), literals, NULL, and DEFAULT have nothing to fold.
		return e
	}
}

func isLiteral(e ast.Expression) bool {
	switch e.(type) {
	case *ast.LitInt, *ast.LitFloat, *ast.LitBool, *ast.LitChar, *ast.LitString, *ast.NullLit:
		return true
	default:
		return false
	}
}

func foldBinary(n *ast.Expr) ast.Expression {
	if !isLiteral(n.Lhs) || !isLiteral(n.Rhs) {
		return nil
	}

	if n.Op == types.EQUAL || n.Op == types.NOT_EQUAL {
		eq := structurallyEqual(n.Lhs, n.Rhs)
		if n.Op == types.NOT_EQUAL {
			eq = !eq
		}
		return &ast.LitBool{Value: eq, Position: n.Position}
	}

	switch lhs := n.Lhs.(type) {
	case *ast.LitInt:
		if rhs, ok := n.Rhs.(*ast.LitInt); ok {
			return foldIntInt(n.Position, lhs.Value, n.Op, rhs.Value)
		}
		if rhs, ok := n.Rhs.(*ast.LitFloat); ok {
			return foldFloatFloat(n.Position, float32(lhs.Value), n.Op, rhs.Value)
		}
	case *ast.LitFloat:
		if rhs, ok := n.Rhs.(*ast.LitFloat); ok {
			return foldFloatFloat(n.Position, lhs.Value, n.Op, rhs.Value)
		}
		if rhs, ok := n.Rhs.(*ast.LitInt); ok {
			return foldFloatFloat(n.Position, lhs.Value, n.Op, float32(rhs.Value))
		}
	case *ast.LitBool:
		if rhs, ok := n.Rhs.(*ast.LitBool); ok {
			return foldBoolBool(n.Position, lhs.Value, n.Op, rhs.Value)
		}
	case *ast.LitString:
		if rhs, ok := n.Rhs.(*ast.LitString); ok && n.Op == types.ADD {
			return &ast.LitString{Value: lhs.Value + rhs.Value, Position: n.Position}
		}
	}
	return nil
}

func structurallyEqual(a, b ast.Expression) bool {
	switch av := a.(type) {
	case *ast.LitInt:
		bv, ok := b.(*ast.LitInt)
		return ok && av.Value == bv.Value
	case *ast.LitFloat:
		bv, ok := b.(*ast.LitFloat)
		return ok && av.Value == bv.Value
	case *ast.LitBool:
		bv, ok := b.(*ast.LitBool)
		return ok && av.Value == bv.Value
	case *ast.LitChar:
		bv, ok := b.(*ast.LitChar)
		return ok && av.Value == bv.Value
	case *ast.LitString:
		bv, ok := b.(*ast.LitString)
		return ok && av.Value == bv.Value
	case *ast.NullLit:
		_, ok := b.(*ast.NullLit)
		return ok
	default:
		return false
	}
}

// foldIntInt folds a binary op over two INT literals. DIVIDE/REMAINDER
// by zero and negative POWER exponents are left for the runtime to
// error on, per §4.2.
func foldIntInt(pos token.Position, a int32, op types.Operator, b int32) ast.Expression {
	switch op {
	case types.ADD:
		return &ast.LitInt{Value: a + b, Position: pos}
	case types.SUBTRACT:
		return &ast.LitInt{Value: a - b, Position: pos}
	case types.MULTIPLY:
		return &ast.LitInt{Value: a * b, Position: pos}
	case types.DIVIDE:
		if b == 0 {
			return nil
		}
		return &ast.LitInt{Value: a / b, Position: pos}
	case types.REMAINDER:
		if b == 0 {
			return nil
		}
		return &ast.LitInt{Value: a % b, Position: pos}
	case types.POWER:
		if b < 0 {
			return nil
		}
		return &ast.LitInt{Value: intPow(a, b), Position: pos}
	case types.ROOT:
		if a < 0 || b <= 0 {
			return nil
		}
		root := math.Floor(math.Pow(float64(a), 1.0/float64(b)))
		if math.Pow(root+1, float64(b)) <= float64(a) {
			root++ // math.Pow can land just below an exact root, e.g. 8^(1/3)
		}
		return &ast.LitInt{Value: int32(root), Position: pos}
	case types.LESS_THAN:
		return &ast.LitBool{Value: a < b, Position: pos}
	case types.GREATER_THAN:
		return &ast.LitBool{Value: a > b, Position: pos}
	case types.NOT_LESS_THAN:
		return &ast.LitBool{Value: a >= b, Position: pos}
	case types.NOT_GREATER_THAN:
		return &ast.LitBool{Value: a <= b, Position: pos}
	default:
		return nil
	}
}

// intPow computes a^b for b >= 0 using the platform's wrapping 32-bit
// signed arithmetic (b repeated multiplications over int32, which wrap
// exactly like the runtime's own integer arithmetic).
func intPow(a int32, b int32) int32 {
	result := int32(1)
	base := a
	for ; b > 0; b-- {
		result *= base
	}
	return result
}

// foldFloatFloat folds a binary op over two FLOAT-compatible literals
// (mixed INT/FLOAT operands are promoted to float32 by the caller).
// DIVIDE by 0.0 is left for the runtime to error on.
func foldFloatFloat(pos token.Position, a float32, op types.Operator, b float32) ast.Expression {
	switch op {
	case types.ADD:
		return &ast.LitFloat{Value: a + b, Position: pos}
	case types.SUBTRACT:
		return &ast.LitFloat{Value: a - b, Position: pos}
	case types.MULTIPLY:
		return &ast.LitFloat{Value: a * b, Position: pos}
	case types.DIVIDE:
		if b == 0 {
			return nil
		}
		return &ast.LitFloat{Value: a / b, Position: pos}
	case types.POWER:
		return &ast.LitFloat{Value: float32(math.Pow(float64(a), float64(b))), Position: pos}
	case types.ROOT:
		if a < 0 || b == 0 {
			return nil
		}
		return &ast.LitFloat{Value: float32(math.Pow(float64(a), 1.0/float64(b))), Position: pos}
	case types.LESS_THAN:
		return &ast.LitBool{Value: a < b, Position: pos}
	case types.GREATER_THAN:
		return &ast.LitBool{Value: a > b, Position: pos}
	case types.NOT_LESS_THAN:
		return &ast.LitBool{Value: a >= b, Position: pos}
	case types.NOT_GREATER_THAN:
		return &ast.LitBool{Value: a <= b, Position: pos}
	default:
		return nil
	}
}

func foldBoolBool(pos token.Position, a bool, op types.Operator, b bool) ast.Expression {
	switch op {
	case types.AND:
		return &ast.LitBool{Value: a && b, Position: pos}
	case types.OR:
		return &ast.LitBool{Value: a || b, Position: pos}
	case types.XOR:
		return &ast.LitBool{Value: a != b, Position: pos}
	default:
		return nil
	}
}

// foldPrefix folds NOT on a bool literal, NEGATIVE on an int/float
// literal, and RECIPROCAL on a non-zero float literal. RECIPROCAL on
// 0.0 is left for the runtime to error on.
func foldPrefix(n *ast.PrfxExpr) ast.Expression {
	switch n.Op {
	case types.NOT:
		if lit, ok := n.Rhs.(*ast.LitBool); ok {
			return &ast.LitBool{Value: !lit.Value, Position: n.Position}
		}
	case types.NEGATIVE:
		switch lit := n.Rhs.(type) {
		case *ast.LitInt:
			return &ast.LitInt{Value: -lit.Value, Position: n.Position}
		case *ast.LitFloat:
			return &ast.LitFloat{Value: -lit.Value, Position: n.Position}
		}
	case types.RECIPROCAL:
		if lit, ok := n.Rhs.(*ast.LitFloat); ok && lit.Value != 0 {
			return &ast.LitFloat{Value: 1 / lit.Value, Position: n.Position}
		}
	}
	return nil
}
