// Package lower rewrites a raw parsetree.Program into the normalized
// semantic tree (ast.Start) consumed by the folder, analyzer, and
// interpreter (spec §4.1). Unlike the analyzer, the lowerer does not
// batch diagnostics: the first structurally invalid shape it meets
// produces one descriptive error and aborts the pipeline.
package lower

import (
	"fmt"

	"github.com/ohl-lang/ohl/internal/ast"
	"github.com/ohl-lang/ohl/internal/parsetree"
	"github.com/ohl-lang/ohl/internal/types"
	"github.com/ohl-lang/ohl/pkg/token"
)

// Error is the single lowering error the pipeline aborts on.
type Error struct {
	Message  string
	Position token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d|%d] lowering error: %s", e.Position.Line, e.Position.Column, e.Message)
}

func errf(pos token.Position, format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...), Position: pos}
}

// Lower transforms a raw parse tree into the semantic tree.
func Lower(prog *parsetree.Program) (*ast.Start, error) {
	start := &ast.Start{Position: prog.Position}
	for _, fn := range prog.Functions {
		lf, err := lowerFunc(fn)
		if err != nil {
			return nil, err
		}
		start.Functions = append(start.Functions, lf)
	}
	return start, nil
}

func lowerFunc(fn *parsetree.FuncDecl) (*ast.Function, error) {
	if fn.Params == nil || fn.Body == nil {
		return nil, errf(fn.Position, "function '%s' is missing its parameter list or body", fn.Name)
	}

	retType, err := lowerTypeRef(fn.ReturnType)
	if err != nil {
		return nil, err
	}

	out := &ast.Function{Name: fn.Name, ReturnType: retType, Position: fn.Position}
	for _, p := range fn.Params.Params {
		pt, err := lowerTypeRef(p.Type)
		if err != nil {
			return nil, err
		}
		out.Params = append(out.Params, ast.Param{Name: p.Name, Type: pt})
	}

	body, err := lowerBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func lowerTypeRef(t *parsetree.TypeRef) (types.VarType, error) {
	if t == nil {
		return types.NULL, nil
	}
	switch t.Name {
	case "int":
		return types.INT, nil
	case "float":
		return types.FLOAT, nil
	case "bool":
		return types.BOOLEAN, nil
	case "char":
		return types.CHAR, nil
	case "string":
		return types.STRING, nil
	case "null", "":
		return types.NULL, nil
	default:
		return types.NULL, errf(t.Position, "unknown type '%s'", t.Name)
	}
}

func lowerBlock(b *parsetree.Block) (*ast.Block, error) {
	out := &ast.Block{Position: b.Position}
	for _, s := range b.Statements {
		ls, err := lowerStmt(s)
		if err != nil {
			return nil, err
		}
		out.Statements = append(out.Statements, ls)
	}
	return out, nil
}

func lowerStmt(s parsetree.Statement) (ast.Statement, error) {
	switch n := s.(type) {
	case *parsetree.Block:
		return lowerBlock(n)
	case *parsetree.VarDecl:
		return lowerVarDecl(n)
	case *parsetree.AssignStmt:
		expr, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Name: n.Name, Expr: expr, Position: n.Position}, nil
	case *parsetree.CompoundAssignStmt:
		return lowerCompoundAssign(n)
	case *parsetree.ReturnStmt:
		if n.Expr == nil {
			return &ast.ReturnStmt{Position: n.Position}, nil
		}
		expr, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.ReturnStmt{Expr: expr, Position: n.Position}, nil
	case *parsetree.DeferStmt:
		body, err := lowerStmt(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.DeferStmt{Body: body, Position: n.Position}, nil
	case *parsetree.IfExpr:
		return lowerIf(n)
	case *parsetree.WhileExpr:
		cond, err := lowerExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.WhileExpr{Cond: cond, Body: body, Position: n.Position}, nil
	case *parsetree.DoWhile:
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		cond, err := lowerExpr(n.Cond)
		if err != nil {
			return nil, err
		}
		return &ast.DoWhile{Body: body, Cond: cond, Position: n.Position}, nil
	case *parsetree.LoopExpr:
		count, err := lowerExpr(n.Count)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.LoopExpr{Count: count, Body: body, Position: n.Position}, nil
	case *parsetree.ForExpr:
		return lowerFor(n)
	case *parsetree.ForEach:
		iter, err := lowerExpr(n.Iterable)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.ForEach{Var: n.Var, Iterable: iter, Body: body, Position: n.Position}, nil
	case *parsetree.MatchStmt:
		return lowerMatch(n)
	case *parsetree.Break:
		return &ast.Break{Position: n.Position}, nil
	case *parsetree.Continue:
		return &ast.Continue{Position: n.Position}, nil
	case *parsetree.Repeat:
		return &ast.Repeat{Position: n.Position}, nil
	case *parsetree.BlankStmt:
		return &ast.BlankStmt{Position: n.Position}, nil
	default:
		if expr, ok := s.(parsetree.Expression); ok {
			le, err := lowerExpr(expr)
			if err != nil {
				return nil, err
			}
			return &ast.ExprStmt{Expr: le, Position: le.Pos()}, nil
		}
		return nil, errf(s.Pos(), "unrecognized statement node %T", s)
	}
}

func lowerVarDecl(n *parsetree.VarDecl) (*ast.LetStmt, error) {
	declType, err := lowerTypeRef(n.DeclType)
	if err != nil {
		return nil, err
	}

	var init ast.Expression
	if n.Init == nil {
		init = &ast.NullLit{Position: n.Position}
	} else {
		init, err = lowerExpr(n.Init)
		if err != nil {
			return nil, err
		}
	}

	mutable := n.Mutability != parsetree.Immutable

	return &ast.LetStmt{
		Name:     n.Name,
		DeclType: declType,
		Mutable:  mutable,
		Init:     init,
		Position: n.Position,
	}, nil
}

func lowerCompoundAssign(n *parsetree.CompoundAssignStmt) (*ast.AssignStmt, error) {
	op, ok := types.IsCompoundAssignOp(n.Op)
	if !ok {
		return nil, errf(n.Position, "unknown compound assignment operator '%s'", n.Op)
	}
	rhs, err := lowerExpr(n.Expr)
	if err != nil {
		return nil, err
	}
	expr := &ast.Expr{
		Lhs:      &ast.Ident{Name: n.Name, Position: n.Position},
		Op:       op,
		Rhs:      rhs,
		Position: n.Position,
	}
	return &ast.AssignStmt{Name: n.Name, Expr: expr, Position: n.Position}, nil
}

func lowerIf(n *parsetree.IfExpr) (*ast.IfExpr, error) {
	cond, err := lowerExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	then, err := lowerBlock(n.Then)
	if err != nil {
		return nil, err
	}
	out := &ast.IfExpr{Cond: cond, Then: then, Position: n.Position}
	if n.Else != nil {
		els, err := lowerStmt(n.Else)
		if err != nil {
			return nil, err
		}
		out.Else = els
	}
	return out, nil
}

func lowerFor(n *parsetree.ForExpr) (*ast.ForExpr, error) {
	out := &ast.ForExpr{Position: n.Position}
	if n.Init != nil {
		init, err := lowerStmt(n.Init)
		if err != nil {
			return nil, err
		}
		out.Init = init
	}
	cond, err := lowerExpr(n.Cond)
	if err != nil {
		return nil, err
	}
	out.Cond = cond
	if n.Modifier != nil {
		mod, err := lowerStmt(n.Modifier)
		if err != nil {
			return nil, err
		}
		out.Modifier = mod
	}
	body, err := lowerBlock(n.Body)
	if err != nil {
		return nil, err
	}
	out.Body = body
	return out, nil
}

func lowerMatch(n *parsetree.MatchStmt) (*ast.MatchStmt, error) {
	scrutinee, err := lowerExpr(n.Scrutinee)
	if err != nil {
		return nil, err
	}
	out := &ast.MatchStmt{Scrutinee: scrutinee, Position: n.Position}
	for _, arm := range n.Arms {
		pattern, err := lowerExpr(arm.Pattern)
		if err != nil {
			return nil, err
		}
		body, err := lowerBlock(arm.Body)
		if err != nil {
			return nil, err
		}
		out.Arms = append(out.Arms, &ast.MatchArm{Pattern: pattern, Body: body, Position: arm.Position})
	}
	return out, nil
}

// lowerExpr lowers any raw expression, rewriting prefix/postfix operator
// tokens into NEGATIVE/RECIPROCAL/PRFX_EXPR/PTFX_EXPR, flattening POINT
// chains into CALL paths, and mapping RANGE_INCL/RANGE_EXCL to RANGE.
func lowerExpr(e parsetree.Expression) (ast.Expression, error) {
	switch n := e.(type) {
	case *parsetree.Ident:
		return &ast.Ident{Name: n.Name, Position: n.Position}, nil
	case *parsetree.IntLit:
		return &ast.LitInt{Value: n.Value, Position: n.Position}, nil
	case *parsetree.FloatLit:
		return &ast.LitFloat{Value: n.Value, Position: n.Position}, nil
	case *parsetree.BoolLit:
		return &ast.LitBool{Value: n.Value, Position: n.Position}, nil
	case *parsetree.CharLit:
		return &ast.LitChar{Value: n.Value, Position: n.Position}, nil
	case *parsetree.StringLit:
		return &ast.LitString{Value: n.Value, Position: n.Position}, nil
	case *parsetree.NullLit:
		return &ast.NullLit{Position: n.Position}, nil
	case *parsetree.Default:
		return &ast.Default{Position: n.Position}, nil
	case *parsetree.BinaryExpr:
		return lowerBinary(n)
	case *parsetree.PrefixExpr:
		return lowerPrefix(n)
	case *parsetree.PostfixExpr:
		return lowerPostfix(n)
	case *parsetree.CastExpr:
		target, err := lowerTypeRef(n.Target)
		if err != nil {
			return nil, err
		}
		expr, err := lowerExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &ast.Cast{Expr: expr, Target: target, Position: n.Position}, nil
	case *parsetree.RangeExpr:
		start, err := lowerExpr(n.Start)
		if err != nil {
			return nil, err
		}
		end, err := lowerExpr(n.End)
		if err != nil {
			return nil, err
		}
		return &ast.Range{Start: start, End: end, Inclusive: n.Inclusive, Position: n.Position}, nil
	case *parsetree.CallExpr:
		return lowerCall(n)
	case *parsetree.Point:
		return nil, errf(n.Position, "'%s' used outside of a call target", n.Name)
	default:
		return nil, errf(e.Pos(), "unrecognized expression node %T", e)
	}
}

func lowerBinary(n *parsetree.BinaryExpr) (*ast.Expr, error) {
	lhs, err := lowerExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rhs, err := lowerExpr(n.Right)
	if err != nil {
		return nil, err
	}
	op, ok := binaryOp(n.Op)
	if !ok {
		return nil, errf(n.Position, "unknown binary operator '%s'", n.Op)
	}
	return &ast.Expr{Lhs: lhs, Op: op, Rhs: rhs, Position: n.Position}, nil
}

func binaryOp(tok string) (types.Operator, bool) {
	switch tok {
	case "+":
		return types.ADD, true
	case "-":
		return types.SUBTRACT, true
	case "*":
		return types.MULTIPLY, true
	case "/":
		return types.DIVIDE, true
	case "%":
		return types.REMAINDER, true
	case "^":
		return types.POWER, true
	case "^/":
		return types.ROOT, true
	case "==":
		return types.EQUAL, true
	case "!=":
		return types.NOT_EQUAL, true
	case "<":
		return types.LESS_THAN, true
	case ">":
		return types.GREATER_THAN, true
	case ">=":
		return types.NOT_LESS_THAN, true
	case "<=":
		return types.NOT_GREATER_THAN, true
	case "&&":
		return types.AND, true
	case "||":
		return types.OR, true
	case "xor":
		return types.XOR, true
	case "??":
		return types.NULL_COAL, true
	default:
		return 0, false
	}
}

// lowerPrefix rewrites a single-operand prefix token into its normalized
// operator. "-" becomes NEGATIVE, "/" becomes RECIPROCAL, "!" becomes
// NOT, "++"/"--" stay as prefix INCREMENT/DECREMENT (PRFX_EXPR).
func lowerPrefix(n *parsetree.PrefixExpr) (*ast.PrfxExpr, error) {
	rhs, err := lowerExpr(n.Right)
	if err != nil {
		return nil, err
	}
	var op types.Operator
	switch n.Op {
	case "-":
		op = types.NEGATIVE
	case "/":
		op = types.RECIPROCAL
	case "!":
		op = types.NOT
	case "++":
		op = types.INCREMENT
	case "--":
		op = types.DECREMENT
	default:
		return nil, errf(n.Position, "unknown prefix operator '%s'", n.Op)
	}
	return &ast.PrfxExpr{Op: op, Rhs: rhs, Position: n.Position}, nil
}

// lowerPostfix rewrites "++", "--", "**" into PTFX_EXPR.
func lowerPostfix(n *parsetree.PostfixExpr) (*ast.PtfxExpr, error) {
	lhs, err := lowerExpr(n.Left)
	if err != nil {
		return nil, err
	}
	var op types.Operator
	switch n.Op {
	case "++":
		op = types.INCREMENT
	case "--":
		op = types.DECREMENT
	case "**":
		op = types.SQUARE
	default:
		return nil, errf(n.Position, "unknown postfix operator '%s'", n.Op)
	}
	return &ast.PtfxExpr{Lhs: lhs, Op: op, Position: n.Position}, nil
}

// lowerCall flattens a nested POINT chain or bare Ident call target into
// a flat path, per §4.1.
func lowerCall(n *parsetree.CallExpr) (*ast.Call, error) {
	path, err := flattenPath(n.Target)
	if err != nil {
		return nil, err
	}
	out := &ast.Call{Path: path, Position: n.Position}
	for _, a := range n.Args {
		arg, err := lowerExpr(a)
		if err != nil {
			return nil, err
		}
		out.Args = append(out.Args, arg)
	}
	return out, nil
}

func flattenPath(target parsetree.Expression) ([]string, error) {
	switch n := target.(type) {
	case *parsetree.Ident:
		return []string{n.Name}, nil
	case *parsetree.Point:
		prefix, err := flattenPath(n.Left)
		if err != nil {
			return nil, err
		}
		return append(prefix, n.Name), nil
	default:
		return nil, errf(target.Pos(), "invalid call target")
	}
}
